package models

// Table holds the decoded sheet: the trimmed header row and one Record
// per data row. Columns preserves header order; every Record in Records
// carries exactly the keys in Columns.
type Table struct {
	// Columns is the header row, each cell trimmed.
	Columns []string `json:"columns"`
	// Records contains the data rows in input order.
	Records []Record `json:"records"`
}

// Empty reports whether the table has no data rows.
func (t Table) Empty() bool {
	return len(t.Records) == 0
}

// Row returns record values aligned to the table's column order.
func (t Table) Row(r Record) []string {
	row := make([]string, len(t.Columns))
	for i, name := range t.Columns {
		row[i] = r[name]
	}
	return row
}
