// Package parser converts published sheet exports into catalog tables.
package parser

import (
	"strings"

	"plycat/pkg/catalog/models"
)

// DecodeCSV decodes raw CSV text into a Table. It is total: any input,
// including empty or malformed text, produces a result and never an error.
// An unterminated quoted field consumes the rest of the input. The first
// row is the header; data rows are zipped to it positionally, short rows
// padded with "" and extra cells dropped. Header names and cell values are
// trimmed of surrounding whitespace.
func DecodeCSV(raw string) models.Table {
	var (
		rows [][]string
		row  []string
		buf  strings.Builder
	)
	inQuotes := false

	for i := 0; i < len(raw); {
		c := raw[i]
		if inQuotes {
			if c == '"' {
				if i+1 < len(raw) && raw[i+1] == '"' {
					// Doubled quote is a literal quote.
					buf.WriteByte('"')
					i += 2
					continue
				}
				inQuotes = false
				i++
				continue
			}
			buf.WriteByte(c)
			i++
			continue
		}

		switch c {
		case '"':
			inQuotes = true
			i++
		case ',':
			row = append(row, buf.String())
			buf.Reset()
			i++
		case '\r', '\n':
			row = append(row, buf.String())
			buf.Reset()
			rows = append(rows, row)
			row = nil
			i++
			if c == '\r' && i < len(raw) && raw[i] == '\n' {
				i++
			}
		default:
			buf.WriteByte(c)
			i++
		}
	}

	// Flush a trailing row when the input has no final newline.
	if buf.Len() > 0 || len(row) > 0 {
		row = append(row, buf.String())
		rows = append(rows, row)
	}

	return tableFromRows(rows)
}

// tableFromRows treats rows[0] as the header and aligns every data row
// to it positionally.
func tableFromRows(rows [][]string) models.Table {
	if len(rows) == 0 {
		return models.Table{}
	}

	columns := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		columns[i] = strings.TrimSpace(name)
	}

	var records []models.Record
	for _, cells := range rows[1:] {
		rec := make(models.Record, len(columns))
		for i, name := range columns {
			if i < len(cells) {
				rec[name] = strings.TrimSpace(cells[i])
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}

	return models.Table{Columns: columns, Records: records}
}

// EncodeCSV renders a table back to CSV text. Fields containing a comma,
// quote, or line break are quoted with embedded quotes doubled; rows end
// with a single line feed. Decoding the result yields the same table.
func EncodeCSV(t models.Table) string {
	if len(t.Columns) == 0 {
		return ""
	}
	var b strings.Builder
	writeRow(&b, t.Columns)
	for _, rec := range t.Records {
		writeRow(&b, t.Row(rec))
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		writeField(b, cell)
	}
	b.WriteByte('\n')
}

func writeField(b *strings.Builder, field string) {
	if !strings.ContainsAny(field, ",\"\r\n") {
		b.WriteString(field)
		return
	}
	b.WriteByte('"')
	for i := 0; i < len(field); i++ {
		if field[i] == '"' {
			b.WriteByte('"')
		}
		b.WriteByte(field[i])
	}
	b.WriteByte('"')
}
