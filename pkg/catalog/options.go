// Package catalog loads published sheet exports into product catalogs.
package catalog

// Format identifies the source export format.
type Format string

const (
	// FormatAuto sniffs the format from the data.
	FormatAuto Format = "auto"
	// FormatCSV decodes the data as CSV text.
	FormatCSV Format = "csv"
	// FormatXLSX decodes the data as an XLSX workbook.
	FormatXLSX Format = "xlsx"
)

// Options configures loading behavior.
type Options struct {
	// Format selects the source format. Empty means FormatAuto.
	Format Format
	// IncludeHidden specifies whether rows hidden by the visible column
	// are kept in the product list. If nil, hidden rows are dropped.
	IncludeHidden *bool
}

// DefaultOptions returns default load options.
func DefaultOptions() Options {
	return Options{Format: FormatAuto}
}

// ShouldIncludeHidden returns whether hidden rows are kept.
func (o Options) ShouldIncludeHidden() bool {
	if o.IncludeHidden != nil {
		return *o.IncludeHidden
	}
	return false
}
