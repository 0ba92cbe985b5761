package catalog

import (
	"bytes"

	"plycat/pkg/catalog/models"
	"plycat/pkg/catalog/parser"
)

// xlsx files are zip archives.
var zipMagic = []byte("PK\x03\x04")

// Load decodes raw sheet-export data into a Catalog. The format is taken
// from opts or sniffed from the data; records are lifted into products and
// filtered by the visible column unless opts keeps hidden rows.
func Load(data []byte, opts Options) (*models.Catalog, error) {
	format := opts.Format
	if format == "" || format == FormatAuto {
		format = Sniff(data)
	}

	var table models.Table
	switch format {
	case FormatCSV:
		table = parser.DecodeCSV(string(data))
	case FormatXLSX:
		t, err := parser.DecodeXLSX(data)
		if err != nil {
			return nil, NewLoadError(FormatXLSX, err)
		}
		table = t
	default:
		return nil, NewLoadError(format, ErrUnsupportedFormat)
	}

	var products []models.Product
	for _, rec := range table.Records {
		p := models.ProductFromRecord(rec)
		if !opts.ShouldIncludeHidden() && !p.Visible() {
			continue
		}
		products = append(products, p)
	}

	return &models.Catalog{Table: table, Products: products}, nil
}

// Sniff guesses the export format from the data: a zip signature means an
// XLSX workbook, anything else is treated as CSV text.
func Sniff(data []byte) Format {
	if bytes.HasPrefix(data, zipMagic) {
		return FormatXLSX
	}
	return FormatCSV
}
