package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"plycat/pkg/catalog/models"
)

// DecodeXLSX decodes the first sheet of an XLSX workbook into a Table with
// the same semantics as DecodeCSV: first row is the header, cells are
// trimmed, data rows are padded or truncated to the header width. Rows that
// are entirely empty are skipped, since sheet dimensions often pad the used
// range with blank trailing rows.
//
// Unlike the CSV path this can fail, when the data is not a readable
// workbook.
func DecodeXLSX(data []byte) (models.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return models.Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return models.Table{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return models.Table{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	kept := rows[:0]
	for _, cells := range rows {
		if !rowEmpty(cells) {
			kept = append(kept, cells)
		}
	}

	return tableFromRows(kept), nil
}

func rowEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
