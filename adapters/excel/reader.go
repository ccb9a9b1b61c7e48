// Package excel parses .xlsx uploads into the common Table shape.
package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"ablab/domain/dataset"
)

// Reader parses the first sheet of an Excel workbook. The first row is the
// header.
type Reader struct{}

// NewReader creates an Excel table reader
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the workbook stream into a Table.
func (r *Reader) Read(src io.Reader) (dataset.Table, error) {
	var table dataset.Table

	f, err := excelize.OpenReader(src)
	if err != nil {
		return table, fmt.Errorf("excel: opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return table, fmt.Errorf("excel: workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return table, fmt.Errorf("excel: reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return table, fmt.Errorf("excel: sheet %q has no data rows", sheets[0])
	}

	table.Columns = rows[0]
	table.Rows = rows[1:]
	return table, nil
}
