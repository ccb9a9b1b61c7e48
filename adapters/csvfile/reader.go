// Package csvfile parses CSV uploads into the common Table shape.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"

	"ablab/domain/dataset"
)

// Reader parses CSV input. The first record is the header row.
type Reader struct{}

// NewReader creates a CSV table reader
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the stream into a Table. Ragged rows are tolerated; short
// rows read as empty cells downstream.
func (r *Reader) Read(src io.Reader) (dataset.Table, error) {
	var table dataset.Table

	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return table, fmt.Errorf("csv: empty file")
	}
	if err != nil {
		return table, fmt.Errorf("csv: reading header: %w", err)
	}
	table.Columns = header

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return table, fmt.Errorf("csv: reading row %d: %w", len(table.Rows)+2, err)
		}
		table.Rows = append(table.Rows, record)
	}
	if len(table.Rows) == 0 {
		return table, fmt.Errorf("csv: no data rows")
	}
	return table, nil
}
