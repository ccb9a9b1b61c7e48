package ports

import (
	"io"

	"ablab/domain/dataset"
)

// TableReader parses an uploaded file into a Table.
type TableReader interface {
	Read(r io.Reader) (dataset.Table, error)
}
