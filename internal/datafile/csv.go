package datafile

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/torosent/redcaplite/api"
)

// ReadCSV reads a header row followed by data rows. Every row must have as
// many fields as the header.
func ReadCSV(r io.Reader) (api.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return api.Table{}, fmt.Errorf("read CSV: %w", err)
	}
	if len(rows) == 0 {
		return api.Table{}, ErrEmpty
	}

	header := rows[0]
	for i, row := range rows[1:] {
		if len(row) != len(header) {
			return api.Table{}, fmt.Errorf("row %d has %d fields, expected %d", i+2, len(row), len(header))
		}
	}
	return api.Table{Header: header, Rows: rows[1:]}, nil
}
