package datafile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/torosent/redcaplite/api"
)

// ReadJSON reads an array of objects, or a single object, as records.
func ReadJSON(r io.Reader) (api.Records, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read JSON: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	if data[0] == '{' {
		var rec api.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
		return api.Records{rec}, nil
	}

	var recs api.Records
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("JSON file contains empty array")
	}
	for i, rec := range recs {
		if len(rec) == 0 {
			return nil, fmt.Errorf("record %d is empty", i)
		}
	}
	return recs, nil
}
