package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torosent/redcaplite/api"
	"github.com/torosent/redcaplite/internal/datafile"
)

var errNoData = errors.New("--data is required")

// addDataFlags registers the flags of commands that import a data file.
func addDataFlags(cmd *cobra.Command) {
	cmd.Flags().String("data", "", "Data file to import (CSV or JSON, - for stdin)")
	cmd.Flags().String("data-type", "", "Data file type: csv, json or xml (default from the file extension)")
}

func dataSource(cmd *cobra.Command) (string, datafile.Kind, error) {
	path, _ := cmd.Flags().GetString("data")
	if path == "" {
		return "", "", errNoData
	}
	explicit, _ := cmd.Flags().GetString("data-type")
	kind, err := datafile.DetectKind(path, explicit)
	if err != nil {
		return "", "", err
	}
	return path, kind, nil
}

// loadRecords reads --data as records.
func loadRecords(cmd *cobra.Command) (api.Records, error) {
	path, kind, err := dataSource(cmd)
	if err != nil {
		return nil, err
	}
	return datafile.LoadRecords(path, kind)
}

// loadData reads --data in its own format, for imports that accept CSV, JSON
// or XML text.
func loadData(cmd *cobra.Command) (api.Data, api.Format, error) {
	path, kind, err := dataSource(cmd)
	if err != nil {
		return api.Data{}, "", err
	}
	return datafile.Load(path, kind)
}

// loadTyped reads --data and decodes it into typed items. Values read from
// CSV arrive as strings and are accepted wherever a number is expected.
func loadTyped[T any](cmd *cobra.Command) ([]T, error) {
	recs, err := loadRecords(cmd)
	if err != nil {
		return nil, err
	}
	encoded, err := recs.JSON()
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal([]byte(encoded), &out); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	return out, nil
}

func parseFormat(cmd *cobra.Command, name string) (api.Format, error) {
	val, _ := cmd.Flags().GetString(name)
	switch f := api.Format(val); f {
	case "", api.FormatJSON, api.FormatCSV, api.FormatXML:
		return f, nil
	default:
		return "", fmt.Errorf("--%s must be 'json', 'csv' or 'xml', got %q", name, val)
	}
}
