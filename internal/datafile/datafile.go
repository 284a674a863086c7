// Package datafile loads import data for the CLI from CSV and JSON files.
//
// Field order is kept as written in the file: CSV columns follow the header
// and JSON objects keep their key order, so what reaches the wire matches the
// file.
package datafile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/torosent/redcaplite/api"
)

// Kind is the syntax of a data file.
type Kind string

const (
	KindCSV  Kind = "csv"
	KindJSON Kind = "json"
	KindXML  Kind = "xml"
)

// StdinPath names standard input.
const StdinPath = "-"

var ErrEmpty = errors.New("data file is empty")

// DetectKind picks the file kind from an explicit name or the file extension.
// Standard input without an explicit kind is read as JSON.
func DetectKind(path, explicit string) (Kind, error) {
	if explicit != "" {
		switch k := Kind(strings.ToLower(strings.TrimSpace(explicit))); k {
		case KindCSV, KindJSON, KindXML:
			return k, nil
		default:
			return "", fmt.Errorf("data type must be 'csv', 'json' or 'xml', got %q", explicit)
		}
	}
	if path == StdinPath {
		return KindJSON, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return KindCSV, nil
	case ".json":
		return KindJSON, nil
	case ".xml":
		return KindXML, nil
	default:
		return "", fmt.Errorf("cannot tell the type of %s from its extension; set it explicitly", path)
	}
}

// Load reads a data file as the import variant matching its kind: a table for
// CSV, records for JSON, text for XML. It also returns the wire format the
// file is written in.
func Load(path string, kind Kind) (api.Data, api.Format, error) {
	switch kind {
	case KindCSV:
		table, err := LoadTable(path)
		if err != nil {
			return api.Data{}, "", err
		}
		return api.FromTable(table), api.FormatCSV, nil
	case KindJSON:
		recs, err := loadJSONFile(path)
		if err != nil {
			return api.Data{}, "", err
		}
		return api.FromRecords(recs), api.FormatJSON, nil
	case KindXML:
		text, err := readAll(path)
		if err != nil {
			return api.Data{}, "", err
		}
		if strings.TrimSpace(string(text)) == "" {
			return api.Data{}, "", ErrEmpty
		}
		return api.FromText(string(text)), api.FormatXML, nil
	default:
		return api.Data{}, "", fmt.Errorf("unsupported data type %q", kind)
	}
}

// LoadRecords reads a CSV or JSON file as records.
func LoadRecords(path string, kind Kind) (api.Records, error) {
	switch kind {
	case KindCSV:
		table, err := LoadTable(path)
		if err != nil {
			return nil, err
		}
		return table.Records(), nil
	case KindJSON:
		return loadJSONFile(path)
	default:
		return nil, fmt.Errorf("records cannot be read from %q data", kind)
	}
}

// LoadTable reads a CSV file whose first row is the header.
func LoadTable(path string) (api.Table, error) {
	r, closeFn, err := open(path)
	if err != nil {
		return api.Table{}, err
	}
	defer closeFn()
	return ReadCSV(r)
}

func loadJSONFile(path string) (api.Records, error) {
	r, closeFn, err := open(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return ReadJSON(r)
}

func readAll(path string) ([]byte, error) {
	r, closeFn, err := open(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return io.ReadAll(r)
}

func open(path string) (io.Reader, func(), error) {
	if path == StdinPath {
		return os.Stdin, func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open data file: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}
