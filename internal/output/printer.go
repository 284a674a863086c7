// Package output renders API results and call statistics for the CLI.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/torosent/redcaplite/api"
	"github.com/torosent/redcaplite/internal/config"
	"github.com/torosent/redcaplite/transport"
)

// Printer writes one value per Print call in the configured format.
type Printer struct {
	W      io.Writer
	Format config.OutputFormat
	// Select is a gjson path applied to JSON values before printing.
	Select string
}

var errSelectText = errors.New("--select only applies to JSON results")

// Print renders v. Text results such as CSV exports or version strings are
// written as they are; everything else goes through JSON first so that
// Select and key order behave the same for every format.
func (p Printer) Print(v any) error {
	text, body, err := normalize(v)
	if err != nil {
		return err
	}
	if body == nil {
		if p.Select != "" {
			return errSelectText
		}
		return writeText(p.W, text)
	}

	if p.Select != "" {
		if body, err = Select(body, p.Select); err != nil {
			return err
		}
	}

	switch p.Format {
	case config.OutputYAML:
		return writeYAML(p.W, body)
	case config.OutputText:
		return writePlain(p.W, body)
	default:
		return writeJSON(p.W, body)
	}
}

// normalize turns v into either text or a JSON document.
func normalize(v any) (string, []byte, error) {
	switch val := v.(type) {
	case nil:
		return "", []byte("null"), nil
	case string:
		return val, nil, nil
	case []byte:
		return string(val), nil, nil
	case transport.Result:
		if val.Format() != api.FormatJSON {
			return val.Text(), nil, nil
		}
		return "", val.Bytes(), nil
	case api.Table:
		body, err := json.Marshal(val.Records())
		return "", body, err
	default:
		body, err := json.Marshal(val)
		if err != nil {
			return "", nil, fmt.Errorf("encode result: %w", err)
		}
		return "", body, nil
	}
}

func writeText(w io.Writer, text string) error {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}

func writeJSON(w io.Writer, body []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return fmt.Errorf("format JSON: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

// writeYAML re-encodes a JSON document as block YAML. Parsing through
// yaml.Node keeps the key order of the document; styles are reset so the
// encoder only quotes strings that need it.
func writeYAML(w io.Writer, body []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(body, &node); err != nil {
		return fmt.Errorf("convert to YAML: %w", err)
	}
	blockStyle(&node)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return err
	}
	return enc.Close()
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}

// writePlain prints scalars bare, arrays of objects as CSV, objects as
// key: value lines and anything else as compact JSON.
func writePlain(w io.Writer, body []byte) error {
	doc := gjson.ParseBytes(body)
	switch {
	case doc.IsArray():
		items := doc.Array()
		if len(items) > 0 && items[0].IsObject() {
			return writeCSV(w, items)
		}
		for _, item := range items {
			if _, err := fmt.Fprintln(w, item.String()); err != nil {
				return err
			}
		}
		return nil
	case doc.IsObject():
		var err error
		doc.ForEach(func(key, value gjson.Result) bool {
			_, err = fmt.Fprintf(w, "%s: %s\n", key.String(), value.String())
			return err == nil
		})
		return err
	default:
		return writeText(w, doc.String())
	}
}

func writeCSV(w io.Writer, items []gjson.Result) error {
	var header []string
	items[0].ForEach(func(key, _ gjson.Result) bool {
		header = append(header, key.String())
		return true
	})
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, item := range items {
		row := make([]string, len(header))
		for i, name := range header {
			row[i] = item.Get(gjson.Escape(name)).String()
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
