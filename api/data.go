package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Field is one named value of a Record.
type Field struct {
	Name  string
	Value any
}

// Record is an ordered set of fields. Serialization keeps insertion order.
type Record []Field

// R builds a Record from alternating name/value arguments. It panics on an
// odd argument count or a name that is not a non-empty string, since either is
// a mistake in the calling code.
func R(pairs ...any) Record {
	if len(pairs)%2 != 0 {
		panic(fmt.Sprintf("api.R: odd number of arguments (%d)", len(pairs)))
	}
	rec := make(Record, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok || name == "" {
			panic(fmt.Sprintf("api.R: argument %d must be a field name, got %T %v", i, pairs[i], pairs[i]))
		}
		rec = append(rec, Field{Name: name, Value: pairs[i+1]})
	}
	return rec
}

// Get returns the value of the named field.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// String returns the named field formatted as text, or "" when absent.
func (r Record) String(name string) string {
	v, ok := r.Get(name)
	if !ok {
		return ""
	}
	return formatValue(v)
}

// Names returns the field names in order.
func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

func (r Record) MarshalJSON() ([]byte, error) {
	return r.appendJSON(nil, ",", ":")
}

// UnmarshalJSON decodes a JSON object keeping the key order of the input.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record: expected JSON object, got %v", tok)
	}
	out := Record{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("record: unexpected key %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("record: field %q: %w", name, err)
		}
		out = append(out, Field{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = out
	return nil
}

func (r Record) appendJSON(buf []byte, itemSep, keySep string) ([]byte, error) {
	buf = append(buf, '{')
	for i, f := range r {
		if i > 0 {
			buf = append(buf, itemSep...)
		}
		key, err := marshalValue(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := marshalValue(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		buf = append(buf, key...)
		buf = append(buf, keySep...)
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}

// Records is a sequence of records, the structured form of import data.
type Records []Record

// JSON serializes the records as a JSON array using the separators the REDCap
// reference client emits, e.g. [{"event_name": "visit1"}].
func (rs Records) JSON() (string, error) {
	buf := []byte{'['}
	for i, rec := range rs {
		if i > 0 {
			buf = append(buf, ", "...)
		}
		var err error
		buf, err = rec.appendJSON(buf, ", ", ": ")
		if err != nil {
			return "", fmt.Errorf("record %d: %w", i, err)
		}
	}
	return string(append(buf, ']')), nil
}

// Header returns the column order used for CSV: the first record's field order.
func (rs Records) Header() []string {
	if len(rs) == 0 {
		return nil
	}
	return rs[0].Names()
}

// CSV serializes the records as a header row plus one row per record.
func (rs Records) CSV() (string, error) {
	if len(rs) == 0 {
		return "", nil
	}
	return TableFromRecords(rs).CSV()
}

// Table is tabular data: a header and rows of string cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// ParseTable decodes CSV text whose first row is the header.
func ParseTable(text string) (Table, error) {
	if strings.TrimSpace(text) == "" {
		return Table{}, nil
	}
	reader := csv.NewReader(strings.NewReader(text))
	rows, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read CSV: %w", err)
	}
	if len(rows) == 0 {
		return Table{}, nil
	}
	return Table{Header: rows[0], Rows: rows[1:]}, nil
}

// TableFromRecords lays records out under the first record's column order.
// Fields missing from later records become empty cells.
func TableFromRecords(rs Records) Table {
	header := rs.Header()
	rows := make([][]string, 0, len(rs))
	for _, rec := range rs {
		row := make([]string, len(header))
		for j, name := range header {
			row[j] = rec.String(name)
		}
		rows = append(rows, row)
	}
	return Table{Header: header, Rows: rows}
}

// Len returns the number of data rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// CSV serializes the table with its header row.
func (t Table) CSV() (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header); err != nil {
		return "", err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Records converts each row into a record keyed by the header.
func (t Table) Records() Records {
	out := make(Records, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(Record, len(t.Header))
		for j, name := range t.Header {
			var cell string
			if j < len(row) {
				cell = row[j]
			}
			rec[j] = Field{Name: name, Value: cell}
		}
		out = append(out, rec)
	}
	return out
}

// DataKind tags which variant a Data value holds.
type DataKind int

const (
	DataNone DataKind = iota
	DataRecords
	DataTable
	DataText
)

// Data is import input in one of three explicit shapes: structured records,
// a table, or text the caller already encoded for the wire.
type Data struct {
	kind    DataKind
	records Records
	table   Table
	text    string
}

func FromRecords(rs Records) Data { return Data{kind: DataRecords, records: rs} }

func FromTable(t Table) Data { return Data{kind: DataTable, table: t} }

func FromText(s string) Data { return Data{kind: DataText, text: s} }

// Kind reports the variant held.
func (d Data) Kind() DataKind {
	return d.kind
}

var errUnsupportedFormat = errors.New("unsupported data format")

// Encode renders d for the wire in the given format.
func (d Data) Encode(format Format) (string, error) {
	switch d.kind {
	case DataText:
		return d.text, nil
	case DataTable:
		switch format {
		case FormatCSV:
			return d.table.CSV()
		case FormatJSON:
			return d.table.Records().JSON()
		}
	case DataRecords:
		switch format {
		case FormatCSV:
			return d.records.CSV()
		case FormatJSON:
			return d.records.JSON()
		}
	default:
		return "", errors.New("data is empty")
	}
	return "", fmt.Errorf("%w: cannot encode %s data as %q", errUnsupportedFormat, d.kind, format)
}

func (k DataKind) String() string {
	switch k {
	case DataRecords:
		return "records"
	case DataTable:
		return "table"
	case DataText:
		return "text"
	default:
		return "empty"
	}
}

func marshalValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
