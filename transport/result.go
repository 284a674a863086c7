package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/torosent/redcaplite/api"
)

// Result is a decoded Post reply. JSON replies are validated when decoded;
// text replies are kept verbatim.
type Result struct {
	format api.Format
	body   []byte
}

type decoder func(body []byte) (Result, error)

func decoderFor(format api.Format) decoder {
	switch format {
	case api.FormatCSV, api.FormatXML:
		return decodeText(format)
	default:
		return decodeJSON
	}
}

func decodeText(format api.Format) decoder {
	return func(body []byte) (Result, error) {
		return Result{format: format, body: body}, nil
	}
}

func decodeJSON(body []byte) (Result, error) {
	if !json.Valid(body) {
		return Result{}, fmt.Errorf("decode response: invalid JSON: %s", truncate(body, 120))
	}
	return Result{format: api.FormatJSON, body: body}, nil
}

// NewResult wraps an already decoded body. It is meant for tests and callers
// that replay stored replies.
func NewResult(format api.Format, body []byte) (Result, error) {
	return decoderFor(format)(body)
}

// Format reports how the body was decoded.
func (r Result) Format() api.Format {
	return r.format
}

func (r Result) Bytes() []byte {
	return r.body
}

func (r Result) Text() string {
	return string(r.body)
}

var errNotJSON = errors.New("result is not JSON")

// Decode unmarshals a JSON result into v.
func (r Result) Decode(v any) error {
	if r.format != api.FormatJSON {
		return fmt.Errorf("%w (format %s)", errNotJSON, r.format)
	}
	return json.Unmarshal(r.body, v)
}

// Value returns the decoded JSON value: a map, slice, json.Number, string,
// bool or nil.
func (r Result) Value() (any, error) {
	if r.format != api.FormatJSON {
		return nil, fmt.Errorf("%w (format %s)", errNotJSON, r.format)
	}
	var v any
	dec := json.NewDecoder(strings.NewReader(string(r.body)))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Records decodes a JSON array of objects keeping each object's key order. A
// single object decodes as one record.
func (r Result) Records() (api.Records, error) {
	if r.format != api.FormatJSON {
		return nil, fmt.Errorf("%w (format %s)", errNotJSON, r.format)
	}
	if gjson.ParseBytes(r.body).IsObject() {
		var rec api.Record
		if err := json.Unmarshal(r.body, &rec); err != nil {
			return nil, err
		}
		return api.Records{rec}, nil
	}
	var recs api.Records
	if err := json.Unmarshal(r.body, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Table parses a CSV result.
func (r Result) Table() (api.Table, error) {
	if r.format != api.FormatCSV {
		return api.Table{}, fmt.Errorf("result is not CSV (format %s)", r.format)
	}
	return api.ParseTable(string(r.body))
}

// Count reads the number of affected items from a write reply. The service
// answers with a bare number, a quoted number, or an object carrying count or
// item_count.
func (r Result) Count() (int, error) {
	res := gjson.ParseBytes(r.body)
	if res.IsObject() {
		for _, key := range []string{"count", "item_count"} {
			if v := res.Get(key); v.Exists() {
				res = v
				break
			}
		}
	}
	switch res.Type {
	case gjson.Number:
		return int(res.Int()), nil
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(res.Str))
		if err != nil {
			return 0, fmt.Errorf("count %q is not a number", res.Str)
		}
		return n, nil
	}
	return 0, fmt.Errorf("reply carries no count: %s", truncate(r.body, 120))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
