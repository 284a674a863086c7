package api

import (
	"net/url"
	"strconv"
)

// Wire field names shared by every request.
const (
	KeyContent      = "content"
	KeyAction       = "action"
	KeyFormat       = "format"
	KeyData         = "data"
	KeyToken        = "token"
	KeyReturnFormat = "returnFormat"
)

// Actions carried by mutating and file payloads.
const (
	ActionImport       = "import"
	ActionDelete       = "delete"
	ActionExport       = "export"
	ActionCreateFolder = "createFolder"
	ActionList         = "list"
	ActionRename       = "rename"
)

// Format is the wire format requested from the remote service.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXML  Format = "xml"
)

func (f Format) or(def Format) Format {
	if f == "" {
		return def
	}
	return f
}

// Payload is an ordered mapping of wire field names to values. Encoders build
// payloads; nothing outside this package can change one afterwards.
type Payload struct {
	keys   []string
	values map[string]string
}

func newPayload(content string) *Payload {
	p := &Payload{values: make(map[string]string, 4)}
	p.set(KeyContent, content)
	return p
}

func newActionPayload(content, action string) *Payload {
	p := newPayload(content)
	p.set(KeyAction, action)
	return p
}

func (p *Payload) set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// setIfNotEmpty adds key only when value carries something.
func (p *Payload) setIfNotEmpty(key, value string) {
	if value != "" {
		p.set(key, value)
	}
}

func (p *Payload) setBool(key string, value bool) {
	if value {
		p.set(key, "true")
	}
}

// setList flattens items into name[0], name[1], ... in input order.
func (p *Payload) setList(name string, items []string) {
	for i, item := range items {
		p.set(name+"["+strconv.Itoa(i)+"]", item)
	}
}

func (p *Payload) setIntList(name string, items []int) {
	p.setList(name, intStrings(items))
}

// Get returns the value stored under key.
func (p Payload) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Keys returns the field names in insertion order.
func (p Payload) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Len returns the number of fields.
func (p Payload) Len() int {
	return len(p.keys)
}

// Content returns the resource discriminator.
func (p Payload) Content() string {
	return p.values[KeyContent]
}

// Action returns the action field, or "" for reads.
func (p Payload) Action() string {
	return p.values[KeyAction]
}

// Format returns the declared format, or "" when the payload does not declare one.
func (p Payload) Format() Format {
	return Format(p.values[KeyFormat])
}

// Values returns a fresh copy of the payload as form values.
func (p Payload) Values() url.Values {
	out := make(url.Values, len(p.keys)+3)
	for _, k := range p.keys {
		out.Set(k, p.values[k])
	}
	return out
}

// Map returns a copy of the payload as a plain map.
func (p Payload) Map() map[string]string {
	out := make(map[string]string, len(p.keys))
	for _, k := range p.keys {
		out[k] = p.values[k]
	}
	return out
}

func intStrings(items []int) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = strconv.Itoa(v)
	}
	return out
}
