package api

import "fmt"

// ImportInput is the input shared by imports that take records and nothing else.
// Format defaults to json; csv sends the records as CSV text instead.
type ImportInput struct {
	Data   Records
	Format Format
}

// setRecords encodes records for an import that is json unless told otherwise.
// A json import leaves format undeclared on the payload.
func (p *Payload) setRecords(encoder string, format Format, data Records) error {
	if data == nil {
		return missing(encoder, KeyData)
	}
	format = format.or(FormatJSON)
	if format != FormatJSON {
		p.set(KeyFormat, string(format))
	}
	return p.setEncoded(encoder, format, FromRecords(data))
}

// setData declares format and stores data encoded in it.
func (p *Payload) setData(encoder string, format Format, data Data) error {
	if data.Kind() == DataNone {
		return missing(encoder, KeyData)
	}
	p.set(KeyFormat, string(format))
	return p.setEncoded(encoder, format, data)
}

func (p *Payload) setEncoded(encoder string, format Format, data Data) error {
	encoded, err := data.Encode(format)
	if err != nil {
		return fmt.Errorf("api: %s: %w", encoder, err)
	}
	p.set(KeyData, encoded)
	return nil
}

func importRecords(encoder, content string, in ImportInput) (Payload, error) {
	p := newActionPayload(content, ActionImport)
	if err := p.setRecords(encoder, in.Format, in.Data); err != nil {
		return Payload{}, err
	}
	return *p, nil
}
