package api

import "strconv"

const ContentPDF = "pdf"

// ExportPDFInput lists the filters a PDF export accepts. Only fields that are
// set reach the payload; the remote API takes nothing else.
type ExportPDFInput struct {
	Record         string
	Event          string
	Instrument     string
	RepeatInstance int
	AllRecords     bool
	CompactDisplay bool
}

// ExportPDF encodes a PDF export of instruments, blank or filled.
func ExportPDF(in ExportPDFInput) Payload {
	p := newPayload(ContentPDF)
	p.setIfNotEmpty("record", in.Record)
	p.setIfNotEmpty("event", in.Event)
	p.setIfNotEmpty("instrument", in.Instrument)
	if in.RepeatInstance > 0 {
		p.set("repeat_instance", strconv.Itoa(in.RepeatInstance))
	}
	p.setBool("allRecords", in.AllRecords)
	if in.CompactDisplay {
		p.set("compactDisplay", "TRUE")
	}
	return *p
}
