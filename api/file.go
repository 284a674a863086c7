package api

import "strconv"

const ContentFile = "file"

// FileInput addresses a file-upload field on one record. Event defaults to ""
// and RepeatInstance to 1.
type FileInput struct {
	Record         string
	Field          string
	Event          string
	RepeatInstance int
}

// ExportFile encodes a download of the file stored in a record field.
func ExportFile(in FileInput) (Payload, error) {
	return fileAction("ExportFile", ActionExport, in)
}

// ImportFile encodes the form fields of a file upload; the file itself is
// attached by the transport.
func ImportFile(in FileInput) (Payload, error) {
	return fileAction("ImportFile", ActionImport, in)
}

// DeleteFile encodes the removal of a file from a record field.
func DeleteFile(in FileInput) (Payload, error) {
	return fileAction("DeleteFile", ActionDelete, in)
}

func fileAction(encoder, action string, in FileInput) (Payload, error) {
	if in.Record == "" {
		return Payload{}, missing(encoder, "record")
	}
	if in.Field == "" {
		return Payload{}, missing(encoder, "field")
	}
	p := newActionPayload(ContentFile, action)
	p.set("record", in.Record)
	p.set("field", in.Field)
	p.set("event", in.Event)
	p.set("repeat_instance", repeatInstance(in.RepeatInstance))
	return *p, nil
}

func repeatInstance(n int) string {
	if n <= 0 {
		n = 1
	}
	return strconv.Itoa(n)
}
