package api

import (
	"strconv"
	"time"
)

const (
	ContentRecord                 = "record"
	ContentGenerateNextRecordName = "generateNextRecordName"
)

const dateRangeLayout = "2006-01-02 15:04:05"

// ExportRecordsInput filters a record export. Zero values are not sent.
type ExportRecordsInput struct {
	Format                       Format
	Type                         string
	Records                      []string
	Fields                       []string
	Forms                        []string
	Events                       []string
	RawOrLabel                   string
	RawOrLabelHeaders            string
	ExportCheckboxLabel          bool
	ExportSurveyFields           bool
	ExportDataAccessGroups       bool
	FilterLogic                  string
	DateRangeBegin               time.Time
	DateRangeEnd                 time.Time
	CSVDelimiter                 string
	DecimalCharacter             string
	ExportBlankForGrayFormStatus bool
}

// ExportRecords encodes a record export.
func ExportRecords(in ExportRecordsInput) Payload {
	p := newPayload(ContentRecord)
	if f := in.Format.or(FormatJSON); f != FormatJSON {
		p.set(KeyFormat, string(f))
	}
	p.setIfNotEmpty("type", in.Type)
	p.setList("records", in.Records)
	p.setList("fields", in.Fields)
	p.setList("forms", in.Forms)
	p.setList("events", in.Events)
	p.setIfNotEmpty("rawOrLabel", in.RawOrLabel)
	p.setIfNotEmpty("rawOrLabelHeaders", in.RawOrLabelHeaders)
	p.setBool("exportCheckboxLabel", in.ExportCheckboxLabel)
	p.setBool("exportSurveyFields", in.ExportSurveyFields)
	p.setBool("exportDataAccessGroups", in.ExportDataAccessGroups)
	p.setIfNotEmpty("filterLogic", in.FilterLogic)
	if !in.DateRangeBegin.IsZero() {
		p.set("dateRangeBegin", in.DateRangeBegin.Format(dateRangeLayout))
	}
	if !in.DateRangeEnd.IsZero() {
		p.set("dateRangeEnd", in.DateRangeEnd.Format(dateRangeLayout))
	}
	p.setIfNotEmpty("csvDelimiter", in.CSVDelimiter)
	p.setIfNotEmpty("decimalCharacter", in.DecimalCharacter)
	p.setBool("exportBlankForGrayFormStatus", in.ExportBlankForGrayFormStatus)
	return *p
}

// ImportRecordsInput carries record data. Format defaults to json and is
// always declared, since the remote side parses data by it.
type ImportRecordsInput struct {
	Data              Data
	Format            Format
	Type              string
	OverwriteBehavior string
	ForceAutoNumber   bool
	DateFormat        string
	CSVDelimiter      string
	ReturnContent     string
}

// ImportRecords encodes a record import.
func ImportRecords(in ImportRecordsInput) (Payload, error) {
	p := newActionPayload(ContentRecord, ActionImport)
	if err := p.setData("ImportRecords", in.Format.or(FormatJSON), in.Data); err != nil {
		return Payload{}, err
	}
	p.setIfNotEmpty("type", in.Type)
	p.setIfNotEmpty("overwriteBehavior", in.OverwriteBehavior)
	p.setBool("forceAutoNumber", in.ForceAutoNumber)
	p.setIfNotEmpty("dateFormat", in.DateFormat)
	p.setIfNotEmpty("csvDelimiter", in.CSVDelimiter)
	p.setIfNotEmpty("returnContent", in.ReturnContent)
	return *p, nil
}

// DeleteRecordsInput names records to delete. Arm, Instrument, Event and
// RepeatInstance narrow the deletion to part of each record.
type DeleteRecordsInput struct {
	Records        []string
	Arm            string
	Instrument     string
	Event          string
	RepeatInstance int
	DeleteLogging  bool
}

// DeleteRecords encodes a record deletion. Records is required.
func DeleteRecords(in DeleteRecordsInput) (Payload, error) {
	if in.Records == nil {
		return Payload{}, missing("DeleteRecords", "records")
	}
	p := newActionPayload(ContentRecord, ActionDelete)
	p.setList("records", in.Records)
	p.setIfNotEmpty("arm", in.Arm)
	p.setIfNotEmpty("instrument", in.Instrument)
	p.setIfNotEmpty("event", in.Event)
	if in.RepeatInstance > 0 {
		p.set("repeat_instance", strconv.Itoa(in.RepeatInstance))
	}
	if in.DeleteLogging {
		p.set("delete_logging", "1")
	}
	return *p, nil
}

type RenameRecordInput struct {
	Record        string
	NewRecordName string
	Arm           string
}

// RenameRecord encodes a record rename.
func RenameRecord(in RenameRecordInput) (Payload, error) {
	if in.Record == "" {
		return Payload{}, missing("RenameRecord", "record")
	}
	if in.NewRecordName == "" {
		return Payload{}, missing("RenameRecord", "new_record_name")
	}
	p := newActionPayload(ContentRecord, ActionRename)
	p.set("record", in.Record)
	p.set("new_record_name", in.NewRecordName)
	p.setIfNotEmpty("arm", in.Arm)
	return *p, nil
}

// GenerateNextRecordName encodes a request for the next auto-numbered record name.
func GenerateNextRecordName() Payload {
	return *newPayload(ContentGenerateNextRecordName)
}
