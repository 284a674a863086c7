package api

import "time"

const (
	ContentInstrument = "instrument"
	ContentFieldNames = "exportFieldNames"
	ContentVersion    = "version"
	ContentLog        = "log"
)

// GetInstruments encodes an export of the project's instruments.
func GetInstruments() Payload {
	return *newPayload(ContentInstrument)
}

type GetFieldNamesInput struct {
	Field string
}

// GetFieldNames encodes an export of the export field names. The field key is
// always sent; empty means every field.
func GetFieldNames(in GetFieldNamesInput) Payload {
	p := newPayload(ContentFieldNames)
	p.set("field", in.Field)
	return *p
}

// GetVersion encodes a request for the remote REDCap version string.
func GetVersion() Payload {
	return *newPayload(ContentVersion)
}

const logTimeLayout = "2006-01-02 15:04"

// GetLogsInput filters a logging export. Format defaults to csv.
type GetLogsInput struct {
	Format    Format
	LogType   string
	User      string
	Record    string
	DAG       string
	BeginTime time.Time
	EndTime   time.Time
}

// GetLogs encodes a logging export.
func GetLogs(in GetLogsInput) Payload {
	p := newPayload(ContentLog)
	p.set(KeyFormat, string(in.Format.or(FormatCSV)))
	p.setIfNotEmpty("logtype", in.LogType)
	p.setIfNotEmpty("user", in.User)
	p.setIfNotEmpty("record", in.Record)
	p.setIfNotEmpty("dag", in.DAG)
	if !in.BeginTime.IsZero() {
		p.set("beginTime", in.BeginTime.Format(logTimeLayout))
	}
	if !in.EndTime.IsZero() {
		p.set("endTime", in.EndTime.Format(logTimeLayout))
	}
	return *p
}
