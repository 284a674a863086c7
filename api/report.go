package api

const ContentReport = "report"

type GetReportInput struct {
	ReportID            string
	Format              Format
	RawOrLabel          string
	RawOrLabelHeaders   string
	ExportCheckboxLabel bool
	CSVDelimiter        string
	DecimalCharacter    string
}

// GetReport encodes the export of a saved report. ReportID is required.
func GetReport(in GetReportInput) (Payload, error) {
	if in.ReportID == "" {
		return Payload{}, missing("GetReport", "report_id")
	}
	p := newPayload(ContentReport)
	p.set("report_id", in.ReportID)
	if f := in.Format.or(FormatJSON); f != FormatJSON {
		p.set(KeyFormat, string(f))
	}
	p.setIfNotEmpty("rawOrLabel", in.RawOrLabel)
	p.setIfNotEmpty("rawOrLabelHeaders", in.RawOrLabelHeaders)
	p.setBool("exportCheckboxLabel", in.ExportCheckboxLabel)
	p.setIfNotEmpty("csvDelimiter", in.CSVDelimiter)
	p.setIfNotEmpty("decimalCharacter", in.DecimalCharacter)
	return *p, nil
}
