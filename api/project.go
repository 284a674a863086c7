package api

const (
	ContentProject         = "project"
	ContentProjectSettings = "project_settings"
	ContentProjectXML      = "project_xml"
)

// CreateProjectInput describes a new project. Data holds a single record of
// project attributes; ODM optionally carries a project XML file's contents.
type CreateProjectInput struct {
	Data Records
	ODM  string
}

// CreateProject encodes a project creation. It needs a super API token.
func CreateProject(in CreateProjectInput) (Payload, error) {
	if in.Data == nil {
		return Payload{}, missing("CreateProject", KeyData)
	}
	p := newPayload(ContentProject)
	p.set(KeyFormat, string(FormatJSON))
	if err := p.setEncoded("CreateProject", FormatJSON, FromRecords(in.Data)); err != nil {
		return Payload{}, err
	}
	p.setIfNotEmpty("odm", in.ODM)
	return *p, nil
}

// GetProject encodes a project information export.
func GetProject() Payload {
	return *newPayload(ContentProject)
}

// ImportProjectSettings encodes an update of project attributes.
func ImportProjectSettings(settings Record) (Payload, error) {
	if settings == nil {
		return Payload{}, missing("ImportProjectSettings", KeyData)
	}
	encoded, err := Records{settings}.JSON()
	if err != nil {
		return Payload{}, err
	}
	p := newPayload(ContentProjectSettings)
	p.set(KeyFormat, string(FormatJSON))
	// the remote side expects a single object here, not an array
	p.set(KeyData, encoded[1:len(encoded)-1])
	return *p, nil
}

// GetProjectXMLInput lists the filters a project XML export accepts. Anything
// not listed here is not sent.
type GetProjectXMLInput struct {
	ReturnMetadataOnly     bool
	Records                []string
	Fields                 []string
	Events                 []string
	ExportSurveyFields     bool
	ExportDataAccessGroups bool
	FilterLogic            string
	ExportFiles            bool
}

// GetProjectXML encodes a CDISC ODM export of the whole project.
func GetProjectXML(in GetProjectXMLInput) Payload {
	p := newPayload(ContentProjectXML)
	p.setBool("returnMetadataOnly", in.ReturnMetadataOnly)
	p.setList("records", in.Records)
	p.setList("fields", in.Fields)
	p.setList("events", in.Events)
	p.setBool("exportSurveyFields", in.ExportSurveyFields)
	p.setBool("exportDataAccessGroups", in.ExportDataAccessGroups)
	p.setIfNotEmpty("filterLogic", in.FilterLogic)
	p.setBool("exportFiles", in.ExportFiles)
	return *p
}
