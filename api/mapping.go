package api

const (
	ContentUserDAGMapping   = "userDagMapping"
	ContentUserRoleMapping  = "userRoleMapping"
	ContentFormEventMapping = "formEventMapping"
)

func GetUserDAGMappings() Payload {
	return *newPayload(ContentUserDAGMapping)
}

func ImportUserDAGMappings(in ImportInput) (Payload, error) {
	return importRecords("ImportUserDAGMappings", ContentUserDAGMapping, in)
}

func GetUserRoleMappings() Payload {
	return *newPayload(ContentUserRoleMapping)
}

func ImportUserRoleMappings(in ImportInput) (Payload, error) {
	return importRecords("ImportUserRoleMappings", ContentUserRoleMapping, in)
}

type GetFormEventMappingsInput struct {
	Arms []int
}

// GetFormEventMappings encodes an instrument-event mapping export.
func GetFormEventMappings(in GetFormEventMappingsInput) Payload {
	p := newPayload(ContentFormEventMapping)
	p.setIntList("arms", in.Arms)
	return *p
}

// ImportFormEventMappings encodes an instrument-event mapping import.
func ImportFormEventMappings(in ImportInput) (Payload, error) {
	return importRecords("ImportFormEventMappings", ContentFormEventMapping, in)
}
