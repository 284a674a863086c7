package api

const ContentMetadata = "metadata"

// GetMetadataInput filters a data dictionary export. Format defaults to csv.
type GetMetadataInput struct {
	Format Format
	Fields []string
	Forms  []string
}

// GetMetadata encodes a data dictionary export.
func GetMetadata(in GetMetadataInput) Payload {
	p := newPayload(ContentMetadata)
	p.set(KeyFormat, string(in.Format.or(FormatCSV)))
	p.setList("fields", in.Fields)
	p.setList("forms", in.Forms)
	return *p
}

// ImportMetadataInput carries a data dictionary. Format defaults to csv. A
// table is written as CSV or JSON to match the format, records likewise, and
// text is sent exactly as given.
type ImportMetadataInput struct {
	Data   Data
	Format Format
}

// ImportMetadata encodes a data dictionary import.
func ImportMetadata(in ImportMetadataInput) (Payload, error) {
	p := newActionPayload(ContentMetadata, ActionImport)
	if err := p.setData("ImportMetadata", in.Format.or(FormatCSV), in.Data); err != nil {
		return Payload{}, err
	}
	return *p, nil
}
