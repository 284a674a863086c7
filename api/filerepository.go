package api

const ContentFileRepository = "fileRepository"

type CreateFolderInput struct {
	Name     string
	FolderID string
	DAGID    string
	RoleID   string
}

// CreateFolder encodes the creation of a file repository folder. An empty
// FolderID creates it at the top level.
func CreateFolder(in CreateFolderInput) (Payload, error) {
	if in.Name == "" {
		return Payload{}, missing("CreateFolder", "name")
	}
	p := newActionPayload(ContentFileRepository, ActionCreateFolder)
	p.set("name", in.Name)
	p.set("folder_id", in.FolderID)
	p.setIfNotEmpty("dag_id", in.DAGID)
	p.setIfNotEmpty("role_id", in.RoleID)
	return *p, nil
}

type ListFileRepositoryInput struct {
	FolderID string
}

// ListFileRepository encodes a folder listing; an empty FolderID lists the top level.
func ListFileRepository(in ListFileRepositoryInput) Payload {
	p := newActionPayload(ContentFileRepository, ActionList)
	p.set("folder_id", in.FolderID)
	return *p
}

type DocInput struct {
	DocID string
}

func ExportFileRepository(in DocInput) (Payload, error) {
	if in.DocID == "" {
		return Payload{}, missing("ExportFileRepository", "doc_id")
	}
	p := newActionPayload(ContentFileRepository, ActionExport)
	p.set("doc_id", in.DocID)
	return *p, nil
}

type ImportFileRepositoryInput struct {
	FolderID string
}

// ImportFileRepository encodes the form fields of a repository upload.
func ImportFileRepository(in ImportFileRepositoryInput) Payload {
	p := newActionPayload(ContentFileRepository, ActionImport)
	p.setIfNotEmpty("folder_id", in.FolderID)
	return *p
}

func DeleteFileRepository(in DocInput) (Payload, error) {
	if in.DocID == "" {
		return Payload{}, missing("DeleteFileRepository", "doc_id")
	}
	p := newActionPayload(ContentFileRepository, ActionDelete)
	p.set("doc_id", in.DocID)
	return *p, nil
}
