package redcap

import (
	"context"

	"github.com/torosent/redcaplite/api"
)

// ExportFile downloads the file stored in a record field to dest and returns
// the path written. When dest is "" or a directory the service's file name is
// used.
func (c *Client) ExportFile(ctx context.Context, in api.FileInput, dest string) (string, error) {
	p, err := api.ExportFile(in)
	return c.download(ctx, p, err, dest)
}

// ImportFile uploads filePath into a record field.
func (c *Client) ImportFile(ctx context.Context, in api.FileInput, filePath string) error {
	p, err := api.ImportFile(in)
	return c.upload(ctx, filePath, p, err)
}

func (c *Client) DeleteFile(ctx context.Context, in api.FileInput) error {
	p, err := api.DeleteFile(in)
	_, err = c.text(ctx, p, err)
	return err
}

// CreateFolder creates a file repository folder and returns its id.
func (c *Client) CreateFolder(ctx context.Context, in api.CreateFolderInput) (Int, error) {
	p, err := api.CreateFolder(in)
	if err != nil {
		return 0, err
	}
	created, err := list[FileRepositoryItem](ctx, c, p)
	if err != nil {
		return 0, err
	}
	if len(created) == 0 {
		return 0, nil
	}
	return created[0].FolderID, nil
}

// ListFileRepository lists one folder, the top level when folderID is "".
func (c *Client) ListFileRepository(ctx context.Context, folderID string) ([]FileRepositoryItem, error) {
	return list[FileRepositoryItem](ctx, c, api.ListFileRepository(api.ListFileRepositoryInput{FolderID: folderID}))
}

func (c *Client) ExportFileRepository(ctx context.Context, docID, dest string) (string, error) {
	p, err := api.ExportFileRepository(api.DocInput{DocID: docID})
	return c.download(ctx, p, err, dest)
}

// ImportFileRepository uploads filePath into a folder, the top level when
// folderID is "".
func (c *Client) ImportFileRepository(ctx context.Context, filePath, folderID string) error {
	p := api.ImportFileRepository(api.ImportFileRepositoryInput{FolderID: folderID})
	return c.upload(ctx, filePath, p, nil)
}

func (c *Client) DeleteFileRepository(ctx context.Context, docID string) error {
	p, err := api.DeleteFileRepository(api.DocInput{DocID: docID})
	_, err = c.text(ctx, p, err)
	return err
}

// ExportPDF downloads instrument PDFs, blank or filled, to dest.
func (c *Client) ExportPDF(ctx context.Context, in api.ExportPDFInput, dest string) (string, error) {
	return c.download(ctx, api.ExportPDF(in), nil, dest)
}
