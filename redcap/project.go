package redcap

import (
	"context"
	"fmt"
	"strings"

	"github.com/torosent/redcaplite/api"
	"github.com/torosent/redcaplite/transport"
)

// CreateProject creates a project with a super API token and returns the new
// project's API token.
func (c *Client) CreateProject(ctx context.Context, settings api.Record, odm string) (string, error) {
	var data api.Records
	if settings != nil {
		data = api.Records{settings}
	}
	p, err := api.CreateProject(api.CreateProjectInput{Data: data, ODM: odm})
	token, err := c.text(ctx, p, err)
	return strings.TrimSpace(token), err
}

// GetProject returns the project's attributes in the order the service sends
// them.
func (c *Client) GetProject(ctx context.Context) (api.Record, error) {
	recs, err := c.records(ctx, api.GetProject())
	if err != nil {
		return nil, err
	}
	if len(recs) != 1 {
		return nil, fmt.Errorf("decode project: expected one object, got %d", len(recs))
	}
	return recs[0], nil
}

// GetProjectXML returns the project as CDISC ODM XML.
func (c *Client) GetProjectXML(ctx context.Context, in api.GetProjectXMLInput) (string, error) {
	return c.text(ctx, api.GetProjectXML(in), nil)
}

func (c *Client) ImportProjectSettings(ctx context.Context, settings api.Record) (int, error) {
	p, err := api.ImportProjectSettings(settings)
	return c.count(ctx, p, err)
}

// GetVersion returns the REDCap version, e.g. "14.5.2".
func (c *Client) GetVersion(ctx context.Context) (string, error) {
	v, err := c.text(ctx, api.GetVersion(), nil)
	return strings.TrimSpace(v), err
}

// GetMetadata exports the data dictionary. The result is CSV unless another
// format is requested.
func (c *Client) GetMetadata(ctx context.Context, in api.GetMetadataInput) (transport.Result, error) {
	return c.post(ctx, api.GetMetadata(in), nil)
}

// ImportMetadata replaces the data dictionary and returns the number of
// fields imported.
func (c *Client) ImportMetadata(ctx context.Context, in api.ImportMetadataInput) (int, error) {
	p, err := api.ImportMetadata(in)
	return c.count(ctx, p, err)
}

// GetLogs exports the project's logging. The result is CSV unless another
// format is requested.
func (c *Client) GetLogs(ctx context.Context, in api.GetLogsInput) (transport.Result, error) {
	return c.post(ctx, api.GetLogs(in), nil)
}

func (c *Client) GetReport(ctx context.Context, in api.GetReportInput) (transport.Result, error) {
	p, err := api.GetReport(in)
	return c.post(ctx, p, err)
}
