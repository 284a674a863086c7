package redcap

import (
	"context"
	"strings"

	"github.com/torosent/redcaplite/api"
	"github.com/torosent/redcaplite/transport"
)

// ExportRecords exports records in the requested format, json by default.
// Use Result.Records for json and Result.Table for csv.
func (c *Client) ExportRecords(ctx context.Context, in api.ExportRecordsInput) (transport.Result, error) {
	return c.post(ctx, api.ExportRecords(in), nil)
}

// ImportRecords imports record data. What the reply holds depends on
// in.ReturnContent: a count by default, or the record ids.
func (c *Client) ImportRecords(ctx context.Context, in api.ImportRecordsInput) (transport.Result, error) {
	p, err := api.ImportRecords(in)
	return c.post(ctx, p, err)
}

func (c *Client) DeleteRecords(ctx context.Context, in api.DeleteRecordsInput) (int, error) {
	p, err := api.DeleteRecords(in)
	return c.count(ctx, p, err)
}

func (c *Client) RenameRecord(ctx context.Context, in api.RenameRecordInput) error {
	p, err := api.RenameRecord(in)
	_, err = c.count(ctx, p, err)
	return err
}

// GenerateNextRecordName returns the next record name for auto-numbered projects.
func (c *Client) GenerateNextRecordName(ctx context.Context) (string, error) {
	name, err := c.text(ctx, api.GenerateNextRecordName(), nil)
	return strings.TrimSpace(name), err
}
