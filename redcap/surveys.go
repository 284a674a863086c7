package redcap

import (
	"context"
	"strings"

	"github.com/torosent/redcaplite/api"
	"github.com/torosent/redcaplite/transport"
)

func (c *Client) GetSurveyLink(ctx context.Context, in api.SurveyInput) (string, error) {
	p, err := api.GetSurveyLink(in)
	link, err := c.text(ctx, p, err)
	return strings.TrimSpace(link), err
}

func (c *Client) GetSurveyReturnCode(ctx context.Context, in api.SurveyInput) (string, error) {
	p, err := api.GetSurveyReturnCode(in)
	code, err := c.text(ctx, p, err)
	return strings.TrimSpace(code), err
}

func (c *Client) GetSurveyQueueLink(ctx context.Context, record string) (string, error) {
	p, err := api.GetSurveyQueueLink(record)
	link, err := c.text(ctx, p, err)
	return strings.TrimSpace(link), err
}

// GetParticipantList exports a survey's participants, json unless another
// format is requested.
func (c *Client) GetParticipantList(ctx context.Context, in api.ParticipantListInput) (transport.Result, error) {
	p, err := api.GetParticipantList(in)
	return c.post(ctx, p, err)
}
