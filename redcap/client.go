// Package redcap is a typed client for the REDCap API. Each method encodes one
// request with package api, sends it with package transport and decodes the
// reply into Go values.
//
//	c, err := redcap.New("https://redcap.example.org/api/", token)
//	arms, err := c.GetArms(ctx)
//
// Errors from the remote side are *transport.Error values; missing required
// arguments are *api.MissingArgumentError values and are reported before
// anything is sent.
package redcap

import (
	"context"
	"fmt"

	"github.com/torosent/redcaplite/api"
	"github.com/torosent/redcaplite/transport"
)

// Client talks to one REDCap project.
type Client struct {
	t *transport.Client
}

func New(url, token string, opts ...transport.Option) (*Client, error) {
	t, err := transport.New(url, token, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{t: t}, nil
}

// NewWithTransport wraps an existing transport client.
func NewWithTransport(t *transport.Client) *Client {
	return &Client{t: t}
}

// Transport exposes the underlying transport for payloads this package has no
// method for.
func (c *Client) Transport() *transport.Client {
	return c.t
}

// post sends an encoded payload, passing through an encoder error.
func (c *Client) post(ctx context.Context, p api.Payload, err error) (transport.Result, error) {
	if err != nil {
		return transport.Result{}, err
	}
	return c.t.Post(ctx, p)
}

func (c *Client) text(ctx context.Context, p api.Payload, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return c.t.PostText(ctx, p)
}

// count sends a write and returns the number of items the service reports.
func (c *Client) count(ctx context.Context, p api.Payload, err error) (int, error) {
	res, err := c.post(ctx, p, err)
	if err != nil {
		return 0, err
	}
	n, err := res.Count()
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", p.Content(), p.Action(), err)
	}
	return n, nil
}

func (c *Client) records(ctx context.Context, p api.Payload) (api.Records, error) {
	res, err := c.t.Post(ctx, p)
	if err != nil {
		return nil, err
	}
	recs, err := res.Records()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.Content(), err)
	}
	return recs, nil
}

func list[T any](ctx context.Context, c *Client, p api.Payload) ([]T, error) {
	res, err := c.t.Post(ctx, p)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := res.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.Content(), err)
	}
	return out, nil
}

func (c *Client) download(ctx context.Context, p api.Payload, err error, dest string) (string, error) {
	if err != nil {
		return "", err
	}
	resp, err := c.t.Download(ctx, p, dest)
	if err != nil {
		return "", err
	}
	return resp.Path, nil
}

func (c *Client) upload(ctx context.Context, filePath string, p api.Payload, err error) error {
	if err != nil {
		return err
	}
	_, err = c.t.Upload(ctx, filePath, p)
	return err
}
