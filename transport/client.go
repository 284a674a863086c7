package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/torosent/redcaplite/api"
	"github.com/torosent/redcaplite/internal/tracing"
)

const (
	contentTypeForm = "application/x-www-form-urlencoded"
	requestIDHeader = "X-Request-Id"
)

// Client sends payloads to one REDCap API endpoint with one token. It is safe
// for concurrent use when its Doer is.
type Client struct {
	url   string
	token string

	http      Doer
	timeout   time.Duration
	logger    *slog.Logger
	tracer    trace.Tracer
	propagate bool
	observer  Observer
	limiter   *rate.Limiter
	userAgent string
}

// Response is a raw reply: status, headers and the full body.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// Path is where Download wrote the body. Empty for other calls.
	Path string
}

func New(apiURL, token string, opts ...Option) (*Client, error) {
	apiURL = strings.TrimSpace(apiURL)
	if apiURL == "" {
		return nil, errors.New("API URL is required")
	}
	parsed, err := url.Parse(apiURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid API URL %q", apiURL)
	}
	if token == "" {
		return nil, errors.New("API token is required")
	}

	c := &Client{
		url:    apiURL,
		token:  token,
		logger: slog.New(slog.DiscardHandler),
		tracer: tracing.NoopTracer(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = NewHTTPClient(c.timeout)
	}
	if c.tracer == nil {
		c.tracer = tracing.NoopTracer()
	}
	return c, nil
}

// URL returns the endpoint every call is sent to.
func (c *Client) URL() string {
	return c.url
}

// Post sends p and decodes the reply according to the format p declares.
// A payload that declares no format is sent and decoded as json.
func (c *Client) Post(ctx context.Context, p api.Payload) (Result, error) {
	resp, err := c.send(ctx, p, true, formBody)
	if err != nil {
		return Result{}, err
	}
	return decoderFor(p.Format())(resp.Body)
}

// PostText sends p and returns the reply body as text.
func (c *Client) PostText(ctx context.Context, p api.Payload) (string, error) {
	resp, err := c.send(ctx, p, false, formBody)
	if err != nil {
		return "", err
	}
	return string(resp.Body), nil
}

// Download sends p and writes the reply body to dest, replacing any existing
// file. When dest is empty or a directory the file is named after the reply.
// Nothing is written when the remote side rejects the request.
func (c *Client) Download(ctx context.Context, p api.Payload, dest string) (*Response, error) {
	resp, err := c.send(ctx, p, false, formBody)
	if err != nil {
		return nil, err
	}
	path, err := writeDownload(resp, dest)
	if err != nil {
		return resp, err
	}
	resp.Path = path
	return resp, nil
}

// Upload sends p as multipart form fields with the contents of filePath
// attached as the "file" part.
func (c *Client) Upload(ctx context.Context, filePath string, p api.Payload) (*Response, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	defer f.Close()

	return c.send(ctx, p, false, multipartBody(f, filepath.Base(filePath)))
}

type field struct {
	key, value string
}

// bodyFunc renders the wire fields into a request body and its content type.
type bodyFunc func(fields []field) (io.Reader, string, error)

func formBody(fields []field) (io.Reader, string, error) {
	values := make(url.Values, len(fields))
	for _, f := range fields {
		values.Set(f.key, f.value)
	}
	return strings.NewReader(values.Encode()), contentTypeForm, nil
}

func multipartBody(file io.Reader, filename string) bodyFunc {
	return func(fields []field) (io.Reader, string, error) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for _, f := range fields {
			if err := w.WriteField(f.key, f.value); err != nil {
				return nil, "", err
			}
		}
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file); err != nil {
			return nil, "", fmt.Errorf("read upload file: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		return &buf, w.FormDataContentType(), nil
	}
}

// wireFields lists what goes on the wire: the payload's own fields followed by
// the credential and returnFormat. The payload itself is left untouched.
func (c *Client) wireFields(p api.Payload, defaultFormat bool) []field {
	keys := p.Keys()
	fields := make([]field, 0, len(keys)+3)
	for _, k := range keys {
		v, _ := p.Get(k)
		fields = append(fields, field{k, v})
	}
	if defaultFormat && p.Format() == "" {
		fields = append(fields, field{api.KeyFormat, string(api.FormatJSON)})
	}
	return append(fields,
		field{api.KeyToken, c.token},
		field{api.KeyReturnFormat, string(api.FormatJSON)},
	)
}

// send performs exactly one round trip and classifies its status.
func (c *Client) send(ctx context.Context, p api.Payload, defaultFormat bool, build bodyFunc) (resp *Response, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	requestID := ulid.Make().String()
	ctx, span := tracing.StartRequestSpan(ctx, c.tracer, p.Content(), p.Action())
	start := time.Now()
	status := 0
	defer func() {
		elapsed := time.Since(start)
		tracing.EndSpan(span, err, semconv.HTTPResponseStatusCode(status))
		c.record(ctx, requestID, p, status, elapsed, err)
	}()

	body, contentType, err := build(c.wireFields(p, defaultFormat))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.propagate {
		tracing.InjectHTTPHeaders(ctx, req.Header)
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", p.Content(), err)
	}
	defer httpResp.Body.Close()
	status = httpResp.StatusCode

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if apiErr := classify(status, data); apiErr != nil {
		return nil, apiErr
	}
	return &Response{StatusCode: status, Header: httpResp.Header, Body: data}, nil
}

func (c *Client) record(ctx context.Context, requestID string, p api.Payload, status int, elapsed time.Duration, err error) {
	attrs := []slog.Attr{
		slog.String("request_id", requestID),
		slog.String("content", p.Content()),
		slog.Int("status", status),
		slog.Duration("duration", elapsed),
	}
	if action := p.Action(); action != "" {
		attrs = append(attrs, slog.String("action", action))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	c.logger.LogAttrs(ctx, slog.LevelDebug, "redcap call", attrs...)

	if c.observer != nil {
		c.observer.Observe(Call{
			Content:  p.Content(),
			Action:   p.Action(),
			Status:   status,
			Duration: elapsed,
			Err:      err,
		})
	}
}
