package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/torosent/redcaplite/api"
)

const testToken = "ABCDEF0123456789"

// recorder is an httptest server that remembers the form of every request.
type recorder struct {
	mu       sync.Mutex
	forms    []url.Values
	headers  []http.Header
	status   int
	body     string
	respHead http.Header
	server   *httptest.Server
}

func newRecorder(t *testing.T, status int, body string) *recorder {
	t.Helper()
	rec := &recorder{status: status, body: body, respHead: http.Header{}}
	rec.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("ParseMultipartForm: %v", err)
			}
		} else if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		rec.mu.Lock()
		rec.forms = append(rec.forms, r.PostForm)
		rec.headers = append(rec.headers, r.Header.Clone())
		rec.mu.Unlock()

		for k, v := range rec.respHead {
			w.Header()[k] = v
		}
		w.WriteHeader(rec.status)
		io.WriteString(w, rec.body)
	}))
	t.Cleanup(rec.server.Close)
	return rec
}

func (r *recorder) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

func (r *recorder) lastForm() url.Values {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.forms[len(r.forms)-1]
}

func newTestClient(t *testing.T, rec *recorder, opts ...Option) *Client {
	t.Helper()
	c, err := New(rec.server.URL, testToken, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		token string
	}{
		{"empty url", "", testToken},
		{"relative url", "/api/", testToken},
		{"missing host", "https://", testToken},
		{"missing token", "https://redcap.example.org/api/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.url, tt.token); err == nil {
				t.Error("expected error")
			}
		})
	}

	c, err := New(" https://redcap.example.org/api/ ", testToken)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.URL() != "https://redcap.example.org/api/" {
		t.Errorf("URL() = %q", c.URL())
	}
}

func TestPostAddsCredentialsToWireCopyOnly(t *testing.T) {
	rec := newRecorder(t, http.StatusOK, `[{"arm_num": 1, "name": "Arm 1"}]`)
	c := newTestClient(t, rec)

	p := api.GetArms(api.GetArmsInput{Arms: []int{1}})
	before := p.Map()

	res, err := c.Post(context.Background(), p)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if res.Format() != api.FormatJSON {
		t.Errorf("Format() = %q", res.Format())
	}

	form := rec.lastForm()
	want := map[string]string{
		"content":      "arm",
		"arms[0]":      "1",
		"format":       "json",
		"token":        testToken,
		"returnFormat": "json",
	}
	for k, v := range want {
		if got := form.Get(k); got != v {
			t.Errorf("wire %s = %q, want %q", k, got, v)
		}
	}
	if len(form) != len(want) {
		t.Errorf("wire form has %d keys, want %d: %v", len(form), len(want), form)
	}

	after := p.Map()
	if len(after) != len(before) {
		t.Errorf("payload mutated: %v -> %v", before, after)
	}
	if _, ok := p.Get(api.KeyToken); ok {
		t.Error("token leaked into the payload")
	}
	if _, ok := p.Get(api.KeyFormat); ok {
		t.Error("format stamped onto the payload")
	}
}

func TestPostKeepsDeclaredFormat(t *testing.T) {
	rec := newRecorder(t, http.StatusOK, "field_name,form_name\nrecord_id,demo\n")
	c := newTestClient(t, rec)

	res, err := c.Post(context.Background(), api.GetMetadata(api.GetMetadataInput{}))
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if got := rec.lastForm().Get("format"); got != "csv" {
		t.Errorf("wire format = %q, want csv", got)
	}
	if res.Format() != api.FormatCSV || res.Text() != "field_name,form_name\nrecord_id,demo\n" {
		t.Errorf("unexpected result %q (%s)", res.Text(), res.Format())
	}
	table, err := res.Table()
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	if table.Len() != 1 || table.Header[0] != "field_name" {
		t.Errorf("Table() = %+v", table)
	}
}

func TestPostXMLIsText(t *testing.T) {
	rec := newRecorder(t, http.StatusOK, "<ODM/>")
	c := newTestClient(t, rec)
	p := api.ExportRecords(api.ExportRecordsInput{Format: api.FormatXML})

	res, err := c.Post(context.Background(), p)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if res.Text() != "<ODM/>" {
		t.Errorf("Text() = %q", res.Text())
	}
	if err := res.Decode(new(any)); err == nil {
		t.Error("Decode() on an XML result should fail")
	}
}

func TestPostInvalidJSON(t *testing.T) {
	rec := newRecorder(t, http.StatusOK, "<html>oops</html>")
	c := newTestClient(t, rec)
	if _, err := c.Post(context.Background(), api.GetDAGs()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestPostClassifiesErrors(t *testing.T) {
	rec := newRecorder(t, http.StatusBadRequest, `{"error": "The value of the parameter \"arms\" is not valid"}`)
	c := newTestClient(t, rec)

	_, err := c.Post(context.Background(), api.GetArms(api.GetArmsInput{}))
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("error = %v, want ErrBadRequest", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 {
		t.Fatalf("errors.As failed: %v", err)
	}
	if apiErr.Message != `Bad Request: The value of the parameter "arms" is not valid` {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if rec.calls() != 1 {
		t.Errorf("calls = %d, want exactly one", rec.calls())
	}
}

func TestPostNoRetryOnServerError(t *testing.T) {
	rec := newRecorder(t, http.StatusInternalServerError, "")
	c := newTestClient(t, rec)
	_, err := c.Post(context.Background(), api.GetProject())
	if !errors.Is(err, ErrServerError) {
		t.Fatalf("error = %v", err)
	}
	if rec.calls() != 1 {
		t.Errorf("calls = %d, want 1", rec.calls())
	}
}

func TestPostText(t *testing.T) {
	rec := newRecorder(t, http.StatusOK, "14.5.2")
	c := newTestClient(t, rec)
	v, err := c.PostText(context.Background(), api.GetVersion())
	if err != nil {
		t.Fatalf("PostText() error = %v", err)
	}
	if v != "14.5.2" {
		t.Errorf("PostText() = %q", v)
	}
	form := rec.lastForm()
	if form.Get("content") != "version" || form.Get("token") != testToken || form.Get("returnFormat") != "json" {
		t.Errorf("wire form = %v", form)
	}
	if _, ok := form["format"]; ok {
		t.Error("PostText should not stamp a format")
	}
}

func TestResultCount(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{`3`, 3},
		{`"2"`, 2},
		{`{"count": 5}`, 5},
		{`{"item_count": "7"}`, 7},
	}
	for _, tt := range tests {
		res, err := NewResult(api.FormatJSON, []byte(tt.body))
		if err != nil {
			t.Fatalf("NewResult(%s) error = %v", tt.body, err)
		}
		got, err := res.Count()
		if err != nil {
			t.Fatalf("Count(%s) error = %v", tt.body, err)
		}
		if got != tt.want {
			t.Errorf("Count(%s) = %d, want %d", tt.body, got, tt.want)
		}
	}

	for _, body := range []string{`{}`, `"x"`, `[]`} {
		res, _ := NewResult(api.FormatJSON, []byte(body))
		if _, err := res.Count(); err == nil {
			t.Errorf("Count(%s) should fail", body)
		}
	}
}

func TestResultRecordsKeepOrder(t *testing.T) {
	res, err := NewResult(api.FormatJSON, []byte(`[{"z": 1, "a": "x"}]`))
	if err != nil {
		t.Fatal(err)
	}
	recs, err := res.Records()
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if names := recs[0].Names(); names[0] != "z" || names[1] != "a" {
		t.Errorf("Names() = %v", names)
	}

	res, _ = NewResult(api.FormatJSON, []byte(`{"project_id": 1}`))
	recs, err = res.Records()
	if err != nil || len(recs) != 1 {
		t.Errorf("single object Records() = %v, %v", recs, err)
	}
}

func TestDownloadWritesBody(t *testing.T) {
	rec := newRecorder(t, http.StatusOK, "file-bytes")
	rec.respHead.Set("Content-Type", `text/plain; name="consent.txt"`)
	c := newTestClient(t, rec)
	p, err := api.ExportFile(api.FileInput{Record: "1", Field: "upload"})
	if err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(t.TempDir(), "out.bin")
	if err := os.WriteFile(dest, []byte("old contents that are longer"), 0o644); err != nil {
		t.Fatal(err)
	}
	resp, err := c.Download(context.Background(), p, dest)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if resp.Path != dest {
		t.Errorf("Path = %q, want %q", resp.Path, dest)
	}
	data, _ := os.ReadFile(dest)
	if string(data) != "file-bytes" {
		t.Errorf("file = %q", data)
	}
	if _, ok := rec.lastForm()["format"]; ok {
		t.Error("download should not stamp a format")
	}
}

func TestDownloadCreatesReadableFile(t *testing.T) {
	rec := newRecorder(t, http.StatusOK, "%PDF-1.4")
	c := newTestClient(t, rec)
	dir := t.TempDir()

	// A plain WriteFile in the same directory shows the mode the umask allows.
	ref := filepath.Join(dir, "ref")
	if err := os.WriteFile(ref, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	refInfo, err := os.Stat(ref)
	if err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(dir, "form.pdf")
	if _, err := c.Download(context.Background(), api.ExportPDF(api.ExportPDFInput{}), dest); err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	info, err := os.Stat(dest)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := info.Mode().Perm(), refInfo.Mode().Perm(); got != want {
		t.Errorf("mode of new download = %v, want %v", got, want)
	}
}

func TestDownloadNamesFileFromResponse(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"content type name", map[string]string{"Content-Type": `application/pdf; name="form.pdf"`}, "form.pdf"},
		{"content disposition", map[string]string{"Content-Disposition": `attachment; filename="doc.csv"`}, "doc.csv"},
		{"path in name is stripped", map[string]string{"Content-Type": `text/plain; name="../../etc/x.txt"`}, "x.txt"},
		{"fallback", nil, "download.raw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecorder(t, http.StatusOK, "data")
			for k, v := range tt.headers {
				rec.respHead.Set(k, v)
			}
			c := newTestClient(t, rec)
			dir := t.TempDir()
			resp, err := c.Download(context.Background(), api.ExportPDF(api.ExportPDFInput{}), dir)
			if err != nil {
				t.Fatalf("Download() error = %v", err)
			}
			if want := filepath.Join(dir, tt.want); resp.Path != want {
				t.Errorf("Path = %q, want %q", resp.Path, want)
			}
			if _, err := os.Stat(resp.Path); err != nil {
				t.Errorf("file not written: %v", err)
			}
		})
	}
}

func TestDownloadWritesNothingOnError(t *testing.T) {
	rec := newRecorder(t, http.StatusNotFound, "missing")
	c := newTestClient(t, rec)
	dest := filepath.Join(t.TempDir(), "out.bin")

	_, err := c.Download(context.Background(), api.ExportPDF(api.ExportPDFInput{}), dest)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("destination should not exist, stat error = %v", err)
	}
}

func TestUploadSendsMultipart(t *testing.T) {
	var gotFile, gotName string
	var gotForm url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			return
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		gotFile, gotName = string(data), header.Filename
		gotForm = r.PostForm
	}))
	defer server.Close()

	c, err := New(server.URL, testToken)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "consent.pdf")
	if err := os.WriteFile(path, []byte("%PDF"), 0o600); err != nil {
		t.Fatal(err)
	}
	p, _ := api.ImportFile(api.FileInput{Record: "7", Field: "consent"})

	resp, err := c.Upload(context.Background(), path, p)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", resp.StatusCode)
	}
	if gotFile != "%PDF" || gotName != "consent.pdf" {
		t.Errorf("file part = %q (%q)", gotFile, gotName)
	}
	for k, v := range map[string]string{"content": "file", "action": "import", "record": "7", "field": "consent", "repeat_instance": "1", "token": testToken} {
		if gotForm.Get(k) != v {
			t.Errorf("form %s = %q, want %q", k, gotForm.Get(k), v)
		}
	}
}

func TestUploadMissingFile(t *testing.T) {
	rec := newRecorder(t, http.StatusOK, "")
	c := newTestClient(t, rec)
	_, err := c.Upload(context.Background(), filepath.Join(t.TempDir(), "nope"), api.ImportFileRepository(api.ImportFileRepositoryInput{}))
	if err == nil {
		t.Fatal("expected error")
	}
	if rec.calls() != 0 {
		t.Errorf("no request should be sent, got %d", rec.calls())
	}
}

func TestTokenNeverLogged(t *testing.T) {
	rec := newRecorder(t, http.StatusForbidden, "")
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := newTestClient(t, rec, WithLogger(logger))

	c.Post(context.Background(), api.GetUsers())
	c.PostText(context.Background(), api.GetVersion())

	out := logs.String()
	if !strings.Contains(out, "content=user") {
		t.Errorf("expected a call record, got %q", out)
	}
	if strings.Contains(out, testToken) {
		t.Errorf("token found in logs: %q", out)
	}
}

type observerFunc func(Call)

func (f observerFunc) Observe(c Call) { f(c) }

func TestObserverAndRequestHeaders(t *testing.T) {
	rec := newRecorder(t, http.StatusOK, `[]`)
	var calls []Call
	c := newTestClient(t, rec,
		WithUserAgent("redcap-test/1.0"),
		WithObserver(observerFunc(func(call Call) { calls = append(calls, call) })),
	)
	p, _ := api.DeleteArms(api.DeleteArmsInput{Arms: []int{2}})
	if _, err := c.Post(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	if len(calls) != 1 {
		t.Fatalf("observer calls = %d", len(calls))
	}
	if calls[0].Content != "arm" || calls[0].Action != "delete" || calls[0].Status != 200 || calls[0].Err != nil {
		t.Errorf("call = %+v", calls[0])
	}
	h := rec.headers[0]
	if h.Get("User-Agent") != "redcap-test/1.0" {
		t.Errorf("User-Agent = %q", h.Get("User-Agent"))
	}
	if h.Get(requestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestSpanRecordedPerCall(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())

	rec := newRecorder(t, http.StatusUnauthorized, "")
	c := newTestClient(t, rec, WithTracer(tp.Tracer("test")), WithPropagation(true))

	p, _ := api.ImportUsers(api.ImportInput{Data: api.Records{api.R("username", "ann")}})
	if _, err := c.Post(context.Background(), p); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("error = %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	span := spans[0]
	if span.Name != "redcap user import" {
		t.Errorf("span name = %q", span.Name)
	}
	if span.Status.Code != codes.Error {
		t.Errorf("status = %v", span.Status)
	}
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes {
		attrs[kv.Key] = kv.Value
		if strings.Contains(kv.Value.Emit(), testToken) {
			t.Errorf("token in span attribute %s", kv.Key)
		}
	}
	if attrs["http.response.status_code"].AsInt64() != 401 {
		t.Errorf("status attribute = %v", attrs["http.response.status_code"])
	}
}

func TestRateLimitHonorsContext(t *testing.T) {
	rec := newRecorder(t, http.StatusOK, "14.0.0")
	c := newTestClient(t, rec, WithRateLimit(0.5))

	if _, err := c.PostText(context.Background(), api.GetVersion()); err != nil {
		t.Fatalf("first call error = %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.PostText(ctx, api.GetVersion()); err == nil {
		t.Fatal("expected rate limit error")
	}
	if rec.calls() != 1 {
		t.Errorf("calls = %d, want 1", rec.calls())
	}
}
