package config

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		URL:     "https://redcap.example.org/api/",
		Token:   "ABC123",
		Output:  OutputJSON,
		Tracing: TracingConfig{SampleRate: 1},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing url", func(c *Config) { c.URL = "" }, "url is required"},
		{"relative url", func(c *Config) { c.URL = "/api/" }, "not an absolute URL"},
		{"bad scheme", func(c *Config) { c.URL = "ftp://redcap.example.org/" }, "scheme"},
		{"missing token", func(c *Config) { c.Token = "" }, "token is required"},
		{"negative timeout", func(c *Config) { c.Timeout = -1 }, "timeout must be >= 0"},
		{"negative rate", func(c *Config) { c.Rate = -1 }, "rate must be >= 0"},
		{"bad output", func(c *Config) { c.Output = "xml" }, "output must be"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log: level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log: format"},
		{"bad tracing protocol", func(c *Config) { c.Tracing.Protocol = "thrift" }, "tracing: protocol"},
		{"bad sample rate", func(c *Config) { c.Tracing.SampleRate = 2 }, "sample_rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCollectsAllIssues(t *testing.T) {
	err := Config{Rate: -1}.Validate()
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := len(verr.Issues()); got != 3 {
		t.Errorf("got %d issues, want 3: %v", got, verr.Issues())
	}
}

func TestTracingConfigPropagation(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	if (TracingConfig{}).ShouldPropagate() {
		t.Error("disabled tracing should not propagate by default")
	}
	if !(TracingConfig{Endpoint: "localhost:4317"}).ShouldPropagate() {
		t.Error("enabled tracing should propagate by default")
	}
	on := true
	if !(TracingConfig{Propagate: &on}).ShouldPropagate() {
		t.Error("explicit propagate=true ignored")
	}
}

func TestConfigLogValueHidesToken(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	cfg := validConfig()
	cfg.Token = "SUPERSECRETTOKEN"
	logger.Info("loaded", "config", cfg)

	if strings.Contains(buf.String(), "SUPERSECRETTOKEN") {
		t.Fatalf("token leaked into log output: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"token_set":true`) {
		t.Errorf("expected token_set in log output: %s", buf.String())
	}
}
