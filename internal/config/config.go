package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"
)

// Environment variables consulted when neither a flag nor the config file
// supplies the endpoint or token.
const (
	EnvURL   = "REDCAP_API_URL"
	EnvToken = "REDCAP_API_TOKEN"
)

type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
	OutputText OutputFormat = "text"
)

type Config struct {
	URL        string        `mapstructure:"url"`
	Token      string        `mapstructure:"token"`
	TokenFile  string        `mapstructure:"token_file"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Rate       float64       `mapstructure:"rate"`
	UserAgent  string        `mapstructure:"user_agent"`
	Output     OutputFormat  `mapstructure:"output"`
	Select     string        `mapstructure:"select"`
	Stats      bool          `mapstructure:"stats"`
	Log        LogConfig     `mapstructure:"log"`
	Tracing    TracingConfig `mapstructure:"tracing"`
	ConfigFile string        `mapstructure:"-"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or text
}

// TracingConfig configures span export. Tracing is on when an OTLP endpoint is
// set here or in OTEL_EXPORTER_OTLP_ENDPOINT.
type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	Protocol    string  `mapstructure:"protocol"` // grpc or http
	ServiceName string  `mapstructure:"service_name"`
	SampleRate  float64 `mapstructure:"sample_rate"`
	Insecure    bool    `mapstructure:"insecure"`
	Propagate   *bool   `mapstructure:"propagate"`
}

func (t TracingConfig) Enabled() bool {
	return strings.TrimSpace(t.Endpoint) != "" || os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != ""
}

// ShouldPropagate reports whether W3C headers go out with each call. It
// follows Enabled unless set explicitly.
func (t TracingConfig) ShouldPropagate() bool {
	if t.Propagate != nil {
		return *t.Propagate
	}
	return t.Enabled()
}

// LogValue keeps the token out of log records.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", c.URL),
		slog.Bool("token_set", c.Token != ""),
		slog.Duration("timeout", c.Timeout),
		slog.Float64("rate", c.Rate),
		slog.String("output", string(c.Output)),
		slog.String("config_file", c.ConfigFile),
	)
}

type ValidationError struct {
	issues []string
}

func (e ValidationError) Error() string {
	if len(e.issues) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.issues, "; "))
}

func (e ValidationError) Issues() []string {
	return append([]string(nil), e.issues...)
}

func (c Config) Validate() error {
	var issues []string

	if strings.TrimSpace(c.URL) == "" {
		issues = append(issues, fmt.Sprintf("url is required (use --url or %s)", EnvURL))
	} else if u, err := url.Parse(c.URL); err != nil || u.Scheme == "" || u.Host == "" {
		issues = append(issues, fmt.Sprintf("url %q is not an absolute URL", c.URL))
	} else if u.Scheme != "https" && u.Scheme != "http" {
		issues = append(issues, fmt.Sprintf("url scheme %q is not supported", u.Scheme))
	}

	if c.Token == "" {
		issues = append(issues, fmt.Sprintf("token is required (use --token, --token-file or %s)", EnvToken))
	}
	if c.Timeout < 0 {
		issues = append(issues, "timeout must be >= 0")
	}
	if c.Rate < 0 {
		issues = append(issues, "rate must be >= 0")
	}

	switch c.Output {
	case "", OutputJSON, OutputYAML, OutputText:
	default:
		issues = append(issues, fmt.Sprintf("output must be 'json', 'yaml' or 'text', got %q", c.Output))
	}

	issues = append(issues, validateLogConfig(c.Log)...)
	issues = append(issues, validateTracingConfig(c.Tracing)...)

	if len(issues) > 0 {
		return ValidationError{issues: issues}
	}
	return nil
}

func validateLogConfig(l LogConfig) []string {
	var issues []string
	switch strings.ToLower(l.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		issues = append(issues, fmt.Sprintf("log: level %q is not supported", l.Level))
	}
	switch strings.ToLower(l.Format) {
	case "", "json", "text":
	default:
		issues = append(issues, fmt.Sprintf("log: format must be 'json' or 'text', got %q", l.Format))
	}
	return issues
}

func validateTracingConfig(t TracingConfig) []string {
	var issues []string
	switch strings.ToLower(t.Protocol) {
	case "", "grpc", "http":
	default:
		issues = append(issues, fmt.Sprintf("tracing: protocol must be 'grpc' or 'http', got %q", t.Protocol))
	}
	if t.SampleRate < 0 || t.SampleRate > 1 {
		issues = append(issues, fmt.Sprintf("tracing: sample_rate must be between 0.0 and 1.0, got %g", t.SampleRate))
	}
	return issues
}
