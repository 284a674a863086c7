package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func TestAsString(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{"hello", "hello"},
		{123, "123"},
		{true, "true"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := asString(tt.input); got != tt.want {
			t.Errorf("asString(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestAsFloat64(t *testing.T) {
	tests := []struct {
		input   any
		want    float64
		wantErr bool
	}{
		{input: 2.5, want: 2.5},
		{input: " 0.25 ", want: 0.25},
		{input: int64(3), want: 3},
		{input: 4, want: 4},
		{input: nil, want: 0},
		{input: "fast", wantErr: true},
		{input: []int{1}, wantErr: true},
	}
	for _, tt := range tests {
		got, err := asFloat64(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("asFloat64(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("asFloat64(%v) = %g, want %g", tt.input, got, tt.want)
		}
	}
}

func TestAsBool(t *testing.T) {
	tests := []struct {
		input any
		want  bool
	}{
		{true, true},
		{"true", true},
		{"1", true},
		{false, false},
		{"false", false},
		{"", false},
		{nil, false},
	}
	for _, tt := range tests {
		got, err := asBool(tt.input)
		if err != nil {
			t.Errorf("asBool(%v) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("asBool(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
	if _, err := asBool(1); err == nil {
		t.Error("asBool(1) should fail")
	}
}

func TestAsDuration(t *testing.T) {
	tests := []struct {
		input   any
		want    time.Duration
		wantErr bool
	}{
		{input: "1500ms", want: 1500 * time.Millisecond},
		{input: "90", want: 90 * time.Second},
		{input: 10, want: 10 * time.Second},
		{input: int64(2), want: 2 * time.Second},
		{input: 1.5, want: 1500 * time.Millisecond},
		{input: time.Minute, want: time.Minute},
		{input: nil, want: 0},
		{input: "soon", wantErr: true},
	}
	for _, tt := range tests {
		got, err := asDuration(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("asDuration(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("asDuration(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSectionSettingsRejectsScalars(t *testing.T) {
	if _, err := sectionSettings("debug"); err == nil {
		t.Error("sectionSettings(string) should fail")
	}
	got, err := sectionSettings(map[string]any{" Level ": "debug"})
	if err != nil || got["level"] != "debug" {
		t.Errorf("sectionSettings() = %v, %v", got, err)
	}
}

// load parses args the way the CLI does: persistent flags registered on the
// root and parsed through a subcommand.
func load(t *testing.T, l Loader, args []string) (*Config, error) {
	t.Helper()
	root := &cobra.Command{Use: "redcap"}
	RegisterFlags(root)
	sub := &cobra.Command{Use: "arms", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(sub)
	if err := sub.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v) error = %v", args, err)
	}
	return l.LoadFlags(sub.Flags())
}

func noEnv(string) (string, bool) { return "", false }

func envOf(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t, Loader{LookupEnv: noEnv}, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.Output != OutputJSON {
		t.Errorf("Output = %q, want json", cfg.Output)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Tracing.SampleRate != 1.0 {
		t.Errorf("SampleRate = %g, want 1", cfg.Tracing.SampleRate)
	}
	if cfg.URL != "" || cfg.Token != "" {
		t.Errorf("unexpected credentials %q / %q", cfg.URL, cfg.Token)
	}
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := writeFile(t, "redcap.yaml", `
url: https://redcap.example.org/api/
token: FILETOKEN
timeout: 45s
rate: 2.5
output: yaml
log:
  level: debug
  format: json
tracing:
  endpoint: localhost:4318
  protocol: http
  sample_rate: 0.5
  propagate: false
`)
	cfg, err := load(t, Loader{LookupEnv: noEnv}, []string{"--config", path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.URL != "https://redcap.example.org/api/" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.Token != "FILETOKEN" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if cfg.Timeout != 45*time.Second || cfg.Rate != 2.5 || cfg.Output != OutputYAML {
		t.Errorf("unexpected cfg %+v", cfg)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Tracing.Endpoint != "localhost:4318" || cfg.Tracing.Protocol != "http" || cfg.Tracing.SampleRate != 0.5 {
		t.Errorf("Tracing = %+v", cfg.Tracing)
	}
	if cfg.Tracing.ShouldPropagate() {
		t.Error("propagate: false in file was ignored")
	}
	if cfg.ConfigFile != path {
		t.Errorf("ConfigFile = %q", cfg.ConfigFile)
	}
}

func TestLoadFromJSONFile(t *testing.T) {
	path := writeFile(t, "redcap.json", `{"url": "https://r.example.org/api/", "stats": true, "timeout": 5}`)
	cfg, err := load(t, Loader{LookupEnv: noEnv}, []string{"--config", path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Stats || cfg.Timeout != 5*time.Second {
		t.Errorf("unexpected cfg %+v", cfg)
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := writeFile(t, "redcap.yaml", "url: https://file.example.org/api/\ntoken: FILE\n")
	env := envOf(map[string]string{
		EnvURL:   "https://env.example.org/api/",
		EnvToken: "ENV",
	})

	cfg, err := load(t, Loader{LookupEnv: env}, []string{"--config", path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.URL != "https://env.example.org/api/" || cfg.Token != "ENV" {
		t.Errorf("env should beat file, got %q / %q", cfg.URL, cfg.Token)
	}

	cfg, err = load(t, Loader{LookupEnv: env}, []string{"--config", path, "--url", "https://flag.example.org/api/", "--token", "FLAG"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.URL != "https://flag.example.org/api/" || cfg.Token != "FLAG" {
		t.Errorf("flag should beat env, got %q / %q", cfg.URL, cfg.Token)
	}
}

func TestLoadTokenFile(t *testing.T) {
	tokenPath := writeFile(t, "token", "  SECRET\n")

	cfg, err := load(t, Loader{LookupEnv: noEnv}, []string{"--token-file", tokenPath})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Token != "SECRET" {
		t.Errorf("Token = %q, want SECRET", cfg.Token)
	}

	env := envOf(map[string]string{EnvToken: "ENV"})
	cfg, err = load(t, Loader{LookupEnv: env}, []string{"--token-file", tokenPath})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Token != "SECRET" {
		t.Errorf("--token-file should beat env, got %q", cfg.Token)
	}

	empty := writeFile(t, "empty", "\n")
	if _, err := load(t, Loader{LookupEnv: noEnv}, []string{"--token-file", empty}); err == nil {
		t.Error("expected error for empty token file")
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := load(t, Loader{LookupEnv: noEnv}, []string{"--config", filepath.Join(t.TempDir(), "nope.yaml")})
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadFlagsAfterSubcommand(t *testing.T) {
	cfg, err := load(t, Loader{LookupEnv: noEnv}, []string{"-o", "YAML", "--stats", "--tracing-propagate=false", "--rate", "4"})
	if err != nil {
		t.Fatalf("LoadFlags() error = %v", err)
	}
	if cfg.Output != OutputYAML || !cfg.Stats || cfg.Rate != 4 {
		t.Errorf("unexpected cfg %+v", cfg)
	}
	if cfg.Tracing.Propagate == nil || *cfg.Tracing.Propagate {
		t.Errorf("Propagate = %v, want explicit false", cfg.Tracing.Propagate)
	}
}
