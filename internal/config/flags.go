package config

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RegisterFlags adds the connection and output flags shared by every command.
func RegisterFlags(cmd *cobra.Command) {
	configureFlags(cmd.PersistentFlags())
}

func configureFlags(flags *pflag.FlagSet) {
	// Connection
	flags.String("url", "", "REDCap API endpoint (default $"+EnvURL+")")
	flags.String("token", "", "API token (default $"+EnvToken+")")
	flags.String("token-file", "", "Read the API token from a file")
	flags.String("config", "", "Path to configuration file (JSON, YAML or TOML)")
	flags.Duration("timeout", 30*time.Second, "Per-request timeout")
	flags.Float64("rate", 0, "Maximum requests per second (0 means unlimited)")
	flags.String("user-agent", "", "User-Agent header sent with each request")

	// Output
	flags.StringP("output", "o", string(OutputJSON), "Output format: json, yaml or text")
	flags.String("select", "", "gjson path applied to JSON results before printing")
	flags.Bool("stats", false, "Print call latency statistics to stderr on exit")
	flags.String("log-level", "warn", "Log level: debug, info, warn or error")
	flags.String("log-format", "text", "Log format: json or text")

	// Tracing
	flags.String("tracing-endpoint", "", "OTLP collector endpoint (enables tracing)")
	flags.String("tracing-protocol", "grpc", "OTLP protocol: grpc or http")
	flags.String("tracing-service-name", "", "Service name reported on spans")
	flags.Float64("tracing-sample-rate", 1.0, "Fraction of calls traced (0.0-1.0)")
	flags.Bool("tracing-insecure", false, "Disable TLS for the OTLP exporter")
	flags.Bool("tracing-propagate", true, "Send W3C trace headers with requests")
}

// applyFlagOverrides applies command-line flag values to the config, overriding
// values from the config file and environment.
func applyFlagOverrides(cfg *Config, fs *pflag.FlagSet) error {
	stringFlags := []struct {
		name string
		dst  *string
	}{
		{"url", &cfg.URL},
		{"token", &cfg.Token},
		{"token-file", &cfg.TokenFile},
		{"user-agent", &cfg.UserAgent},
		{"select", &cfg.Select},
		{"log-level", &cfg.Log.Level},
		{"log-format", &cfg.Log.Format},
		{"tracing-endpoint", &cfg.Tracing.Endpoint},
		{"tracing-protocol", &cfg.Tracing.Protocol},
		{"tracing-service-name", &cfg.Tracing.ServiceName},
	}
	for _, f := range stringFlags {
		if !fs.Changed(f.name) {
			continue
		}
		val, err := fs.GetString(f.name)
		if err != nil {
			return err
		}
		*f.dst = strings.TrimSpace(val)
	}

	// a token given on the command line beats any other token source
	if fs.Changed("token") {
		cfg.TokenFile = ""
	} else if fs.Changed("token-file") {
		cfg.Token = ""
	}
	if fs.Changed("output") {
		val, err := fs.GetString("output")
		if err != nil {
			return err
		}
		cfg.Output = OutputFormat(strings.ToLower(strings.TrimSpace(val)))
	}
	if fs.Changed("timeout") {
		val, err := fs.GetDuration("timeout")
		if err != nil {
			return err
		}
		cfg.Timeout = val
	}
	if fs.Changed("rate") {
		val, err := fs.GetFloat64("rate")
		if err != nil {
			return err
		}
		cfg.Rate = val
	}
	if fs.Changed("stats") {
		val, err := fs.GetBool("stats")
		if err != nil {
			return err
		}
		cfg.Stats = val
	}
	if fs.Changed("tracing-sample-rate") {
		val, err := fs.GetFloat64("tracing-sample-rate")
		if err != nil {
			return err
		}
		cfg.Tracing.SampleRate = val
	}
	if fs.Changed("tracing-insecure") {
		val, err := fs.GetBool("tracing-insecure")
		if err != nil {
			return err
		}
		cfg.Tracing.Insecure = val
	}
	if fs.Changed("tracing-propagate") {
		val, err := fs.GetBool("tracing-propagate")
		if err != nil {
			return err
		}
		cfg.Tracing.Propagate = &val
	}
	return nil
}
