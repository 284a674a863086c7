package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Loader builds a Config from defaults, an optional config file, the
// environment and flags, in increasing order of precedence.
type Loader struct {
	// LookupEnv reads the environment. Nil means os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// LoadFlags builds a Config from the parsed flags of a running command. The
// flag set must carry the flags added by RegisterFlags.
func (l Loader) LoadFlags(flagSet *pflag.FlagSet) (*Config, error) {
	var configPath string
	if f := flagSet.Lookup("config"); f != nil {
		configPath = strings.TrimSpace(f.Value.String())
	}

	cfgViper := viper.New()
	if configPath != "" {
		cfgViper.SetConfigFile(configPath)
		if err := cfgViper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	cfg := &Config{
		Timeout:    30 * time.Second,
		Output:     OutputJSON,
		Log:        LogConfig{Level: "warn", Format: "text"},
		Tracing:    TracingConfig{Protocol: "grpc", SampleRate: 1.0},
		ConfigFile: configPath,
	}

	if err := applyConfigSettings(cfg, cfgViper.AllSettings()); err != nil {
		return nil, err
	}
	l.applyEnv(cfg)
	if err := applyFlagOverrides(cfg, flagSet); err != nil {
		return nil, err
	}

	cfg.URL = strings.TrimSpace(cfg.URL)
	cfg.TokenFile = strings.TrimSpace(cfg.TokenFile)
	if cfg.Token == "" && cfg.TokenFile != "" {
		token, err := readTokenFile(cfg.TokenFile)
		if err != nil {
			return nil, err
		}
		cfg.Token = token
	}

	return cfg, nil
}

func (l Loader) applyEnv(cfg *Config) {
	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if val, ok := lookup(EnvURL); ok && strings.TrimSpace(val) != "" {
		cfg.URL = val
	}
	if val, ok := lookup(EnvToken); ok && strings.TrimSpace(val) != "" {
		cfg.Token = strings.TrimSpace(val)
		cfg.TokenFile = ""
	}
}

func readTokenFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", path)
	}
	return token, nil
}

// applyConfigSettings applies settings from a config file to the Config struct.
func applyConfigSettings(cfg *Config, settings map[string]any) error {
	if len(settings) == 0 {
		return nil
	}

	stringSettings := []struct {
		dst  *string
		keys []string
	}{
		{&cfg.URL, []string{"url", "api_url"}},
		{&cfg.Token, []string{"token", "api_token"}},
		{&cfg.TokenFile, []string{"tokenfile", "token_file", "token-file"}},
		{&cfg.UserAgent, []string{"useragent", "user_agent", "user-agent"}},
		{&cfg.Select, []string{"select"}},
	}
	for _, s := range stringSettings {
		raw, ok := lookupSetting(settings, s.keys...)
		if !ok {
			continue
		}
		*s.dst = strings.TrimSpace(asString(raw))
	}

	if raw, ok := lookupSetting(settings, "timeout"); ok {
		dur, err := asDuration(raw)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		cfg.Timeout = dur
	}

	if raw, ok := lookupSetting(settings, "rate"); ok {
		val, err := asFloat64(raw)
		if err != nil {
			return fmt.Errorf("rate: %w", err)
		}
		cfg.Rate = val
	}

	if raw, ok := lookupSetting(settings, "output"); ok {
		if val := strings.TrimSpace(asString(raw)); val != "" {
			cfg.Output = OutputFormat(strings.ToLower(val))
		}
	}

	if raw, ok := lookupSetting(settings, "stats"); ok {
		val, err := asBool(raw)
		if err != nil {
			return fmt.Errorf("stats: %w", err)
		}
		cfg.Stats = val
	}

	if raw, ok := lookupSetting(settings, "log"); ok {
		if err := parseLogConfig(raw, &cfg.Log); err != nil {
			return fmt.Errorf("log: %w", err)
		}
	}

	if raw, ok := lookupSetting(settings, "tracing"); ok {
		if err := parseTracingConfig(raw, &cfg.Tracing); err != nil {
			return fmt.Errorf("tracing: %w", err)
		}
	}

	return nil
}

func parseLogConfig(value any, dst *LogConfig) error {
	settings, err := sectionSettings(value)
	if err != nil {
		return err
	}
	if raw, ok := lookupSetting(settings, "level"); ok {
		dst.Level = strings.TrimSpace(asString(raw))
	}
	if raw, ok := lookupSetting(settings, "format"); ok {
		dst.Format = strings.TrimSpace(asString(raw))
	}
	return nil
}

func parseTracingConfig(value any, dst *TracingConfig) error {
	settings, err := sectionSettings(value)
	if err != nil {
		return err
	}
	if raw, ok := lookupSetting(settings, "endpoint"); ok {
		dst.Endpoint = strings.TrimSpace(asString(raw))
	}
	if raw, ok := lookupSetting(settings, "protocol"); ok {
		dst.Protocol = strings.ToLower(strings.TrimSpace(asString(raw)))
	}
	if raw, ok := lookupSetting(settings, "servicename", "service_name", "service-name"); ok {
		dst.ServiceName = strings.TrimSpace(asString(raw))
	}
	if raw, ok := lookupSetting(settings, "samplerate", "sample_rate", "sample-rate"); ok {
		val, err := asFloat64(raw)
		if err != nil {
			return fmt.Errorf("sample_rate: %w", err)
		}
		dst.SampleRate = val
	}
	if raw, ok := lookupSetting(settings, "insecure"); ok {
		val, err := asBool(raw)
		if err != nil {
			return fmt.Errorf("insecure: %w", err)
		}
		dst.Insecure = val
	}
	if raw, ok := lookupSetting(settings, "propagate"); ok {
		val, err := asBool(raw)
		if err != nil {
			return fmt.Errorf("propagate: %w", err)
		}
		dst.Propagate = &val
	}
	return nil
}
