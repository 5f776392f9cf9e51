// Package config provides run configuration for the slurmframe CLI, loaded
// from a YAML file, environment variables (SLURMFRAME_ prefix) and flags
// through viper.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/slurmframe/slurmframe/pkg/clean"
	"github.com/slurmframe/slurmframe/pkg/errors"
	"github.com/slurmframe/slurmframe/pkg/fields"
)

// Config describes one conversion run
type Config struct {
	// Input is the sacct dump to read; may be compressed
	Input string `mapstructure:"input"`
	// Output is the destination path; "-" or empty means stdout
	Output string `mapstructure:"output"`
	// Delimiter separates cells in the dump, default "|"
	Delimiter string `mapstructure:"delimiter"`
	// Policy is the NA-check policy: ignore, warn or error
	Policy string `mapstructure:"policy"`
	// NAMarkers overrides the recognized missing-value strings
	NAMarkers []string `mapstructure:"na_markers"`
	// LogLevel sets the zap level
	LogLevel string `mapstructure:"log_level"`
	// Progress enables the terminal progress bar
	Progress bool `mapstructure:"progress"`
	// Fields overrides conversion kinds per field name
	Fields map[string]string `mapstructure:"fields"`
}

// Default returns the default run configuration
func Default() *Config {
	return &Config{
		Output:    "-",
		Delimiter: "|",
		Policy:    string(clean.PolicyWarn),
		LogLevel:  "info",
		Progress:  true,
	}
}

// Load reads configuration from the given file path (optional) merged over
// the defaults and SLURMFRAME_ environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("output", "-")
	v.SetDefault("delimiter", "|")
	v.SetDefault("policy", string(clean.PolicyWarn))
	v.SetDefault("log_level", "info")
	v.SetDefault("progress", true)

	v.SetEnvPrefix("SLURMFRAME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "read config file")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for programming errors
func (c *Config) Validate() error {
	switch clean.Policy(c.Policy) {
	case "", clean.PolicyIgnore, clean.PolicyWarn, clean.PolicyError:
	default:
		return errors.Newf(errors.ErrorTypeConfig, "unknown NA-check policy %q", c.Policy)
	}
	if c.Delimiter == "" {
		return errors.New(errors.ErrorTypeConfig, "delimiter must not be empty")
	}
	for name, kind := range c.Fields {
		if !fields.Kind(kind).Valid() {
			return errors.Newf(errors.ErrorTypeConfig, "unknown kind %q for field %q", kind, name)
		}
	}
	return nil
}

// CleanOptions derives the conversion options from the configuration
func (c *Config) CleanOptions() *clean.Options {
	opts := clean.DefaultOptions()
	if c.Policy != "" {
		opts.Policy = clean.Policy(c.Policy)
	}
	if c.NAMarkers != nil {
		opts.NAMarkers = c.NAMarkers
	}
	return opts
}

// FieldRegistry builds the field-kind registry from the overrides
func (c *Config) FieldRegistry() *fields.Registry {
	if len(c.Fields) == 0 {
		return fields.NewRegistry(nil)
	}
	overrides := make(map[string]fields.Kind, len(c.Fields))
	for name, kind := range c.Fields {
		overrides[name] = fields.Kind(kind)
	}
	return fields.NewRegistry(overrides)
}
