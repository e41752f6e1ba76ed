// Package config loads asyncforge CLI configuration.
//
// Values are layered, later sources winning: built-in defaults, an optional
// YAML or JSON file, ASYNCFORGE_* environment variables, then command-line flags
// that were explicitly set.
package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/erraggy/asyncforge/aserrors"
	"github.com/erraggy/asyncforge/document"
	"github.com/erraggy/asyncforge/processing"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "ASYNCFORGE_"

// Source kinds accepted by Config.Source.
const (
	SourceAuto = "auto"
	SourceYAML = "yaml"
	SourceGo   = "go"
)

// Config is the resolved CLI configuration.
type Config struct {
	// Input is a service description file or, for Go sources, a package directory.
	Input string `koanf:"input"`
	// Source selects the input adapter: auto, yaml or go.
	Source     string     `koanf:"source"`
	Output     Output     `koanf:"output"`
	Validation Validation `koanf:"validation"`
	Processing Processing `koanf:"processing"`
	Log        Log        `koanf:"log"`
	Metrics    Metrics    `koanf:"metrics"`
}

// Output controls where and how the generated document is written.
type Output struct {
	Dir     string   `koanf:"dir"`
	Name    string   `koanf:"name"`
	Formats []string `koanf:"formats"`
}

// Validation controls the validation stage.
type Validation struct {
	Strict       bool `koanf:"strict"`
	WriteInvalid bool `koanf:"write_invalid"`
	NoWarnings   bool `koanf:"no_warnings"`
}

// Processing controls the processing stage.
type Processing struct {
	Collision   string `koanf:"collision"`
	Concurrency int    `koanf:"concurrency"`
}

// Log selects the slog handler.
type Log struct {
	Format string `koanf:"format"`
	Level  string `koanf:"level"`
}

// Metrics controls metrics export.
type Metrics struct {
	// Textfile, when set, receives the run's metrics in Prometheus text format.
	Textfile string `koanf:"textfile"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Source: SourceAuto,
		Output: Output{
			Dir:     ".",
			Name:    "asyncapi",
			Formats: []string{string(document.KindYAML)},
		},
		Processing: Processing{
			Collision: processing.CollisionOverwrite.String(),
		},
		Log: Log{
			Format: "text",
			Level:  "warn",
		},
	}
}

// Loader assembles a Config from its sources.
type Loader struct {
	// File is an optional configuration file. Files ending in .json are
	// parsed as JSON, anything else as YAML.
	File string
	// Flags holds command-line flags. Flag names are mapped to config keys
	// through FlagKeys; unmapped flags are ignored.
	Flags *pflag.FlagSet
	// FlagKeys maps flag names to dotted config keys.
	FlagKeys map[string]string
}

// Load resolves the configuration and validates it.
func (l *Loader) Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: loading defaults: %w", err)
	}

	if l.File != "" {
		var parser koanf.Parser = yaml.Parser()
		if strings.EqualFold(filepath.Ext(l.File), ".json") {
			parser = json.Parser()
		}
		if err := k.Load(file.Provider(l.File), parser); err != nil {
			return nil, &aserrors.ConfigError{Option: "config file", Value: l.File, Cause: err}
		}
	}

	if err := l.loadEnv(k); err != nil {
		return nil, err
	}

	if l.Flags != nil {
		p := posflag.ProviderWithFlag(l.Flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := l.FlagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(l.Flags, f)
		})
		if err := k.Load(p, nil); err != nil {
			return nil, fmt.Errorf("config: loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnv reads ASYNCFORGE_* variables. Variable names are the dotted key
// upper-cased with dots replaced by underscores, so output.dir is read from
// ASYNCFORGE_OUTPUT_DIR. List values are comma separated.
func (l *Loader) loadEnv(k *koanf.Koanf) error {
	envKeys := make(map[string]string)
	for _, key := range k.Keys() {
		envKeys[EnvPrefix+strings.ToUpper(strings.ReplaceAll(key, ".", "_"))] = key
	}

	cb := func(name, value string) (string, any) {
		key, ok := envKeys[name]
		if !ok {
			return "", nil
		}
		if key == "output.formats" {
			return key, splitList(value)
		}
		return key, value
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", cb), nil); err != nil {
		return fmt.Errorf("config: loading environment: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !slices.Contains([]string{SourceAuto, SourceYAML, SourceGo}, c.Source) {
		return &aserrors.ConfigError{Option: "source", Value: c.Source, Message: "must be auto, yaml or go"}
	}
	if c.Output.Name == "" {
		return &aserrors.ConfigError{Option: "output.name", Message: "must not be empty"}
	}
	if _, err := c.Kinds(); err != nil {
		return err
	}
	if _, err := c.CollisionPolicy(); err != nil {
		return err
	}
	if c.Processing.Concurrency < 0 {
		return &aserrors.ConfigError{Option: "processing.concurrency", Value: c.Processing.Concurrency, Message: "must not be negative"}
	}
	if _, err := c.SlogLevel(); err != nil {
		return &aserrors.ConfigError{Option: "log.level", Value: c.Log.Level, Cause: err}
	}
	if !slices.Contains([]string{"text", "json"}, c.Log.Format) {
		return &aserrors.ConfigError{Option: "log.format", Value: c.Log.Format, Message: "must be text or json"}
	}
	return nil
}

// Kinds returns the configured output formats.
func (c *Config) Kinds() ([]document.Kind, error) {
	if len(c.Output.Formats) == 0 {
		return nil, &aserrors.ConfigError{Option: "output.formats", Message: "at least one format is required"}
	}
	kinds := make([]document.Kind, 0, len(c.Output.Formats))
	for _, f := range c.Output.Formats {
		kind, err := document.ParseKind(f)
		if err != nil {
			return nil, &aserrors.ConfigError{Option: "output.formats", Value: f, Cause: err}
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// CollisionPolicy returns the configured processing collision policy.
func (c *Config) CollisionPolicy() (processing.CollisionPolicy, error) {
	p, err := processing.ParseCollisionPolicy(c.Processing.Collision)
	if err != nil {
		return 0, &aserrors.ConfigError{Option: "processing.collision", Value: c.Processing.Collision, Cause: err}
	}
	return p, nil
}

// SlogLevel parses the configured log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(c.Log.Level))
	return lvl, err
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
