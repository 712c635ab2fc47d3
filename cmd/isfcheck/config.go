package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/goisf"
)

// Config is the isfcheck configuration. It is read from an optional YAML
// file; command-line flags given explicitly take precedence.
type Config struct {
	Unknown    string `yaml:"unknown"`    // warn | strict | ignore
	Duplicates string `yaml:"duplicates"` // error | warn | ignore
	Lenient    bool   `yaml:"lenient"`
	MaxBytes   int64  `yaml:"maxBytes"`
	Language   string `yaml:"language"` // en | ja
	Empty      string `yaml:"empty"`    // preserve | omit
	LogLevel   string `yaml:"logLevel"`
	LogFormat  string `yaml:"logFormat"`
}

func defaultConfig() Config {
	return Config{
		Unknown:    "warn",
		Duplicates: "error",
		Lenient:    true,
		Language:   "en",
		Empty:      "preserve",
		LogLevel:   "warn",
		LogFormat:  "text",
	}
}

// loadConfig reads path over the defaults. Keys the file does not set keep
// their default; keys Config does not know are rejected.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, cfg.check()
}

func (c Config) check() error {
	for _, f := range []struct {
		name, value string
		allowed     []string
	}{
		{"unknown", c.Unknown, []string{"warn", "strict", "ignore"}},
		{"duplicates", c.Duplicates, []string{"error", "warn", "ignore"}},
		{"empty", c.Empty, []string{"preserve", "omit"}},
		{"language", c.Language, []string{"en", "ja"}},
		{"logLevel", c.LogLevel, []string{"debug", "info", "warn", "error"}},
		{"logFormat", c.LogFormat, []string{"text", "json"}},
	} {
		if !contains(f.allowed, strings.ToLower(f.value)) {
			return fmt.Errorf("invalid %s %q: must be one of %s", f.name, f.value, strings.Join(f.allowed, ", "))
		}
	}
	if c.MaxBytes < 0 {
		return fmt.Errorf("invalid maxBytes %d: must not be negative", c.MaxBytes)
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// ParseOpt translates the configuration into parser options.
func (c Config) ParseOpt() goisf.ParseOpt {
	opt := goisf.DefaultParseOpt()
	switch strings.ToLower(c.Unknown) {
	case "strict":
		opt.Unknown = goisf.UnknownStrict
	case "ignore":
		opt.Unknown = goisf.UnknownIgnore
	default:
		opt.Unknown = goisf.UnknownWarn
	}
	switch strings.ToLower(c.Duplicates) {
	case "warn":
		opt.Strictness.OnDuplicateKey = goisf.Warn
	case "ignore":
		opt.Strictness.OnDuplicateKey = goisf.Ignore
	default:
		opt.Strictness.OnDuplicateKey = goisf.Error
	}
	opt.Lenient = c.Lenient
	opt.MaxBytes = c.MaxBytes
	return opt
}

// EncodeOpt translates the configuration into serializer options.
func (c Config) EncodeOpt() goisf.EncodeOpt {
	if strings.ToLower(c.Empty) == "omit" {
		return goisf.EncodeOpt{Empty: goisf.EmptyOmit}
	}
	return goisf.EncodeOpt{Empty: goisf.EmptyPreserve}
}
