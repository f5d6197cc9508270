// Package config loads astview configuration from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration.
type Config struct {
	Service ServiceConfig `toml:"service" yaml:"service"`
	Web     WebConfig     `toml:"web" yaml:"web"`
	Log     LogConfig     `toml:"log" yaml:"log"`
}

// ServiceConfig describes the remote parse service.
type ServiceConfig struct {
	// BaseURL is the origin the parse path is resolved against.
	BaseURL string `toml:"base_url" yaml:"base_url" validate:"required,url"`

	// ParsePath is the endpoint receiving source text.
	ParsePath string `toml:"parse_path" yaml:"parse_path" validate:"required,startswith=/"`

	// Timeout bounds a single request. Zero disables it.
	Timeout Duration `toml:"timeout" yaml:"timeout"`
}

// WebConfig holds settings for the browser front end.
type WebConfig struct {
	ListenAddr  string `toml:"listen_addr" yaml:"listen_addr" validate:"required,hostname_port"`
	Compression bool   `toml:"compression" yaml:"compression"`
}

// LogConfig controls the diagnostic log sink.
type LogConfig struct {
	Level       string `toml:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `toml:"development" yaml:"development"`
	// File receives logs when set; stderr otherwise.
	File string `toml:"file" yaml:"file"`
}

// Duration wraps time.Duration for TOML and YAML parsing.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL:   "http://localhost:5000",
			ParsePath: "/parse",
			Timeout:   Duration{10 * time.Second},
		},
		Web: WebConfig{
			ListenAddr:  "127.0.0.1:8080",
			Compression: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a configuration file on top of the defaults. The format is
// chosen by extension: .toml, .yaml or .yml. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	path = os.ExpandEnv(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Service.Timeout.Duration < 0 {
		return errors.New("invalid config: service.timeout must not be negative")
	}
	return nil
}

// ParseURL returns the full parse endpoint URL.
func (s ServiceConfig) ParseURL() string {
	return strings.TrimRight(s.BaseURL, "/") + s.ParsePath
}
