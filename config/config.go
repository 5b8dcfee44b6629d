// Package config loads the settings of the svgmount command.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/benoitkugler/svgmount/svgshape"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by the errors returned from Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config is the root of the configuration file.
type Config struct {
	// Page is the path of the host HTML page. Empty means
	// the built-in page.
	Page string `yaml:"page"`
	// Mount is the id of the element receiving the tree.
	Mount string `yaml:"mount"`
	// Scale multiplies the dimensions of PNG and PDF outputs.
	Scale float64 `yaml:"scale"`
	// ErrorMode is one of ignore, warn, strict.
	ErrorMode string `yaml:"errorMode"`

	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// OutputConfig lists the files to write. Empty HTML means stdout,
// empty PNG or PDF disables the format.
type OutputConfig struct {
	HTML string `yaml:"html"`
	PNG  string `yaml:"png"`
	PDF  string `yaml:"pdf"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Mount:     "container",
		Scale:     1,
		ErrorMode: svgshape.WarnErrorMode.String(),
		Log:       LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at `path` on top of the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a YAML document on top of the defaults, and validates it.
// Unknown fields are rejected.
func Read(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the consistency of the configuration.
func (c *Config) Validate() error {
	if c.Mount == "" {
		return fmt.Errorf("%w: empty mount id", ErrInvalid)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %g", ErrInvalid, c.Scale)
	}
	if _, err := c.Mode(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	return nil
}

// Mode returns the parsed error mode.
func (c *Config) Mode() (svgshape.ErrorMode, error) {
	return svgshape.ParseErrorMode(c.ErrorMode)
}

// Level returns the parsed log level.
func (c *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.Log.Level)
}
