// Package config loads resdump settings from YAML.
package config

import (
	"bytes"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/gameres/errors"
	"github.com/wippyai/gameres/resource"
	"github.com/wippyai/gameres/schema"
)

// Config holds settings shared by every resdump invocation. Command line
// flags override file values.
type Config struct {
	Game        string   `yaml:"game"`
	Type        string   `yaml:"type"`
	LogLevel    string   `yaml:"log_level"`
	Hashes      []string `yaml:"hashes"`
	Width       int      `yaml:"width"`
	Development bool     `yaml:"development"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Game:     schema.Gen3.String(),
		Type:     resource.TypeModel.String(),
		LogLevel: "info",
		Width:    64,
	}
}

// Load reads and validates the YAML file at path on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "read "+path)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if _, err := c.AddressWidth(); err != nil {
		return err
	}
	if _, err := c.Generation(); err != nil {
		return err
	}
	if _, err := c.ResourceType(); err != nil {
		return err
	}
	if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log_level")
	}
	return nil
}

// AddressWidth returns the profile for the width setting.
func (c *Config) AddressWidth() (resource.Width, error) {
	w, err := resource.WidthFromBits(c.Width)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "width")
	}
	return w, nil
}

// Generation returns the parsed game setting.
func (c *Config) Generation() (schema.Game, error) {
	return schema.ParseGame(c.Game)
}

// ResourceType returns the parsed type setting.
func (c *Config) ResourceType() (resource.Type, error) {
	t, err := resource.ParseType(c.Type)
	if err != nil {
		return resource.TypeUnknown, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "type")
	}
	return t, nil
}

// Logger builds the zap logger described by the config.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log_level")
	}

	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
