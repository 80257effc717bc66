// Package config loads the CLI configuration from a YAML file. A missing
// file yields the defaults; a present file overlays them.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-timeeffort/pkg/document"
	"github.com/goliatone/go-timeeffort/pkg/export"
)

// DefaultPath is the config file looked up in the working directory when no
// --config flag is given.
const DefaultPath = "timeeffort.yaml"

// ErrInvalidConfig is returned for unreadable or inconsistent configuration.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// OutputConfig controls where and in which formats reports are exported.
type OutputConfig struct {
	Dir       string      `yaml:"dir"`
	Formats   []string    `yaml:"formats"`
	Templates string      `yaml:"templates,omitempty"`
	Theme     ThemeConfig `yaml:"theme"`
}

// ThemeConfig selects the go-theme manifest styling HTML reports. Dir, when
// set, holds an extra manifest (theme.yaml or theme.json) registered next to
// the built-in one.
type ThemeConfig struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Config is the CLI configuration.
type Config struct {
	Title        string        `yaml:"title,omitempty"`
	Organization string        `yaml:"organization"`
	Compliance   string        `yaml:"compliance"`
	Output       OutputConfig  `yaml:"output"`
	Logging      LoggingConfig `yaml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Title:        document.DefaultTitle,
		Organization: document.DefaultOrganization,
		Compliance:   document.DefaultCompliance,
		Output: OutputConfig{
			Dir:     ".",
			Formats: []string{"pdf"},
			Theme: ThemeConfig{
				Name: export.DefaultThemeName,
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode overlays the YAML in r onto the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Header returns the document title block configured here.
func (c Config) Header() document.Header {
	return document.Header{
		Title:        c.Title,
		Organization: c.Organization,
		Compliance:   c.Compliance,
	}
}

// Validate checks the logging level and that at least one output format is
// named. Whether a format is registered is checked by the export service.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalidConfig, err)
	}
	if len(c.Output.Formats) == 0 {
		return fmt.Errorf("%w: output.formats must name at least one format", ErrInvalidConfig)
	}
	for _, format := range c.Output.Formats {
		if strings.TrimSpace(format) == "" {
			return fmt.Errorf("%w: output.formats contains an empty entry", ErrInvalidConfig)
		}
	}
	if c.Output.Theme.Variant != "" && strings.TrimSpace(c.Output.Theme.Name) == "" {
		return fmt.Errorf("%w: output.theme.variant needs output.theme.name", ErrInvalidConfig)
	}
	return nil
}
