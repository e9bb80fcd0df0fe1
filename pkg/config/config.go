// Package config loads parser settings from YAML or JSON files.
package config

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/sql-parser/pkg/dialect"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/parser"
)

// Output formats understood by the CLI.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config represents the configuration for parsing and checking SQL
type Config struct {
	Delimiter   string   `yaml:"delimiter" json:"delimiter"`
	SQLMode     []string `yaml:"sql_mode" json:"sql_mode"`
	MaxErrors   int      `yaml:"max_errors" json:"max_errors"`
	Strict      bool     `yaml:"strict" json:"strict"`
	ValidateSQL bool     `yaml:"validate" json:"validate"`
	Output      string   `yaml:"output" json:"output"`
}

// LoadFromFile loads configuration from a file. Fields missing from the
// file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	slog.Debug("Loading config from file", "filename", filename)
	data, err := os.ReadFile(filename)
	if err != nil {
		slog.Debug("Failed to read file", "error", err)
		return nil, errors.Wrapf(err, "failed to read config file %s", filename)
	}

	config := DefaultConfig()

	// Try YAML first, then JSON
	slog.Debug("Attempting YAML unmarshal")
	if err := yaml.Unmarshal(data, config); err != nil {
		slog.Debug("YAML unmarshal failed", "error", err)
		slog.Debug("Attempting JSON unmarshal")
		config = DefaultConfig()
		if err := json.Unmarshal(data, config); err != nil {
			slog.Debug("JSON unmarshal failed", "error", err)
			return nil, errors.Wrapf(err, "failed to parse config file %s", filename)
		}
		slog.Debug("JSON unmarshal succeeded")
	} else {
		slog.Debug("YAML unmarshal succeeded")
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", filename)
	}
	slog.Debug("Loaded config", "delimiter", config.Delimiter, "sql_mode", config.SQLMode)
	return config, nil
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Delimiter: lexer.DefaultDelimiter,
		Output:    OutputText,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Delimiter == "" {
		return errors.New("delimiter must not be empty")
	}
	if c.MaxErrors < 0 {
		return errors.Errorf("max_errors must not be negative, got %d", c.MaxErrors)
	}
	if _, err := dialect.ParseMode(c.SQLMode...); err != nil {
		return err
	}
	switch c.Output {
	case "", OutputText, OutputJSON, OutputYAML:
	default:
		return errors.Errorf("unsupported output format %q", c.Output)
	}
	return nil
}

// Mode returns the parsed sql_mode, or no mode at all when it holds a name
// Validate rejects.
func (c *Config) Mode() dialect.Mode {
	mode, _ := dialect.ParseMode(c.SQLMode...)
	return mode
}

// ParserOptions translates the configuration into parser options.
func (c *Config) ParserOptions() []parser.Option {
	return []parser.Option{
		parser.WithDelimiter(c.Delimiter),
		parser.WithMode(c.Mode()),
		parser.WithMaxErrors(c.MaxErrors),
		parser.WithStrict(c.Strict),
	}
}
