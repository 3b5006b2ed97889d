package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries file-based defaults for the CLI. Flags set explicitly
// on the command line take precedence over the file; the file takes
// precedence over built-in defaults.
type Config struct {
	// Database is the SQLite database path.
	Database string `yaml:"database"`

	// Currency is the display currency code for prices (e.g. "IRR").
	Currency string `yaml:"currency"`
}

// loadConfig reads and parses a YAML config file.
func loadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
