// Package config provides configuration types and defaults for threatmap.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"threatmap/internal/log"
)

// Config holds all configuration options for threatmap.
type Config struct {
	// ModelPath is the threat model file operated on when no positional
	// argument is given.
	ModelPath string `mapstructure:"model_path"`

	Check   CheckConfig   `mapstructure:"check"`
	Render  RenderConfig  `mapstructure:"render"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CheckConfig holds consistency check settings.
type CheckConfig struct {
	// Watch re-runs the check whenever the model file changes.
	Watch bool `mapstructure:"watch"`

	// DebounceMS coalesces rapid editor saves into a single re-check.
	DebounceMS int `mapstructure:"debounce_ms"`
}

// Debounce returns the watch debounce as a duration.
func (c CheckConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// RenderConfig holds diagram rendering settings.
type RenderConfig struct {
	// OutputDir is where rendered DOT files are written. Empty means the
	// current directory.
	OutputDir string `mapstructure:"output_dir"`
}

// LoggingConfig holds debug logging settings.
type LoggingConfig struct {
	// Enabled turns on the debug log file.
	Enabled bool `mapstructure:"enabled"`

	// Path is the log file location. Empty uses the default next to the
	// config file.
	Path string `mapstructure:"path"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		ModelPath: "threat_model.yaml",
		Check: CheckConfig{
			Watch:      false,
			DebounceMS: 1000,
		},
		Render: RenderConfig{
			OutputDir: "",
		},
		Logging: LoggingConfig{
			Enabled: false,
			Path:    "",
		},
	}
}

// Validate checks the configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func Validate(cfg Config) error {
	if cfg.Check.DebounceMS < 0 {
		return fmt.Errorf("check.debounce_ms must not be negative, got %d", cfg.Check.DebounceMS)
	}
	if cfg.Render.OutputDir != "" {
		if info, err := os.Stat(cfg.Render.OutputDir); err == nil && !info.IsDir() {
			return fmt.Errorf("render.output_dir %q is not a directory", cfg.Render.OutputDir)
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Threatmap Configuration

# Threat model file used when no path argument is given
model_path: threat_model.yaml

# Consistency check settings
check:
  watch: false        # Re-run the check whenever the model file changes
  debounce_ms: 1000   # Coalesce rapid saves into a single re-check

# Diagram rendering settings
render:
  output_dir: ""      # Directory for rendered DOT files (default: current directory)

# Debug logging
logging:
  enabled: false      # Write a debug log file
  # path: /tmp/threatmap.log
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
