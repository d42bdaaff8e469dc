package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in each search location.
const FileName = "config.yaml"

// Load loads the application configuration.
// Search order: customPath -> ~/.algomountain/config.yaml -> ./configs/config.yaml -> embedded default
//
// Keys missing from a file keep their default values.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the hardcoded defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	pace, err := ParsePace(string(c.Lesson.Pace))
	if err != nil {
		return err
	}
	if c.Lesson.TickRate <= 0 {
		c.Lesson.TickRate = DefaultTickRate
	}
	if c.Lesson.StepTicks <= 0 {
		c.Lesson.StepTicks = StepTicksFor(PaceNormal, c.Lesson.TickRate)
	}
	ApplyPace(c, pace)

	switch c.Log.Level {
	case "":
		c.Log.Level = "info"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	if c.Progress.Retries < 0 {
		c.Progress.Retries = 0
	}
	return nil
}

// StoragePath returns the configured database path, or the default under
// the user directory.
func (c Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	if p := UserPath("progress.db"); p != "" {
		return p
	}
	return "progress.db"
}

// SSHAddr returns host:port for the SSH server.
func (c Config) SSHAddr() string {
	return fmt.Sprintf("%s:%d", c.SSH.Host, c.SSH.Port)
}

// UserPath returns a path inside ~/.algomountain, or empty if home is unavailable.
func UserPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".algomountain", filename)
}
