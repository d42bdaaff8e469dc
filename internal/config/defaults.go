package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/config.yaml
var defaultYAML []byte

// DefaultTickRate is the simulation rate when none is configured.
const DefaultTickRate = 30

// Default returns the hardcoded configuration, used when even the
// embedded YAML cannot be parsed.
func Default() Config {
	return Config{
		Lesson: LessonConfig{
			TickRate:  DefaultTickRate,
			StepTicks: 15,
		},
		HTTP: HTTPConfig{
			Addr:         ":8080",
			Mode:         "release",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		SSH: SSHConfig{
			Host:        "0.0.0.0",
			Port:        2222,
			HostKeyPath: ".ssh/algomountain_ed25519",
			IdleTimeout: 10 * time.Minute,
			MaxTimeout:  2 * time.Hour,
		},
		Progress: ProgressConfig{
			Timeout: 5 * time.Second,
			Retries: 3,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
