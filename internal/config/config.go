// Package config provides YAML-based configuration for the lessons, the
// progress store and the HTTP and SSH servers.
package config

import "time"

// Config is the whole application configuration.
type Config struct {
	Lesson   LessonConfig   `yaml:"lesson"`
	Levels   LevelsConfig   `yaml:"levels"`
	Storage  StorageConfig  `yaml:"storage"`
	HTTP     HTTPConfig     `yaml:"http"`
	SSH      SSHConfig      `yaml:"ssh"`
	Progress ProgressConfig `yaml:"progress"`
	Log      LogConfig      `yaml:"log"`
}

// LessonConfig controls animation timing.
type LessonConfig struct {
	TickRate  int  `yaml:"tick_rate"`  // Simulation ticks per second
	StepTicks int  `yaml:"step_ticks"` // Ticks between two replayed steps
	Pace      Pace `yaml:"pace"`       // Named preset, overrides step_ticks when set
}

// LevelsConfig points at an alternative level catalogue.
type LevelsConfig struct {
	Dir string `yaml:"dir"` // Empty means the built-in catalogue
}

// StorageConfig configures the SQLite progress store.
type StorageConfig struct {
	Path string `yaml:"path"` // Empty means ~/.algomountain/progress.db
}

// HTTPConfig configures the progress API.
type HTTPConfig struct {
	Addr         string        `yaml:"addr"`
	Mode         string        `yaml:"mode"` // gin mode: debug, release or test
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// SSHConfig configures the SSH lesson server.
type SSHConfig struct {
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxTimeout  time.Duration `yaml:"max_timeout"`
}

// ProgressConfig selects where completed levels are reported.
// An empty Endpoint records straight into the local store.
type ProgressConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
	Retries  int           `yaml:"retries"`
}

// LogConfig configures the charmbracelet logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}
