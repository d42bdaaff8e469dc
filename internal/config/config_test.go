package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	def := Default()
	if cfg != def {
		t.Errorf("embedded defaults drifted from Default():\n got %+v\nwant %+v", cfg, def)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("lesson:\n  pace: fast\nhttp:\n  addr: \":9999\"\nprogress:\n  endpoint: http://example.test\n  timeout: 2s\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":9999" {
		t.Errorf("HTTP.Addr = %q", cfg.HTTP.Addr)
	}
	if cfg.Progress.Endpoint != "http://example.test" || cfg.Progress.Timeout != 2*time.Second {
		t.Errorf("Progress = %+v", cfg.Progress)
	}
	if cfg.Lesson.StepTicks != 5 {
		t.Errorf("fast pace at 30 tps should give 5 step ticks, got %d", cfg.Lesson.StepTicks)
	}
	// Untouched sections keep their defaults.
	if cfg.SSH.Port != 2222 {
		t.Errorf("SSH.Port = %d, want default 2222", cfg.SSH.Port)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("lesson: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed custom file should fail")
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad pace", "lesson:\n  pace: warp\n"},
		{"bad log level", "log:\n  level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Errorf("Parse(%q) should fail", tt.yaml)
			}
		})
	}
}

func TestParseFillsZeroTiming(t *testing.T) {
	cfg, err := Parse([]byte("lesson:\n  tick_rate: 0\n  step_ticks: 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Lesson.TickRate != DefaultTickRate || cfg.Lesson.StepTicks != DefaultTickRate/2 {
		t.Errorf("Lesson = %+v", cfg.Lesson)
	}
}

func TestStepTicksFor(t *testing.T) {
	tests := []struct {
		pace Pace
		rate int
		want int
	}{
		{PaceSlow, 30, 30},
		{PaceNormal, 30, 15},
		{PaceFast, 30, 5},
		{PaceFast, 3, 1},
		{PaceNormal, 0, 15},
	}
	for _, tt := range tests {
		if got := StepTicksFor(tt.pace, tt.rate); got != tt.want {
			t.Errorf("StepTicksFor(%s, %d) = %d, want %d", tt.pace, tt.rate, got, tt.want)
		}
	}
}

func TestStoragePath(t *testing.T) {
	cfg := Default()
	cfg.Storage.Path = "/tmp/x.db"
	if cfg.StoragePath() != "/tmp/x.db" {
		t.Errorf("StoragePath() = %q", cfg.StoragePath())
	}
	cfg.Storage.Path = ""
	if filepath.Base(cfg.StoragePath()) != "progress.db" {
		t.Errorf("default StoragePath() = %q", cfg.StoragePath())
	}
	if cfg.SSHAddr() != "0.0.0.0:2222" {
		t.Errorf("SSHAddr() = %q", cfg.SSHAddr())
	}
}
