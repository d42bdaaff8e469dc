package config

import "fmt"

// Pace is a named animation speed.
type Pace string

const (
	PaceSlow   Pace = "slow"
	PaceNormal Pace = "normal"
	PaceFast   Pace = "fast"
)

// ParsePace validates a pace name. The empty string means no preset.
func ParsePace(s string) (Pace, error) {
	switch p := Pace(s); p {
	case "", PaceSlow, PaceNormal, PaceFast:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown pace %q (want slow, normal or fast)", s)
	}
}

// StepTicksFor returns how many ticks one algorithm step lasts at the given
// pace and tick rate.
func StepTicksFor(p Pace, tickRate int) int {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	switch p {
	case PaceSlow:
		return tickRate
	case PaceFast:
		return max(1, tickRate/6)
	default:
		return max(1, tickRate/2)
	}
}

// ApplyPace sets the lesson step length from a preset.
func ApplyPace(cfg *Config, p Pace) {
	if p == "" {
		return
	}
	cfg.Lesson.Pace = p
	cfg.Lesson.StepTicks = StepTicksFor(p, cfg.Lesson.TickRate)
}
