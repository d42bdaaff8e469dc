package core

// RuntimeConfig contains configuration passed to lessons at initialization.
type RuntimeConfig struct {
	ScreenW   int    // Screen width in characters
	ScreenH   int    // Screen height in characters
	TickRate  int    // Simulation ticks per second
	StepTicks int    // Ticks between two replayed algorithm steps
	UserID    string // Player the session belongs to, may be empty
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		TickRate:  30,
		StepTicks: 15,
	}
}

// GameState is the externally visible state of a running lesson.
type GameState struct {
	Score     int  // Current score
	GameOver  bool // Level completed, every concept card visited
	Paused    bool // Animation paused
	Visited   int  // Concept cards whose animation finished
	CardCount int  // Concept cards in the level
}

// Completed reports whether the level was finished.
func (s GameState) Completed() bool {
	return s.GameOver && s.CardCount > 0 && s.Visited == s.CardCount
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Finished is true only on the tick the level became complete.
	Finished bool
}
