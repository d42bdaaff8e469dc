// Package progress tracks which levels a climber has completed and which
// ones are unlocked.
//
// Service works directly against the SQLite store. Client talks to the same
// operations over the HTTP API. Both satisfy Recorder, so a lesson session
// does not care where its completions go.
package progress

import (
	"context"
	"time"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/storage"
)

// Recorder stores completions and reports a climber's position.
type Recorder interface {
	Complete(ctx context.Context, c Completion) (*Receipt, error)
	Summary(ctx context.Context, userID string) (*Summary, error)
}

// Completion is a finished level, as reported by a lesson.
type Completion struct {
	// EventID, when set, makes the completion idempotent: recording the
	// same id again returns the stored progress instead of a new attempt.
	EventID  string   `json:"eventId,omitempty"`
	UserID   string   `json:"userId"`
	LevelID  string   `json:"levelId"`
	Score    int      `json:"score"`
	Concepts []string `json:"concepts"`
}

// Receipt acknowledges a recorded completion.
type Receipt struct {
	EventID  string                `json:"eventId"`
	Progress storage.LevelProgress `json:"progress"`
	Improved bool                  `json:"improved"`
	// Next is the level this completion unlocked, if any.
	Next string `json:"next,omitempty"`
	// Replayed is set when the event id had already been recorded.
	Replayed bool `json:"replayed,omitempty"`
}

// LevelStatus is one level as seen by one climber.
type LevelStatus struct {
	ID          string    `json:"id"`
	Number      int       `json:"number"`
	Title       string    `json:"title"`
	Premium     bool      `json:"premium"`
	Unlocked    bool      `json:"unlocked"`
	Completed   bool      `json:"completed"`
	Score       int       `json:"score,omitempty"`
	Attempts    int       `json:"attempts,omitempty"`
	Concepts    []string  `json:"concepts,omitempty"`
	CompletedAt time.Time `json:"completedAt,omitzero"`
}

// Summary is a climber's whole progress.
type Summary struct {
	UserID    string        `json:"userId"`
	Premium   bool          `json:"premium"`
	Completed int           `json:"completed"`
	Total     int           `json:"total"`
	Score     int           `json:"score"`
	Next      string        `json:"next,omitempty"` // lowest unlocked, uncompleted level
	Levels    []LevelStatus `json:"levels"`
}

// Level returns the status of one level, if present.
func (s *Summary) Level(id string) (LevelStatus, bool) {
	for _, l := range s.Levels {
		if l.ID == id {
			return l, true
		}
	}
	return LevelStatus{}, false
}

// Unlocked reports whether the climber may play the level.
func (s *Summary) Unlocked(id string) bool {
	l, ok := s.Level(id)
	return ok && l.Unlocked
}
