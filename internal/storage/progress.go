package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrDuplicateEvent reports a completion whose event id is already logged
// for the same user and level. Nothing is written.
var ErrDuplicateEvent = errors.New("storage: duplicate event")

// ErrEventConflict reports an event id already used by another user or
// level.
var ErrEventConflict = errors.New("storage: event id belongs to another completion")

// Event kinds.
const (
	EventComplete = "complete"
	EventReset    = "reset"
	EventPremium  = "premium"
)

// LevelProgress is the best completion of one level by one user.
type LevelProgress struct {
	UserID      string    `json:"userId"`
	LevelID     string    `json:"levelId"`
	Score       int       `json:"score"`
	Concepts    []string  `json:"concepts"`
	Attempts    int       `json:"attempts"`
	CompletedAt time.Time `json:"completedAt"`
}

// Completion is one finished play of a level.
type Completion struct {
	EventID  string
	UserID   string
	LevelID  string
	Score    int
	Concepts []string
}

// Event is an entry of the append-only activity log.
type Event struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	LevelID   string    `json:"levelId,omitempty"`
	Kind      string    `json:"kind"`
	Score     int       `json:"score,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordCompletion stores a completion. The row keeps the best score and
// the concepts of that best play; attempts counts every completion.
// It reports whether the stored score improved.
func (s *Store) RecordCompletion(ctx context.Context, c Completion) (LevelProgress, bool, error) {
	if c.Concepts == nil {
		c.Concepts = []string{}
	}
	concepts, err := json.Marshal(c.Concepts)
	if err != nil {
		return LevelProgress{}, false, fmt.Errorf("storage: cannot encode concepts: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LevelProgress{}, false, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if c.EventID != "" {
		var user, level string
		err := tx.QueryRowContext(ctx, `SELECT user_id, level_id FROM events WHERE id = ?`, c.EventID).Scan(&user, &level)
		switch {
		case err == nil && user == c.UserID && level == c.LevelID:
			return LevelProgress{}, false, ErrDuplicateEvent
		case err == nil:
			return LevelProgress{}, false, ErrEventConflict
		case !errors.Is(err, sql.ErrNoRows):
			return LevelProgress{}, false, fmt.Errorf("storage: cannot query event: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO users (id) VALUES (?)`, c.UserID); err != nil {
		return LevelProgress{}, false, fmt.Errorf("storage: cannot ensure user: %w", err)
	}

	previous := -1
	err = tx.QueryRowContext(ctx,
		`SELECT score FROM level_progress WHERE user_id = ? AND level_id = ?`,
		c.UserID, c.LevelID,
	).Scan(&previous)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return LevelProgress{}, false, fmt.Errorf("storage: cannot query progress: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO level_progress (user_id, level_id, score, concepts)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, level_id) DO UPDATE SET
			attempts = level_progress.attempts + 1,
			concepts = CASE WHEN excluded.score > level_progress.score
				THEN excluded.concepts ELSE level_progress.concepts END,
			completed_at = CASE WHEN excluded.score > level_progress.score
				THEN CURRENT_TIMESTAMP ELSE level_progress.completed_at END,
			score = MAX(level_progress.score, excluded.score)`,
		c.UserID, c.LevelID, c.Score, string(concepts),
	)
	if err != nil {
		return LevelProgress{}, false, fmt.Errorf("storage: cannot save progress: %w", err)
	}

	if c.EventID != "" {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO events (id, user_id, level_id, kind, score) VALUES (?, ?, ?, ?, ?)`,
			c.EventID, c.UserID, c.LevelID, EventComplete, c.Score,
		)
		if err != nil {
			return LevelProgress{}, false, fmt.Errorf("storage: cannot save event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return LevelProgress{}, false, fmt.Errorf("storage: cannot commit: %w", err)
	}

	p, err := s.LevelProgress(ctx, c.UserID, c.LevelID)
	if err != nil {
		return LevelProgress{}, false, err
	}
	return p, c.Score > previous, nil
}

const progressColumns = `user_id, level_id, score, concepts, attempts, completed_at`

func scanProgress(row interface{ Scan(...any) error }) (LevelProgress, error) {
	var p LevelProgress
	var concepts string
	var completedAt any
	if err := row.Scan(&p.UserID, &p.LevelID, &p.Score, &concepts, &p.Attempts, &completedAt); err != nil {
		return LevelProgress{}, err
	}
	if err := json.Unmarshal([]byte(concepts), &p.Concepts); err != nil {
		return LevelProgress{}, fmt.Errorf("storage: bad concepts for %s/%s: %w", p.UserID, p.LevelID, err)
	}
	p.CompletedAt = parseTime(completedAt)
	return p, nil
}

// LevelProgress returns one user's progress on one level, or ErrNotFound.
func (s *Store) LevelProgress(ctx context.Context, userID, levelID string) (LevelProgress, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+progressColumns+` FROM level_progress WHERE user_id = ? AND level_id = ?`,
		userID, levelID,
	)
	p, err := scanProgress(row)
	if errors.Is(err, sql.ErrNoRows) {
		return LevelProgress{}, ErrNotFound
	}
	if err != nil {
		return LevelProgress{}, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	return p, nil
}

// Progress returns every completed level of a user, ordered by level id.
func (s *Store) Progress(ctx context.Context, userID string) ([]LevelProgress, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+progressColumns+` FROM level_progress WHERE user_id = ? ORDER BY level_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var out []LevelProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ResetProgress deletes a user's level progress and returns the number of
// rows removed. The profile and premium flag survive.
func (s *Store) ResetProgress(ctx context.Context, userID, eventID string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM level_progress WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	if eventID != "" {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO events (id, user_id, kind) VALUES (?, ?, ?)`,
			eventID, userID, EventReset,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save event: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit: %w", err)
	}
	return n, nil
}

// AddEvent appends an event to the activity log.
func (s *Store) AddEvent(ctx context.Context, e Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, user_id, level_id, kind, score) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.LevelID, e.Kind, e.Score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save event: %w", err)
	}
	return nil
}

// Events returns a user's most recent events, newest first.
func (s *Store) Events(ctx context.Context, userID string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, level_id, kind, score, created_at
		 FROM events
		 WHERE user_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var createdAt any
		if err := rows.Scan(&e.ID, &e.UserID, &e.LevelID, &e.Kind, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
