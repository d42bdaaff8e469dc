package storage

import (
	"context"
	"fmt"
	"time"
)

// LeaderboardEntry is one user's best score on a level.
type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name,omitempty"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
}

// Leaderboard returns the top n scores of a level. Ties go to the earlier
// completion.
func (s *Store) Leaderboard(ctx context.Context, levelID string, n int) ([]LeaderboardEntry, error) {
	if n <= 0 {
		n = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.user_id, COALESCE(u.name, ''), p.score, p.completed_at
		 FROM level_progress p
		 LEFT JOIN users u ON u.id = p.user_id
		 WHERE p.level_id = ?
		 ORDER BY p.score DESC, p.completed_at ASC, p.user_id ASC
		 LIMIT ?`,
		levelID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var completedAt any
		if err := rows.Scan(&e.UserID, &e.Name, &e.Score, &completedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Rank = len(entries) + 1
		e.CompletedAt = parseTime(completedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// LevelStats aggregates the completions of one level.
type LevelStats struct {
	LevelID       string    `json:"levelId"`
	Completions   int       `json:"completions"`
	Attempts      int       `json:"attempts"`
	BestScore     int       `json:"bestScore"`
	AvgScore      float64   `json:"avgScore"`
	LastCompleted time.Time `json:"lastCompleted"`
}

// Stats is a store-wide summary.
type Stats struct {
	Users        int                    `json:"users"`
	PremiumUsers int                    `json:"premiumUsers"`
	Completions  int                    `json:"completions"`
	Events       int                    `json:"events"`
	Levels       map[string]*LevelStats `json:"levels"`
}

// Stats retrieves aggregated statistics over every user and level.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{Levels: make(map[string]*LevelStats)}

	err := s.db.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE premium != 0),
			(SELECT COUNT(*) FROM level_progress),
			(SELECT COUNT(*) FROM events)`,
	).Scan(&stats.Users, &stats.PremiumUsers, &stats.Completions, &stats.Events)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT level_id, COUNT(*), SUM(attempts), MAX(score), AVG(score), MAX(completed_at)
		 FROM level_progress
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ls LevelStats
		var last any
		if err := rows.Scan(&ls.LevelID, &ls.Completions, &ls.Attempts, &ls.BestScore, &ls.AvgScore, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastCompleted = parseTime(last)
		stats.Levels[ls.LevelID] = &ls
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
