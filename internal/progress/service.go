package progress

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/apperr"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/levels"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/storage"
)

// Service implements progress tracking on top of the local store.
type Service struct {
	store  *storage.Store
	cat    *levels.Catalogue
	logger *log.Logger
	newID  func() string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithIDFunc replaces the event id generator.
func WithIDFunc(f func() string) Option {
	return func(s *Service) { s.newID = f }
}

// NewService creates a Service over store and the level catalogue.
func NewService(store *storage.Store, cat *levels.Catalogue, opts ...Option) *Service {
	s := &Service{
		store: store,
		cat:   cat,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "progress",
		}),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Recorder = (*Service)(nil)

func (s *Service) level(id string) (*levels.Level, error) {
	l, err := s.cat.Get(id)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeLevelNotFound, err, "no level %q", id)
	}
	return l, nil
}

func checkUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return apperr.New(apperr.CodeMissingUser, "user id is required")
	}
	return nil
}

// Complete records a finished level. The level must exist and be unlocked
// for the climber, the score must be one the level can award, and the
// concepts must be exactly the level's cards (repeats allowed).
func (s *Service) Complete(ctx context.Context, c Completion) (*Receipt, error) {
	if err := checkUser(c.UserID); err != nil {
		return nil, err
	}
	l, err := s.level(c.LevelID)
	if err != nil {
		return nil, err
	}
	if c.Score < levels.MinScore || c.Score > l.MaxScore() {
		return nil, apperr.New(apperr.CodeInvalidInput, "score %d is outside %d..%d for level %q",
			c.Score, levels.MinScore, l.MaxScore(), l.ID)
	}
	seen := mapset.NewThreadUnsafeSet[string]()
	concepts := make([]string, 0, len(c.Concepts))
	for _, id := range c.Concepts {
		if _, err := l.Card(id); err != nil {
			return nil, apperr.Wrap(apperr.CodeCardNotFound, err, "level %q has no card %q", l.ID, id)
		}
		if seen.Add(id) {
			concepts = append(concepts, id)
		}
	}
	if missing := missingCards(l, seen); len(missing) > 0 {
		return nil, apperr.New(apperr.CodeInvalidInput, "level %q is not finished: cards %s not visited",
			l.ID, strings.Join(missing, ", "))
	}

	sum, err := s.Summary(ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	if err := lockError(sum, l); err != nil {
		return nil, err
	}

	eventID := c.EventID
	if eventID == "" {
		eventID = s.newID()
	}
	p, improved, err := s.store.RecordCompletion(ctx, storage.Completion{
		EventID:  eventID,
		UserID:   c.UserID,
		LevelID:  l.ID,
		Score:    c.Score,
		Concepts: concepts,
	})
	switch {
	case errors.Is(err, storage.ErrDuplicateEvent):
		p, err := s.store.LevelProgress(ctx, c.UserID, l.ID)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, err, "load replayed completion")
		}
		s.logger.Debug("completion replayed", "user", c.UserID, "level", l.ID, "event", eventID)
		return &Receipt{EventID: eventID, Progress: p, Replayed: true}, nil
	case errors.Is(err, storage.ErrEventConflict):
		return nil, apperr.Wrap(apperr.CodeInvalidInput, err, "event id %q is already used", eventID)
	case err != nil:
		return nil, apperr.Wrap(apperr.CodeInternal, err, "record completion")
	}
	s.logger.Info("level completed", "user", c.UserID, "level", l.ID, "score", c.Score, "improved", improved)

	r := &Receipt{EventID: eventID, Progress: p, Improved: improved}
	if next, ok := s.cat.Next(l); ok {
		if st, _ := sum.Level(next.ID); !st.Unlocked && (!next.Premium || sum.Premium) {
			r.Next = next.ID
		}
	}
	return r, nil
}

func missingCards(l *levels.Level, seen mapset.Set[string]) []string {
	var missing []string
	for _, card := range l.Cards {
		if !seen.Contains(card.ID) {
			missing = append(missing, card.ID)
		}
	}
	return missing
}

func lockError(sum *Summary, l *levels.Level) error {
	st, _ := sum.Level(l.ID)
	if st.Unlocked {
		return nil
	}
	if l.Premium && !sum.Premium {
		return apperr.New(apperr.CodePremiumRequired, "level %q needs a premium profile", l.ID)
	}
	return apperr.New(apperr.CodeLevelLocked, "level %q is locked: complete level %d first", l.ID, l.Number-1)
}

// Summary builds the climber's progress over the whole catalogue. Unknown
// climbers get an empty, non-premium summary.
func (s *Service) Summary(ctx context.Context, userID string) (*Summary, error) {
	if err := checkUser(userID); err != nil {
		return nil, err
	}
	u, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.Progress(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "load progress")
	}
	done := make(map[string]storage.LevelProgress, len(rows))
	for _, p := range rows {
		done[p.LevelID] = p
	}

	sum := &Summary{UserID: userID, Premium: u.Premium, Total: s.cat.Len()}
	for _, l := range s.cat.All() {
		st := LevelStatus{
			ID:       l.ID,
			Number:   l.Number,
			Title:    l.Title,
			Premium:  l.Premium,
			Unlocked: isUnlocked(s.cat, l, done, u.Premium),
		}
		if p, ok := done[l.ID]; ok {
			st.Completed = true
			st.Score = p.Score
			st.Attempts = p.Attempts
			st.Concepts = p.Concepts
			st.CompletedAt = p.CompletedAt
			sum.Completed++
			sum.Score += p.Score
		}
		if sum.Next == "" && st.Unlocked && !st.Completed {
			sum.Next = l.ID
		}
		sum.Levels = append(sum.Levels, st)
	}
	return sum, nil
}

// isUnlocked applies the climbing rule: the first level is always open,
// every other level opens once the one below it is completed, and premium
// levels additionally need a premium profile.
func isUnlocked(cat *levels.Catalogue, l *levels.Level, done map[string]storage.LevelProgress, premium bool) bool {
	if l.Premium && !premium {
		return false
	}
	prev, ok := cat.Previous(l)
	if !ok {
		return true
	}
	_, ok = done[prev.ID]
	return ok
}

// Unlocked reports whether the climber may play a level.
func (s *Service) Unlocked(ctx context.Context, userID, levelID string) (bool, error) {
	if _, err := s.level(levelID); err != nil {
		return false, err
	}
	sum, err := s.Summary(ctx, userID)
	if err != nil {
		return false, err
	}
	return sum.Unlocked(levelID), nil
}

// LevelStatus returns one level of the climber's summary.
func (s *Service) LevelStatus(ctx context.Context, userID, levelID string) (LevelStatus, error) {
	if _, err := s.level(levelID); err != nil {
		return LevelStatus{}, err
	}
	sum, err := s.Summary(ctx, userID)
	if err != nil {
		return LevelStatus{}, err
	}
	st, _ := sum.Level(levelID)
	return st, nil
}

// Profile returns the stored profile, or a fresh non-premium one for
// climbers who never finished a level.
func (s *Service) Profile(ctx context.Context, userID string) (storage.User, error) {
	if err := checkUser(userID); err != nil {
		return storage.User{}, err
	}
	u, err := s.store.Profile(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return storage.User{ID: userID}, nil
	}
	if err != nil {
		return storage.User{}, apperr.Wrap(apperr.CodeInternal, err, "load profile")
	}
	return u, nil
}

// ActivatePremium flags the climber as premium. There is no checkout; the
// flag is all the lessons look at.
func (s *Service) ActivatePremium(ctx context.Context, userID string) (storage.User, error) {
	if err := checkUser(userID); err != nil {
		return storage.User{}, err
	}
	u, err := s.store.SetPremium(ctx, userID, true)
	if err != nil {
		return storage.User{}, apperr.Wrap(apperr.CodeInternal, err, "activate premium")
	}
	if err := s.store.AddEvent(ctx, storage.Event{ID: s.newID(), UserID: userID, Kind: storage.EventPremium}); err != nil {
		s.logger.Warn("could not log premium event", "user", userID, "error", err)
	}
	s.logger.Info("premium activated", "user", userID)
	return u, nil
}

// Reset forgets every completed level of the climber.
func (s *Service) Reset(ctx context.Context, userID string) (int64, error) {
	if err := checkUser(userID); err != nil {
		return 0, err
	}
	n, err := s.store.ResetProgress(ctx, userID, s.newID())
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeInternal, err, "reset progress")
	}
	s.logger.Info("progress reset", "user", userID, "levels", n)
	return n, nil
}

// Leaderboard returns the best scores of a level.
func (s *Service) Leaderboard(ctx context.Context, levelID string, n int) ([]storage.LeaderboardEntry, error) {
	if _, err := s.level(levelID); err != nil {
		return nil, err
	}
	entries, err := s.store.Leaderboard(ctx, levelID, n)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "load leaderboard")
	}
	return entries, nil
}

// Events returns the climber's recent activity.
func (s *Service) Events(ctx context.Context, userID string, n int) ([]storage.Event, error) {
	if err := checkUser(userID); err != nil {
		return nil, err
	}
	events, err := s.store.Events(ctx, userID, n)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "load events")
	}
	return events, nil
}

// Stats returns store-wide statistics.
func (s *Service) Stats(ctx context.Context) (*storage.Stats, error) {
	st, err := s.store.Stats(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "load stats")
	}
	return st, nil
}

// Catalogue returns the levels the service tracks.
func (s *Service) Catalogue() *levels.Catalogue {
	return s.cat
}
