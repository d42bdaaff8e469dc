package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/apperr"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/levels"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/progress"
)

type completeRequest struct {
	EventID  string   `json:"eventId" binding:"omitempty,uuid"`
	UserID   string   `json:"userId" binding:"required"`
	LevelID  string   `json:"levelId" binding:"required"`
	Score    int      `json:"score" binding:"gte=0"`
	Concepts []string `json:"concepts" binding:"omitempty,dive,required"`
}

// levelInfo is the catalogue listing entry.
type levelInfo struct {
	ID      string      `json:"id"`
	Number  int         `json:"number"`
	Title   string      `json:"title"`
	Summary string      `json:"summary"`
	Kind    levels.Kind `json:"kind"`
	Premium bool        `json:"premium"`
	Cards   int         `json:"cards"`
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError answers with {code, message} and the status matching the code.
func (s *Server) writeError(c *gin.Context, err error) {
	body := apperr.ToBody(err)
	status := apperr.HTTPStatus(body.Code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Request.URL.Path, "request_id", c.GetString(requestIDKey), "error", err)
	}
	c.AbortWithStatusJSON(status, body)
}

// userFromHeader reads the climber id of profile and premium requests.
func userFromHeader(c *gin.Context) (string, error) {
	id := c.GetHeader(progress.UserHeader)
	if id == "" {
		return "", apperr.New(apperr.CodeMissingUser, "missing %s header", progress.UserHeader)
	}
	return id, nil
}

func queryLimit(c *gin.Context, def int) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > 100 {
		return 0, apperr.New(apperr.CodeInvalidInput, "limit must be between 1 and 100")
	}
	return n, nil
}

// handleComplete handles POST /api/game-progress/complete.
func (s *Server) handleComplete(c *gin.Context) {
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, apperr.New(apperr.CodeInvalidInput, "invalid request body: %v", err))
		return
	}

	r, err := s.svc.Complete(c.Request.Context(), progress.Completion{
		EventID:  req.EventID,
		UserID:   req.UserID,
		LevelID:  req.LevelID,
		Score:    req.Score,
		Concepts: req.Concepts,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	if r.Replayed {
		c.JSON(http.StatusOK, r)
		return
	}
	s.metrics.completions.WithLabelValues(req.LevelID).Inc()
	c.JSON(http.StatusCreated, r)
}

// handleSummary handles GET /api/game-progress/:userId.
func (s *Server) handleSummary(c *gin.Context) {
	sum, err := s.svc.Summary(c.Request.Context(), c.Param("userId"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// handleLevelStatus handles GET /api/game-progress/:userId/:levelId.
func (s *Server) handleLevelStatus(c *gin.Context) {
	st, err := s.svc.LevelStatus(c.Request.Context(), c.Param("userId"), c.Param("levelId"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// handleReset handles DELETE /api/game-progress/:userId.
func (s *Server) handleReset(c *gin.Context) {
	n, err := s.svc.Reset(c.Request.Context(), c.Param("userId"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": n})
}

func (s *Server) handleProfile(c *gin.Context) {
	id, err := userFromHeader(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	u, err := s.svc.Profile(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) handleEvents(c *gin.Context) {
	id, err := userFromHeader(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	limit, err := queryLimit(c, 20)
	if err != nil {
		s.writeError(c, err)
		return
	}
	events, err := s.svc.Events(c.Request.Context(), id, limit)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (s *Server) handlePremiumStatus(c *gin.Context) {
	id, err := userFromHeader(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	u, err := s.svc.Profile(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": u.ID, "premium": u.Premium})
}

func (s *Server) handleActivatePremium(c *gin.Context) {
	id, err := userFromHeader(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	u, err := s.svc.ActivatePremium(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) handleLevels(c *gin.Context) {
	all := s.svc.Catalogue().All()
	out := make([]levelInfo, 0, len(all))
	for _, l := range all {
		out = append(out, levelInfo{
			ID:      l.ID,
			Number:  l.Number,
			Title:   l.Title,
			Summary: l.Summary,
			Kind:    l.Kind,
			Premium: l.Premium,
			Cards:   len(l.Cards),
		})
	}
	c.JSON(http.StatusOK, gin.H{"levels": out})
}

func (s *Server) level(c *gin.Context) (*levels.Level, bool) {
	l, err := s.svc.Catalogue().Get(c.Param("id"))
	if err != nil {
		s.writeError(c, apperr.Wrap(apperr.CodeLevelNotFound, err, "no level %q", c.Param("id")))
		return nil, false
	}
	return l, true
}

func (s *Server) handleLevel(c *gin.Context) {
	if l, ok := s.level(c); ok {
		c.JSON(http.StatusOK, l)
	}
}

func (s *Server) handleLeaderboard(c *gin.Context) {
	limit, err := queryLimit(c, 10)
	if err != nil {
		s.writeError(c, err)
		return
	}
	entries, err := s.svc.Leaderboard(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"levelId": c.Param("id"), "entries": entries})
}

// handleRunCard handles POST /api/levels/:id/cards/:card/run and answers
// with the algorithm result and its step trace. Cards of premium levels
// need a premium X-User-ID.
func (s *Server) handleRunCard(c *gin.Context) {
	l, ok := s.level(c)
	if !ok {
		return
	}
	if l.Premium {
		if err := s.requirePremium(c, l); err != nil {
			s.writeError(c, err)
			return
		}
	}
	card, err := l.Card(c.Param("card"))
	if err != nil {
		s.writeError(c, apperr.Wrap(apperr.CodeCardNotFound, err, "level %q has no card %q", l.ID, c.Param("card")))
		return
	}
	res, err := levels.Run(card, l)
	if err != nil {
		s.metrics.runs.WithLabelValues(card.Algorithm, "error").Inc()
		s.writeError(c, apperr.Wrap(apperr.CodeInternal, err, "run %s", card.Algorithm))
		return
	}
	s.metrics.runs.WithLabelValues(card.Algorithm, outcome(res)).Inc()
	c.JSON(http.StatusOK, res)
}

func (s *Server) requirePremium(c *gin.Context, l *levels.Level) error {
	userID, err := userFromHeader(c)
	if err != nil {
		return err
	}
	u, err := s.svc.Profile(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	if !u.Premium {
		return apperr.New(apperr.CodePremiumRequired, "level %q needs a premium profile", l.ID)
	}
	return nil
}

func (s *Server) handleAlgorithms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"algorithms": levels.Algorithms()})
}

// handleExecute handles POST /api/algorithms/:name/run on caller data.
func (s *Server) handleExecute(c *gin.Context) {
	var in levels.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		s.writeError(c, apperr.New(apperr.CodeInvalidInput, "invalid request body: %v", err))
		return
	}
	name := c.Param("name")
	res, err := levels.Execute(name, in)
	if err != nil {
		code, label := apperr.CodeInvalidInput, name
		if errors.Is(err, levels.ErrUnknownAlgorithm) {
			code, label = apperr.CodeNotFound, "unknown"
		}
		s.metrics.runs.WithLabelValues(label, "error").Inc()
		s.writeError(c, apperr.New(code, "cannot run %s: %v", name, err))
		return
	}
	s.metrics.runs.WithLabelValues(name, outcome(res)).Inc()
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleStats(c *gin.Context) {
	st, err := s.svc.Stats(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func outcome(res *levels.Result) string {
	if res.Failure != "" {
		return "failure"
	}
	return "ok"
}
