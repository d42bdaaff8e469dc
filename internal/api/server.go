// Package api serves climber progress, the level catalogue and algorithm
// runs over HTTP with gin.
package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/progress"
)

// Config holds HTTP server settings.
type Config struct {
	Addr         string
	Mode         string // gin mode
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the progress API.
type Server struct {
	cfg     Config
	svc     *progress.Service
	logger  *log.Logger
	metrics *metrics
	router  *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New builds the router. Metrics go to a registry owned by the server and
// are exposed on /metrics.
func New(cfg Config, svc *progress.Service, opts ...Option) *Server {
	s := &Server{
		cfg: cfg,
		svc: svc,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "api",
		}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	s.metrics = newMetrics(reg)

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.logRequests(), s.metrics.middleware())
	r.GET("/health", healthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	s.routes(r)
	s.router = r
	return s
}

func (s *Server) routes(r *gin.Engine) {
	api := r.Group("/api", limitBody(maxBodyBytes))
	{
		gp := api.Group("/game-progress")
		{
			gp.POST("/complete", s.handleComplete)
			gp.GET("/:userId", s.handleSummary)
			gp.GET("/:userId/:levelId", s.handleLevelStatus)
			gp.DELETE("/:userId", s.handleReset)
		}
		api.GET("/user/profile", s.handleProfile)
		api.GET("/user/events", s.handleEvents)

		premium := api.Group("/premium")
		{
			premium.GET("/status", s.handlePremiumStatus)
			premium.POST("/activate", s.handleActivatePremium)
		}

		lv := api.Group("/levels")
		{
			lv.GET("", s.handleLevels)
			lv.GET("/:id", s.handleLevel)
			lv.GET("/:id/leaderboard", s.handleLeaderboard)
			lv.POST("/:id/cards/:card/run", s.handleRunCard)
		}
		api.GET("/algorithms", s.handleAlgorithms)
		api.POST("/algorithms/:name/run", s.handleExecute)
		api.GET("/stats", s.handleStats)
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP API listening", "address", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
