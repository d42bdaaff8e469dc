package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/config"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/core"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/games/lesson"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/levels"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/progress"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/registry"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/storage"
)

// clientBackoff is the first wait between two progress upload attempts.
const clientBackoff = 250 * time.Millisecond

var (
	appConfig    config.Config
	appCatalogue *levels.Catalogue
)

// backend is what the progress commands need from either the local
// service or the remote client.
type backend interface {
	progress.Recorder
	Reset(ctx context.Context, userID string) (int64, error)
	ActivatePremium(ctx context.Context, userID string) (storage.User, error)
}

// setup loads the configuration, applies flag overrides and installs the
// level catalogue.
func setup() error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagPace != "" {
		pace, err := config.ParsePace(flagPace)
		if err != nil {
			return err
		}
		config.ApplyPace(&cfg, pace)
	}
	if flagEndpoint != "" {
		cfg.Progress.Endpoint = flagEndpoint
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	appConfig = cfg

	if cfg.Levels.Dir == "" {
		appCatalogue = levels.MustDefault()
		return nil
	}
	cat, err := levels.Load(os.DirFS(cfg.Levels.Dir), ".")
	if err != nil {
		return err
	}
	registry.Clear()
	lesson.Install(cat)
	appCatalogue = cat
	return nil
}

// newLogger returns a timestamped logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if lvl, err := log.ParseLevel(appConfig.Log.Level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// tuiLogger logs to ~/.algomountain/algomountain.log so the alt screen
// stays clean. The returned closer is never nil.
func tuiLogger() (*log.Logger, func()) {
	path := config.UserPath("algomountain.log")
	if path == "" {
		return newLogger(io.Discard, "algomountain"), func() {}
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(filepath.Dir(path), 0o755)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return newLogger(io.Discard, "algomountain"), func() {}
	}
	return newLogger(f, "algomountain"), func() { f.Close() }
}

// userID picks the climber: --user, then $USER, then a fixed fallback.
func userID(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if flagUser != "" {
		return flagUser
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "climber"
}

// openService opens the local store and wraps it in a progress service.
func openService(logger *log.Logger) (*progress.Service, func(), error) {
	store, err := storage.Open(appConfig.StoragePath())
	if err != nil {
		return nil, nil, err
	}
	svc := progress.NewService(store, appCatalogue, progress.WithLogger(logger))
	return svc, func() { store.Close() }, nil
}

// openBackend returns the remote client when an endpoint is configured,
// otherwise the local service.
func openBackend(logger *log.Logger) (backend, func(), error) {
	if ep := appConfig.Progress.Endpoint; ep != "" {
		client := progress.NewClient(ep,
			progress.WithHTTPClient(&http.Client{Timeout: appConfig.Progress.Timeout}),
			progress.WithRetries(appConfig.Progress.Retries, clientBackoff),
			progress.WithClientLogger(logger),
		)
		logger.Debug("reporting progress remotely", "endpoint", ep)
		return client, func() {}, nil
	}
	svc, closeFn, err := openService(logger)
	if err != nil {
		return nil, nil, err
	}
	return svc, closeFn, nil
}

// runtimeConfig builds the lesson config for the local terminal.
func runtimeConfig(user string) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		TickRate:  appConfig.Lesson.TickRate,
		StepTicks: appConfig.Lesson.StepTicks,
		UserID:    user,
	}
}

// exitf prints an error and exits.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
