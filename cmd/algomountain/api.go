package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/api"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/progress"
)

var flagHTTPAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the HTTP progress API",
	Long: `Serve climber progress, the level catalogue and algorithm runs over HTTP.
Progress is stored in the local SQLite database.

Examples:
  algomountain api
  algomountain api --http :9090

Other machines can then record into it with:
  algomountain menu --endpoint http://host:8080`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP listen address (default from config)")
}

func runAPI(cmd *cobra.Command, args []string) {
	logger := newLogger(os.Stderr, "algomountain-api")

	svc, closeFn, err := openService(logger)
	if err != nil {
		exitf("opening progress: %v", err)
	}
	defer closeFn()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newAPIServer(svc, logger).Run(ctx); err != nil {
		closeFn()
		exitf("serving API: %v", err)
	}
}

// newAPIServer builds the HTTP server from the configuration and flags.
func newAPIServer(svc *progress.Service, logger *log.Logger) *api.Server {
	addr := appConfig.HTTP.Addr
	if flagHTTPAddr != "" {
		addr = flagHTTPAddr
	}
	return api.New(api.Config{
		Addr:         addr,
		Mode:         appConfig.HTTP.Mode,
		ReadTimeout:  appConfig.HTTP.ReadTimeout,
		WriteTimeout: appConfig.HTTP.WriteTimeout,
	}, svc, api.WithLogger(logger))
}
