package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/core"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/platform/tui"
)

var (
	flagSSHAddr string
	flagHostKey string
	flagNoAPI   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve SSH sessions and the HTTP API",
	Long: `Start an SSH server where every connection climbs the mountain from the
level menu. The SSH user name is the climber ID, so progress follows the
login. The HTTP progress API runs alongside on the same store.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses ssh.host_key_path from the config, generating it if missing

Examples:
  algomountain serve                      # SSH on 0.0.0.0:2222, API on :8080
  algomountain serve --ssh :23234         # Different SSH port
  algomountain serve --no-api             # SSH only

Climbers connect with:
  ssh ada@localhost -p 2222`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH listen address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP listen address (default from config)")
	serveCmd.Flags().BoolVar(&flagNoAPI, "no-api", false, "Do not start the HTTP API")
}

func runServe(cmd *cobra.Command, args []string) {
	logger := newLogger(os.Stderr, "algomountain")

	svc, closeFn, err := openService(logger)
	if err != nil {
		exitf("opening progress: %v", err)
	}
	defer closeFn()

	sshCfg := tui.SSHServerConfig{
		Address:     appConfig.SSHAddr(),
		HostKeyPath: appConfig.SSH.HostKeyPath,
		IdleTimeout: appConfig.SSH.IdleTimeout,
		MaxTimeout:  appConfig.SSH.MaxTimeout,
	}
	if flagSSHAddr != "" {
		sshCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		sshCfg.HostKeyPath = flagHostKey
	}

	runtime := core.RuntimeConfig{
		TickRate:  appConfig.Lesson.TickRate,
		StepTicks: appConfig.Lesson.StepTicks,
	}
	sshServer, err := tui.NewSSHServer(sshCfg, svc, runtime, logger.WithPrefix("algomountain-ssh"))
	if err != nil {
		closeFn()
		exitf("creating SSH server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sshServer.ListenAndServe(gctx)
	})
	if !flagNoAPI {
		apiServer := newAPIServer(svc, logger.WithPrefix("algomountain-api"))
		g.Go(func() error {
			return apiServer.Run(gctx)
		})
	}

	fmt.Printf("Climbers connect with: %s\n", connectHint(sshCfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := g.Wait(); err != nil {
		closeFn()
		exitf("server: %v", err)
	}
}

// connectHint is the ssh command line for the address the server listens on.
func connectHint(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "ssh <name>@" + addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return fmt.Sprintf("ssh <name>@%s -p %s", host, port)
}
