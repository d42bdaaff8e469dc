package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/platform/tui"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/registry"
)

var flagNoSave bool

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a level",
	Long: `Start the lesson for the given level.

Controls:
  Up/Down    - Pick a concept card
  Enter      - Play the card's algorithm
  P          - Pause or resume the animation
  Left/Right - Step back or forward while paused
  R          - Restart the animation (costs points)
  B/Esc      - Leave the level
  Q/Ctrl+C   - Quit

Locked levels can still be practised; the completion is only saved once the
level is unlocked for the climber.

Examples:
  algomountain play bfs-dfs
  algomountain play dijkstra --pace slow
  algomountain play prim --user ada`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Play without recording progress")
}

func runPlay(cmd *cobra.Command, args []string) {
	levelID := args[0]

	if !registry.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'algomountain list' to see the levels.")
		os.Exit(1)
	}

	game, err := registry.Create(levelID)
	if err != nil {
		exitf("creating level: %v", err)
	}

	logger, closeLog := tuiLogger()
	defer closeLog()

	user := userID(nil)
	cfg := runtimeConfig(user)

	var rec backend
	if !flagNoSave {
		b, closeFn, err := openBackend(logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: progress will not be saved: %v\n", err)
		} else {
			defer closeFn()
			rec = b
		}
	}

	if err := tui.Run(game, rec, logger, cfg); err != nil {
		exitf("running level: %v", err)
	}
}
