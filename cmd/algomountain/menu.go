package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Climb the mountain from a level menu",
	Long: `Start the interactive climb.

The menu lists every level with its state: [✓] completed, [ ] open and
[x] locked. Finishing a level unlocks the next one; premium levels need a
premium profile. Leaving a level returns to the menu with fresh progress.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Climb the selected level
  Tab          - Progress board
  Q            - Quit

Examples:
  algomountain menu
  algomountain menu --user ada
  algomountain menu --endpoint http://localhost:8080`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, args []string) {
	logger, closeLog := tuiLogger()
	defer closeLog()

	rec, closeFn, err := openBackend(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: progress unavailable: %v\n", err)
		rec, closeFn = nil, func() {}
	}
	defer closeFn()

	if err := tui.RunSession(rec, logger, runtimeConfig(userID(nil))); err != nil {
		exitf("running menu: %v", err)
	}
}
