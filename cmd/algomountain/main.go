// algomountain is a terminal climb through graph and tree algorithms.
// Every level is a lesson of concept cards whose algorithms animate step by
// step; finishing a level unlocks the next one.
//
// Usage:
//
//	algomountain list                  - List the levels
//	algomountain play <level>          - Play one level
//	algomountain menu                  - Climb level by level from a menu
//	algomountain run <level> <card>    - Print the trace of one concept card
//	algomountain progress [user]       - Show a climber's progress
//	algomountain reset [user]          - Wipe a climber's progress
//	algomountain premium [user]        - Unlock the premium levels
//	algomountain api                   - Serve the HTTP progress API
//	algomountain serve                 - Serve SSH sessions and the API
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.algomountain, ./configs)
//	--user <id>         - Climber ID (default: $USER)
//	--pace <name>       - Animation pace: slow, normal, fast
//	--endpoint <url>    - Report progress to a remote API instead of the local store
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagUser     string
	flagPace     string
	flagEndpoint string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "algomountain",
	Short: "Climb Algo Mountain - learn graph and tree algorithms in your terminal",
	Long: `Climb Algo Mountain teaches graph and tree algorithms one level at a time.
Each level shows a small graph or tree and a set of concept cards; playing a
card animates its algorithm step by step. Visit every card to finish the level
and unlock the next one.

Available commands:
  list      - Show all levels
  play      - Play a specific level
  menu      - Interactive climb with progress
  run       - Print an algorithm trace
  progress  - Show a climber's progress
  reset     - Wipe a climber's progress
  premium   - Unlock the premium levels
  api       - Serve the HTTP progress API
  serve     - Serve SSH sessions and the HTTP API

Examples:
  algomountain list
  algomountain play bfs-dfs --pace fast
  algomountain menu
  algomountain run dijkstra to-summit
  algomountain serve`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setup()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "Climber ID (default: $USER)")
	rootCmd.PersistentFlags().StringVar(&flagPace, "pace", "", "Animation pace: slow, normal, fast")
	rootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "Progress API base URL (default: local store)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(premiumCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(serveCmd)
}
