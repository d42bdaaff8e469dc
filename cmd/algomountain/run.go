package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/levels"
)

var flagJSON bool

var runCmd = &cobra.Command{
	Use:   "run <level> [card]",
	Short: "Print the trace of a concept card",
	Long: `Run a concept card's algorithm on its level data and print every step.
Without a card, the level's cards are listed.

Examples:
  algomountain run bfs-dfs
  algomountain run bfs-dfs depth-first
  algomountain run bellman-ford dijkstra-fails --json`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the result as JSON")
}

func runRun(cmd *cobra.Command, args []string) {
	level, err := appCatalogue.Get(args[0])
	if err != nil {
		exitf("%v", err)
	}

	if len(args) == 1 {
		fmt.Printf("Level %d · %s\n\n", level.Number, level.Title)
		for _, c := range level.Cards {
			fmt.Printf("  %-18s %-22s %s\n", c.ID, c.Algorithm, c.Title)
		}
		return
	}

	card, err := level.Card(args[1])
	if err != nil {
		exitf("%v", err)
	}
	res, err := levels.Run(card, level)
	if err != nil {
		exitf("running %s: %v", card.Algorithm, err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			exitf("encoding result: %v", err)
		}
		return
	}

	fmt.Printf("%s · %s (%s)\n\n", level.Title, card.Title, res.Algorithm)
	if res.Trace != nil {
		for i, s := range res.Trace.Steps {
			fmt.Printf("  %3d  %s\n", i+1, s)
		}
		fmt.Println()
	}
	fmt.Println(res.Summary)
	if res.Failure != "" {
		fmt.Printf("Failure: %s\n", res.Failure)
	}
}
