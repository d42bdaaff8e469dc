package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  `Shows every level on the mountain in climbing order. Premium levels are marked with a star.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %2s  %-*s  %s\n", "#", maxIDLen, "ID", "Title")
	fmt.Printf("  %2s  %-*s  %s\n", "--", maxIDLen, "--", "-----")

	for _, g := range games {
		title := g.Title
		if g.Premium {
			title += " ★"
		}
		fmt.Printf("  %2d  %-*s  %s\n", g.Number, maxIDLen, g.ID, title)
	}

	fmt.Println()
	fmt.Println("Run 'algomountain play <id>' to play a level, or 'algomountain menu' to climb.")
}
