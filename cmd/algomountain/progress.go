package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress [user]",
	Short: "Show a climber's progress",
	Long: `Display every level with its lock state, best score and attempts.

Examples:
  algomountain progress
  algomountain progress ada
  algomountain progress ada --endpoint http://localhost:8080`,
	Args: cobra.MaximumNArgs(1),
	Run:  runProgress,
}

func runProgress(cmd *cobra.Command, args []string) {
	logger := newLogger(os.Stderr, "algomountain")
	rec, closeFn, err := openBackend(logger)
	if err != nil {
		exitf("opening progress: %v", err)
	}
	defer closeFn()

	user := userID(args)
	sum, err := rec.Summary(context.Background(), user)
	if err != nil {
		closeFn()
		exitf("loading progress: %v", err)
	}

	premium := ""
	if sum.Premium {
		premium = " · premium"
	}
	fmt.Printf("Progress - %s%s\n", user, premium)
	fmt.Printf("%d/%d levels · %d points\n", sum.Completed, sum.Total, sum.Score)
	if sum.Next != "" {
		fmt.Printf("Next: %s\n", sum.Next)
	}
	fmt.Println()

	fmt.Printf("  %2s  %-24s  %-7s  %5s  %5s  %s\n", "#", "Level", "Status", "Score", "Tries", "Completed")
	fmt.Printf("  %2s  %-24s  %-7s  %5s  %5s  %s\n", "--", "-----", "------", "-----", "-----", "---------")
	for _, l := range sum.Levels {
		status, score, tries, when := "locked", "-", "-", ""
		switch {
		case l.Completed:
			status = "done"
			score = fmt.Sprintf("%d", l.Score)
			tries = fmt.Sprintf("%d", l.Attempts)
			when = l.CompletedAt.Local().Format("2006-01-02 15:04")
		case l.Unlocked:
			status = "open"
		}
		title := l.Title
		if l.Premium {
			title += " ★"
		}
		fmt.Printf("  %2d  %-24s  %-7s  %5s  %5s  %s\n", l.Number, title, status, score, tries, when)
	}
}
