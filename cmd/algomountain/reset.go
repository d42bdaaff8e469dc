package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset [user]",
	Short: "Wipe a climber's progress",
	Long: `Delete every completed level of a climber. The profile and its premium
flag are kept.

Examples:
  algomountain reset
  algomountain reset ada --yes`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReset,
}

var premiumCmd = &cobra.Command{
	Use:   "premium [user]",
	Short: "Unlock the premium levels for a climber",
	Long: `Mark a climber as premium. Premium levels still unlock one after another.

Examples:
  algomountain premium ada`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPremium,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Do not ask for confirmation")
}

func runReset(cmd *cobra.Command, args []string) {
	user := userID(args)
	if !flagYes && !confirm(fmt.Sprintf("Wipe all progress of %s?", user)) {
		fmt.Println("Aborted.")
		return
	}

	logger := newLogger(os.Stderr, "algomountain")
	rec, closeFn, err := openBackend(logger)
	if err != nil {
		exitf("opening progress: %v", err)
	}
	defer closeFn()

	n, err := rec.Reset(context.Background(), user)
	if err != nil {
		closeFn()
		exitf("resetting progress: %v", err)
	}
	fmt.Printf("Removed %d completed level(s) of %s.\n", n, user)
}

func runPremium(cmd *cobra.Command, args []string) {
	logger := newLogger(os.Stderr, "algomountain")
	rec, closeFn, err := openBackend(logger)
	if err != nil {
		exitf("opening progress: %v", err)
	}
	defer closeFn()

	u, err := rec.ActivatePremium(context.Background(), userID(args))
	if err != nil {
		closeFn()
		exitf("activating premium: %v", err)
	}
	fmt.Printf("%s is now premium.\n", u.ID)
}

// confirm asks a yes/no question on stdin.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
