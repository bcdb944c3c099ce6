package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/modes"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List all game modes",
	Long:  `Shows the game modes, including any defined in the config file.`,
	Run:   runModes,
}

func runModes(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	list := cfg.Registry().List()

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, m := range list {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "ID", "Name", "Rules")
	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "--", "----", "-----")

	for _, m := range list {
		marker := " "
		if string(m.ID) == cfg.DefaultMode {
			marker = "*"
		}
		fmt.Printf("%s %-*s  %-12s  %s\n", marker, maxIDLen, m.ID, m.Name, describeRules(m))
	}

	fmt.Println()
	fmt.Println("Run 't2048 play --mode <id>' to play a mode.")
}

// describeRules summarizes how a mode is won and lost.
func describeRules(m modes.Config) string {
	s := "no win tile"
	if m.HasWinCondition() {
		s = fmt.Sprintf("win at %d (%s)", m.WinThreshold, m.WinBehavior)
	}
	if m.Timed() {
		s += ", " + m.TimeLimit.String() + " limit"
	}
	if !m.AllowGameOver {
		s += ", no game over"
	}
	return s
}
