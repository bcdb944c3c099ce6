package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/stats"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagStatsReset bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime statistics",
	Long: `Display games played, wins and totals for this machine, followed by a
per-mode summary of the leaderboard.

Examples:
  t2048 stats
  t2048 stats --reset`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsReset, "reset", false, "Clear the lifetime statistics")
}

func runStats(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger("t2048", io.Discard)
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening game database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	tracker := stats.NewTracker(store, logger)
	if flagStatsReset {
		tracker.Reset()
		fmt.Println("Statistics cleared.")
		return
	}

	s := tracker.Stats()
	fmt.Println("Statistics")
	fmt.Println()
	fmt.Printf("  Games played   %s\n", humanize.Comma(int64(s.GamesPlayed)))
	fmt.Printf("  Games won      %s (%.1f%%)\n", humanize.Comma(int64(s.GamesWon)), s.WinRate)
	fmt.Printf("  Best score     %s\n", humanize.Comma(int64(s.BestScore)))
	fmt.Printf("  Average score  %s\n", humanize.CommafWithDigits(s.AverageScore, 0))
	fmt.Printf("  Total moves    %s\n", humanize.Comma(int64(s.TotalMoves)))
	fmt.Printf("  Time played    %s\n", s.TotalTime.Round(time.Second))

	summaries, err := store.ModeStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving mode summary: %v\n", err)
		os.Exit(1)
	}
	if len(summaries) == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("  %-12s  %-6s  %-6s  %-10s  %-10s  %s\n", "Mode", "Games", "Wins", "High", "Average", "Best tile")
	fmt.Printf("  %-12s  %-6s  %-6s  %-10s  %-10s  %s\n", "----", "-----", "----", "----", "-------", "---------")
	for _, m := range summaries {
		fmt.Printf("  %-12s  %-6d  %-6d  %-10s  %-10s  %d\n",
			m.Mode, m.Games, m.Wins, humanize.Comma(int64(m.HighScore)),
			humanize.CommafWithDigits(m.AverageScore, 0), m.BestTile)
	}
}
