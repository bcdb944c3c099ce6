package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/modes"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresPlain bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the leaderboard",
	Long: `Display the best results, for one mode or for every mode.

On a terminal the interactive scoreboard opens; use --plain to print a table.

Examples:
  t2048 scores
  t2048 scores classic --plain
  t2048 scores zen --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to print")
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print a plain table even on a terminal")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the results of the mode (all modes if none given)")
}

func runScores(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	reg := cfg.Registry()

	mode := ""
	if len(args) == 1 {
		m, err := reg.Resolve(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 't2048 modes' to see available modes.")
			os.Exit(1)
		}
		mode = string(m.ID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening game database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearResults(mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Results cleared.")
		return
	}

	if !flagScoresPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, reg, modes.ID(mode), width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printScores(store, mode)
}

func printScores(store *storage.Store, mode string) {
	results, err := store.TopResults(mode, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	title := mode
	if title == "" {
		title = "all modes"
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 't2048' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-10s  %-8s  %-6s  %-5s  %-6s  %s\n",
		"Rank", "Player", "Mode", "Score", "Tile", "Board", "Moves", "When")
	fmt.Printf("  %-4s  %-12s  %-10s  %-8s  %-6s  %-5s  %-6s  %s\n",
		"----", "------", "----", "-----", "----", "-----", "-----", "----")

	for i, r := range results {
		fmt.Printf("  %-4d  %-12s  %-10s  %-8s  %-6d  %-5s  %-6d  %s\n",
			i+1, r.Player, r.Mode, humanize.Comma(int64(r.Score)), r.MaxTile,
			fmt.Sprintf("%dx%d", r.BoardSize, r.BoardSize), r.Moves, humanize.Time(r.CreatedAt))
	}

	fmt.Println()
	if best, err := store.HighScore(mode); err == nil {
		fmt.Printf("Best: %s\n", humanize.Comma(int64(best)))
	}
}
