// t2048 is the 2048 sliding-tile puzzle in the terminal.
//
// Usage:
//
//	t2048                   - Play (resumes the saved game)
//	t2048 play              - Same as above
//	t2048 modes             - List game modes
//	t2048 scores [mode]     - Show the leaderboard
//	t2048 stats             - Show lifetime statistics
//	t2048 serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>  - Use a specific config file
//	--db <path>      - Set database path (default: ~/.t2048/t2048.db)
//	--seed <value>   - Set RNG seed for reproducible tile spawns
//	--no-save        - Keep everything in memory
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagNoSave   bool
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - Slide tiles and merge them in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the board in one of four directions; equal tiles that collide merge
into their sum. Your game is saved as you play and resumed on the next run.

Available commands:
  play     - Play (default)
  modes    - List game modes
  scores   - View the leaderboard
  stats    - View lifetime statistics
  serve    - Start SSH server for remote play

Examples:
  t2048
  t2048 play --mode zen --size 5
  t2048 scores timeAttack
  t2048 serve --ssh :2222`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.t2048/t2048.db", "Path to game database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().BoolVar(&flagNoSave, "no-save", false, "Do not read or write the game database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	addPlayFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads and validates the configuration, exiting on failure.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds the logger. Logs go to --log-file when set and to
// fallback otherwise.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func()) {
	w := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		} else {
			w = f
			closeFn = func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level", "level", flagLogLevel)
	}
	return logger, closeFn
}

// dataDir returns the per-user data directory.
func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".t2048"
	}
	return filepath.Join(home, ".t2048")
}
