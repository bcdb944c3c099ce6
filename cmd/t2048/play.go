package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/modes"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/stats"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/t2048"
)

var (
	flagSize   int
	flagMode   string
	flagTheme  string
	flagPlayer string
	flagPick   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048",
	Long: `Start playing. The saved game is resumed when it matches the board size.

Controls:
  Arrows/WASD/HJKL - Slide tiles
  U / Ctrl+Z       - Undo
  Y / Ctrl+R       - Redo
  R                - New game
  M                - Next mode
  + / -            - Bigger / smaller board
  T                - Next theme
  Tab              - Leaderboard
  Ctrl+S           - Save a screenshot
  ?                - All keys
  Q / Esc          - Quit

Examples:
  t2048 play
  t2048 play --mode timeAttack
  t2048 play --pick
  t2048 play --size 6 --theme neon
  t2048 play --seed 42 --no-save`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagSize, "size", 0, fmt.Sprintf("Board size (%d-%d)", t2048.MinBoardSize, t2048.MaxBoardSize))
	cmd.Flags().StringVar(&flagMode, "mode", "", "Game mode (see 't2048 modes')")
	cmd.Flags().StringVar(&flagTheme, "theme", "", "Color theme: default, dark, neon, minimal")
	cmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Name on the leaderboard")
	cmd.Flags().BoolVar(&flagPick, "pick", false, "Choose the mode from a menu")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	reg := cfg.Registry()

	logger, closeLog := newLogger("t2048", io.Discard)
	defer closeLog()

	// Open storage; without it the game still works but nothing is kept
	var (
		kv          storage.KV = storage.NewMemory()
		leaderboard tui.Leaderboard
		background  *storage.Background
		store       *storage.Store
	)
	if !flagNoSave {
		var err error
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open game database: %v\n", err)
		} else {
			background = storage.NewBackground(store, logger)
			kv = background
			leaderboard = store
		}
	}

	// fail reports a fatal error once storage is open, flushing it first
	fail := func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format, args...)
		closeStorage(background, store, logger)
		os.Exit(1)
	}

	settings := config.LoadSettings(kv, cfg.Settings())
	if flagSize != 0 {
		if !t2048.ValidBoardSize(flagSize) {
			fail("Error: board size must be %d-%d\n", t2048.MinBoardSize, t2048.MaxBoardSize)
		}
		settings.BoardSize = flagSize
	}
	if flagTheme != "" {
		if _, ok := tui.LookupPalette(flagTheme); !ok {
			fail("Error: unknown theme %q\n", flagTheme)
		}
		settings.Theme = flagTheme
	}

	mode := modes.ID(cfg.DefaultMode)
	if flagMode != "" {
		m, err := reg.Resolve(flagMode)
		if err != nil {
			fail("Error: %v\nRun 't2048 modes' to see available modes.\n", err)
		}
		mode = m.ID
	}
	explicitMode := flagMode != ""

	if flagPick {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		picked, ok, err := tui.RunModeMenu(reg, mode, width, height)
		if err != nil {
			fail("Error: %v\n", err)
		}
		if !ok {
			closeStorage(background, store, logger)
			return
		}
		mode, explicitMode = picked, true
	}

	opts := session.Options{
		BoardSize:         settings.BoardSize,
		Mode:              mode,
		Modes:             reg,
		HistorySize:       cfg.History.MaxSize,
		InactivityTimeout: cfg.Timer.InactivityTimeout,
		FourProbability:   cfg.Board.FourProbability,
		DisableAutoSave:   !settings.AutoSave,
		Storage:           kv,
		Logger:            logger,
	}
	if flagSeed != 0 {
		opts.Random = rand.New(rand.NewSource(flagSeed))
	}

	sess, err := session.New(opts)
	if err != nil {
		fail("Error: %v\n", err)
	}
	// An explicit mode starts a new game unless the saved one already uses it
	var startMode modes.ID
	if explicitMode {
		startMode = mode
	}

	runErr := tui.Run(tui.Options{
		Session:       sess,
		StartMode:     startMode,
		Stats:         stats.NewTracker(kv, logger),
		Leaderboard:   leaderboard,
		Modes:         reg,
		Settings:      settings,
		SettingsKV:    kv,
		Player:        flagPlayer,
		TickInterval:  cfg.Timer.TickInterval,
		ScreenshotDir: filepath.Join(dataDir(), "screenshots"),
		Logger:        logger,
	})

	closeStorage(background, store, logger)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// closeStorage flushes pending saves and closes the database.
func closeStorage(background *storage.Background, store *storage.Store, logger *log.Logger) {
	if background != nil {
		if err := background.Close(); err != nil {
			logger.Warn("flush saves", "err", err)
		}
	}
	if store != nil {
		store.Close()
	}
}
