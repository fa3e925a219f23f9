// match3 is a terminal match-3 puzzle game.
//
// Usage:
//
//	match3 play [mode]       - Play a mode (default: endless)
//	match3 menu              - Pick modes interactively
//	match3 list              - List available modes
//	match3 scores [mode]     - Show high scores for a mode
//	match3 serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible boards
//	--db <path>        - Set database path (default: ~/.match3/scores.db)
//	--mute             - Disable sound
//	--log-file <path>  - Write logs to a file
//	--debug            - Enable debug logging
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/audio"
	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagMute    bool
	flagLogFile string
	flagDebug   bool

	// Game flags shared by play and menu
	flagConfig     string
	flagDifficulty string
)

// logger is built before any subcommand runs.
var logger = log.New(io.Discard)

// logCloser closes the --log-file target, if any.
var logCloser io.Closer

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - swap tiles, line up three, watch them fall",
	Long: `Match-3 is a tile-matching puzzle for the terminal.

Swap two adjacent tiles to line up three or more of a kind in a row or
column. Matched tiles vanish, the tiles above fall into the gaps and new
tiles drop in from the top, which can set off further matches.

Available commands:
  play     - Play a mode directly
  menu     - Interactive mode picker with scoreboard
  list     - Show all available modes
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  match3 play
  match3 play blitz --difficulty hard
  match3 menu
  match3 serve --ssh :2222
  match3 scores blitz`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setupLogger()
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.match3/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound effects and music")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setupLogger points the logger at --log-file. The TUI owns the terminal,
// so without a file logs are discarded.
func setupLogger() error {
	var w io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		logCloser = f
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "match3",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return nil
}

// resolveMode maps a mode argument to a registered game ID.
func resolveMode(arg string) string {
	switch arg {
	case "", "endless":
		return "match3"
	case "blitz":
		return "match3_blitz"
	}
	return arg
}

// prepareGames applies --config and --difficulty and returns the loaded
// config so callers can read its audio section.
func prepareGames() (config.Match3Config, error) {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return config.Match3Config{}, err
	}
	cfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("cannot load config: %w", err)
	}

	match3.SetConfigPath(flagConfig)
	match3.SetDifficultyPreset(flagDifficulty)
	return cfg, nil
}

// openStore opens the scores database. Games still run without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// openAudio starts the speaker, falling back to silence on failure.
func openAudio(cfg config.AudioConfig) audio.Player {
	if flagMute {
		return audio.Nop{}
	}
	p, err := audio.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: audio unavailable: %v\n", err)
		logger.Warn("audio unavailable", "err", err)
		return audio.Nop{}
	}
	return p
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Player:   localPlayer(),
	}
}

// localPlayer is the name local scores are recorded under.
func localPlayer() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "player"
}
