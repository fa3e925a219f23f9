package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode: endless (default) or blitz.

Controls:
  Mouse click       - Select a tile, click a neighbour to swap
  Arrows/WASD/hjkl  - Move the cursor
  Enter/Space       - Select or swap at the cursor
  ?/i               - Show a hint
  P/Esc             - Pause
  R                 - Restart (after game over)
  B                 - Back (when paused or after game over)
  Q/Ctrl+C          - Quit
  Ctrl+S            - Save a text screenshot

Difficulty options:
  easy   - Longer blitz clock, slower falls
  normal - Config values as written
  hard   - Shorter blitz clock, faster falls

Examples:
  match3 play
  match3 play blitz
  match3 play blitz --difficulty easy
  match3 play --config ./my-match3.yaml
  match3 play --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := resolveMode("")
	if len(args) > 0 {
		gameID = resolveMode(args[0])
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'match3 list' to see available modes)", gameID)
	}

	cfg, err := prepareGames()
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	player := openAudio(cfg.Audio)
	defer player.Close()

	if err := tui.Run(game, store, runtimeConfig(), tui.WithAudio(player), tui.WithLogger(logger)); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
