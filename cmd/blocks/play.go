package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  Left/Right, A/D  - Move
  Up, W, X         - Rotate
  Down, S          - Soft drop
  Space            - Hard drop
  C                - Hold
  P                - Pause
  R                - Restart (after game over)
  Ctrl+S           - Screenshot to ~/.blocks/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower first level, progresses with score
  normal - Configured speed, progresses with score
  hard   - Faster first level, progresses with score
  fixed  - No progression, stays at the first level speed

Examples:
  blocks play blocks
  blocks play blocks --difficulty easy
  blocks play blocks_challenge --difficulty hard
  blocks play blocks --config ./my-blocks.yaml --no-ghost`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !a.games.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blocks list' to see available modes.")
		os.Exit(1)
	}

	a.openLog()
	a.openStore()

	game, err := a.games.Create(gameID, a.env())
	if err != nil {
		a.Close()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	a.logger.Info("play", "game", gameID, "difficulty", a.preset)
	_, runErr := tui.Run(game, a.runtimeConfig(), a.logger)

	// Close store before potential exit
	a.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
