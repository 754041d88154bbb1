package blocks

import (
	"time"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/piece"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/rules"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Mode       string
	Score      int
	Level      int
	Lines      int
	Pieces     int
	Delay      time.Duration
	ActiveKind piece.Kind
	X          int
	Y          int
	ShadowY    int
	NextKind   piece.Kind
	HeldKind   piece.Kind
	Locked     int // Occupied cells in the logical well
	Histogram  [rules.MaxClearSize + 1]int
	State      GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := g.ctrl.Snapshot()

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case snap.GameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		Score:      snap.Score,
		Level:      snap.Level,
		Lines:      snap.Lines,
		Pieces:     snap.Pieces,
		Delay:      snap.Delay,
		ActiveKind: snap.View.ActiveKind,
		X:          snap.View.X,
		Y:          snap.View.Y,
		ShadowY:    snap.View.ShadowY,
		NextKind:   snap.View.NextKind,
		HeldKind:   snap.View.HeldKind,
		Locked:     g.board.Logical().Count(),
		Histogram:  snap.Histogram,
		State:      state,
	}
}
