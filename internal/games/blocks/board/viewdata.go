package board

import (
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/grid"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/piece"
)

// ViewData is a read-only snapshot for renderers. Shapes are arrays, so the
// value never aliases board state.
type ViewData struct {
	Active     grid.Shape
	ActiveKind piece.Kind
	X, Y       int

	Next     grid.Shape
	NextKind piece.Kind

	ShadowY int

	Held     grid.Shape
	HeldKind piece.Kind
	HasHeld  bool
}

// Landed reports whether the active piece already rests on its shadow row.
func (v ViewData) Landed() bool {
	return v.Y == v.ShadowY
}
