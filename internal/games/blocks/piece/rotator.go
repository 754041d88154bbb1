package piece

import "github.com/vovakirdan/tui-blocks/internal/games/blocks/grid"

// Rotator holds the active piece and its rotation index. Next computes the
// following state without committing it; the board validates the candidate
// against the grid and then calls SetIndex.
type Rotator struct {
	piece Piece
	index int
}

// SetPiece replaces the active piece and resets the rotation to state 0.
func (r *Rotator) SetPiece(p Piece) {
	r.piece = p
	r.index = 0
}

// Piece returns the active piece.
func (r *Rotator) Piece() Piece {
	return r.piece
}

// Index returns the current rotation index.
func (r *Rotator) Index() int {
	return r.index
}

// Current returns the shape of the current rotation state.
func (r *Rotator) Current() grid.Shape {
	return r.piece.State(r.index)
}

// Next returns the shape and index of the following rotation state.
// The rotator itself is left unchanged.
func (r *Rotator) Next() (grid.Shape, int) {
	n := r.piece.States()
	if n == 0 {
		return grid.Shape{}, 0
	}
	next := (r.index + 1) % n
	return r.piece.State(next), next
}

// SetIndex commits a rotation index, wrapped into range.
func (r *Rotator) SetIndex(i int) {
	n := r.piece.States()
	if n == 0 {
		r.index = 0
		return
	}
	i %= n
	if i < 0 {
		i += n
	}
	r.index = i
}
