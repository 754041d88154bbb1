// Package piece defines the seven tetrominoes, the rotator that tracks the
// active rotation state, and the generators that feed pieces to the board.
package piece

import (
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/grid"
)

// Kind identifies a tetromino. Its value is also the cell tag the piece
// leaves in the grid.
type Kind grid.Cell

// The seven standard tetrominoes.
const (
	KindNone Kind = iota
	KindI
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// KindCount is the number of real piece kinds.
const KindCount = 7

// String returns the conventional letter for the kind.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindO:
		return "O"
	case KindS:
		return "S"
	case KindT:
		return "T"
	case KindZ:
		return "Z"
	default:
		return "-"
	}
}

// Cell returns the grid tag for the kind.
func (k Kind) Cell() grid.Cell {
	return grid.Cell(k)
}

// Piece is an immutable tetromino definition: an ordered list of rotation
// states. States are returned by value, so callers always hold copies.
type Piece struct {
	kind   Kind
	states []grid.Shape
}

// Kind returns the piece identity.
func (p Piece) Kind() Kind {
	return p.kind
}

// States returns the number of rotation states.
func (p Piece) States() int {
	return len(p.states)
}

// State returns rotation state i, wrapped into range.
func (p Piece) State(i int) grid.Shape {
	n := len(p.states)
	if n == 0 {
		return grid.Shape{}
	}
	i %= n
	if i < 0 {
		i += n
	}
	return p.states[i]
}

// IsZero reports whether p is the zero Piece (no kind, no states).
func (p Piece) IsZero() bool {
	return p.kind == KindNone || len(p.states) == 0
}

// String returns the kind letter.
func (p Piece) String() string {
	return p.kind.String()
}

// build tags every occupied cell of the templates with the kind.
// Templates use 1 for an occupied cell.
func build(k Kind, templates ...[grid.ShapeSize][grid.ShapeSize]uint8) Piece {
	states := make([]grid.Shape, len(templates))
	for i, t := range templates {
		for row := range t {
			for col := range t[row] {
				if t[row][col] != 0 {
					states[i][row][col] = k.Cell()
				}
			}
		}
	}
	return Piece{kind: k, states: states}
}

var catalog = [KindCount]Piece{
	build(KindI,
		[4][4]uint8{
			{0, 0, 0, 0},
			{1, 1, 1, 1},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
		[4][4]uint8{
			{0, 0, 1, 0},
			{0, 0, 1, 0},
			{0, 0, 1, 0},
			{0, 0, 1, 0},
		},
	),
	build(KindJ,
		[4][4]uint8{
			{1, 0, 0, 0},
			{1, 1, 1, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
		[4][4]uint8{
			{0, 1, 1, 0},
			{0, 1, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 0},
		},
		[4][4]uint8{
			{0, 0, 0, 0},
			{1, 1, 1, 0},
			{0, 0, 1, 0},
			{0, 0, 0, 0},
		},
		[4][4]uint8{
			{0, 1, 0, 0},
			{0, 1, 0, 0},
			{1, 1, 0, 0},
			{0, 0, 0, 0},
		},
	),
	build(KindL,
		[4][4]uint8{
			{0, 0, 1, 0},
			{1, 1, 1, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
		[4][4]uint8{
			{0, 1, 0, 0},
			{0, 1, 0, 0},
			{0, 1, 1, 0},
			{0, 0, 0, 0},
		},
		[4][4]uint8{
			{0, 0, 0, 0},
			{1, 1, 1, 0},
			{1, 0, 0, 0},
			{0, 0, 0, 0},
		},
		[4][4]uint8{
			{1, 1, 0, 0},
			{0, 1, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 0},
		},
	),
	build(KindO,
		[4][4]uint8{
			{0, 0, 0, 0},
			{0, 1, 1, 0},
			{0, 1, 1, 0},
			{0, 0, 0, 0},
		},
	),
	build(KindS,
		[4][4]uint8{
			{0, 1, 1, 0},
			{1, 1, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
		[4][4]uint8{
			{0, 1, 0, 0},
			{0, 1, 1, 0},
			{0, 0, 1, 0},
			{0, 0, 0, 0},
		},
	),
	build(KindT,
		[4][4]uint8{
			{0, 1, 0, 0},
			{1, 1, 1, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
		[4][4]uint8{
			{0, 1, 0, 0},
			{0, 1, 1, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 0},
		},
		[4][4]uint8{
			{0, 0, 0, 0},
			{1, 1, 1, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 0},
		},
		[4][4]uint8{
			{0, 1, 0, 0},
			{1, 1, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 0},
		},
	),
	build(KindZ,
		[4][4]uint8{
			{1, 1, 0, 0},
			{0, 1, 1, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
		[4][4]uint8{
			{0, 0, 1, 0},
			{0, 1, 1, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 0},
		},
	),
}

// All returns the seven pieces in kind order (I, J, L, O, S, T, Z).
func All() []Piece {
	out := make([]Piece, KindCount)
	copy(out, catalog[:])
	return out
}

// ByKind returns the catalog piece for k.
func ByKind(k Kind) (Piece, error) {
	if k < KindI || k > KindZ {
		return Piece{}, fmt.Errorf("piece: unknown kind %d", k)
	}
	return catalog[k-1], nil
}

// MustKind is ByKind for kinds known at compile time.
func MustKind(k Kind) Piece {
	p, err := ByKind(k)
	if err != nil {
		panic(err)
	}
	return p
}
