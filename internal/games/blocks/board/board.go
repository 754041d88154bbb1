// Package board implements the falling-block state machine: the locked-cell
// grid, the active piece and its anchor, spawning, movement, rotation, hold,
// hard drop and ghost projection.
//
// One Board type serves every game mode. What the player sees of the locked
// cells is delegated to a Visibility policy that runs after each merge and
// row clear.
package board

import (
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/grid"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/piece"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/progress"
)

// Point is an anchor position: the top-left corner of the piece's 4x4 box.
type Point struct {
	X, Y int
}

// Board is not safe for concurrent use. Callers serialize commands.
type Board struct {
	width  int
	height int

	logical grid.Grid
	gen     piece.Generator
	rotator piece.Rotator
	offset  Point
	score   progress.Score
	vis     Visibility

	held    piece.Piece
	hasHeld bool
	canHold bool
}

// New creates a board of the given size. A nil vis means AlwaysVisible.
// No piece is active until Spawn or NewGame is called.
func New(height, width int, gen piece.Generator, vis Visibility) *Board {
	if vis == nil {
		vis = AlwaysVisible{}
	}
	b := &Board{
		width:   width,
		height:  height,
		logical: grid.New(height, width),
		gen:     gen,
		vis:     vis,
		canHold: true,
	}
	vis.Reset(b.logical)
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// SpawnPoint returns the anchor new pieces start at.
func (b *Board) SpawnPoint() Point {
	return Point{X: b.width/2 - 2, Y: 0}
}

// Offset returns the anchor of the active piece.
func (b *Board) Offset() Point {
	return b.offset
}

// Active returns the active piece and its rotation index.
func (b *Board) Active() (piece.Piece, int) {
	return b.rotator.Piece(), b.rotator.Index()
}

// CanHold reports whether Hold is available for the active piece.
func (b *Board) CanHold() bool {
	return b.canHold
}

// MoveDown moves the active piece one row down if the target is free.
func (b *Board) MoveDown() bool {
	return b.move(0, 1)
}

// MoveLeft moves the active piece one column left if the target is free.
func (b *Board) MoveLeft() bool {
	return b.move(-1, 0)
}

// MoveRight moves the active piece one column right if the target is free.
func (b *Board) MoveRight() bool {
	return b.move(1, 0)
}

// HasActive reports whether a piece has been spawned.
func (b *Board) HasActive() bool {
	return !b.rotator.Current().IsEmpty()
}

func (b *Board) move(dx, dy int) bool {
	if !b.HasActive() {
		return false
	}
	next := Point{X: b.offset.X + dx, Y: b.offset.Y + dy}
	if grid.Intersect(b.logical, b.rotator.Current(), next.X, next.Y) {
		return false
	}
	b.offset = next
	return true
}

// Rotate advances the active piece to its next rotation state at the
// current anchor. There is no wall kick: a colliding rotation is rejected.
func (b *Board) Rotate() bool {
	if !b.HasActive() {
		return false
	}
	shape, idx := b.rotator.Next()
	if grid.Intersect(b.logical, shape, b.offset.X, b.offset.Y) {
		return false
	}
	b.rotator.SetIndex(idx)
	return true
}

// Spawn takes the next piece from the generator and places it at the spawn
// point with rotation 0, re-enabling hold. It returns true when the spawn
// position is already occupied, which means the game is over. The grid is
// never modified by a blocked spawn.
func (b *Board) Spawn() bool {
	b.rotator.SetPiece(b.gen.Take())
	b.offset = b.SpawnPoint()
	b.canHold = true
	return b.Blocked()
}

// Blocked reports whether the active piece overlaps locked cells. This only
// happens after a spawn into a full well.
func (b *Board) Blocked() bool {
	return grid.Intersect(b.logical, b.rotator.Current(), b.offset.X, b.offset.Y)
}

// Hold sets the active piece aside, once per spawned piece. The first hold
// stores the piece and spawns the next one from the queue; later holds swap
// the active and held pieces, restoring the held one at the spawn point in
// rotation 0. It reports whether anything happened.
func (b *Board) Hold() bool {
	if !b.canHold || !b.HasActive() {
		return false
	}
	current := b.rotator.Piece()
	if !b.hasHeld {
		b.held = current
		b.hasHeld = true
		b.Spawn()
	} else {
		restored := b.held
		b.held = current
		b.rotator.SetPiece(restored)
		b.offset = b.SpawnPoint()
	}
	b.canHold = false
	return true
}

// Held returns the held piece, if any.
func (b *Board) Held() (piece.Piece, bool) {
	return b.held, b.hasHeld
}

// HardDrop moves the active piece down until it rests and returns the number
// of rows it fell.
func (b *Board) HardDrop() int {
	rows := 0
	for b.MoveDown() {
		rows++
	}
	return rows
}

// ShadowY returns the row the active piece would land on if dropped now.
// Without an active piece it is the anchor row. Board state is not modified.
func (b *Board) ShadowY() int {
	shape := b.rotator.Current()
	x, y := b.offset.X, b.offset.Y
	if shape.IsEmpty() {
		return y
	}
	for !grid.Intersect(b.logical, shape, x, y+1) {
		y++
	}
	return y
}

// Merge locks the active piece into the logical grid.
func (b *Board) Merge() {
	b.logical = grid.Merge(b.logical, b.rotator.Current(), b.offset.X, b.offset.Y)
	b.vis.Sync(b.logical)
}

// ClearRows removes full rows from the logical grid.
func (b *Board) ClearRows() grid.ClearRow {
	result := grid.CheckRemoving(b.logical)
	b.logical = result.Grid
	b.vis.Sync(b.logical)
	return result
}

// Matrix returns the grid to display, as decided by the visibility policy.
func (b *Board) Matrix() grid.Grid {
	return b.vis.View(b.logical)
}

// Logical returns the grid used for collisions, regardless of visibility.
func (b *Board) Logical() grid.Grid {
	return b.logical
}

// Score returns the board's score counter.
func (b *Board) Score() *progress.Score {
	return &b.score
}

// Countdown forwards to the visibility policy when it has one.
func (b *Board) Countdown() (string, bool) {
	if c, ok := b.vis.(Countdowner); ok {
		return c.Countdown()
	}
	return "", false
}

// Visibility returns the active visibility policy.
func (b *Board) Visibility() Visibility {
	return b.vis
}

// NewGame clears the grid, score and held piece, resets the visibility
// policy and spawns the first piece. It returns the spawn result.
func (b *Board) NewGame() bool {
	b.logical = grid.New(b.height, b.width)
	b.score.Reset()
	b.held = piece.Piece{}
	b.hasHeld = false
	b.vis.Reset(b.logical)
	return b.Spawn()
}

// ViewData returns a snapshot of the active, next, ghost and held pieces.
func (b *Board) ViewData() ViewData {
	next := b.gen.Peek()
	v := ViewData{
		Active:     b.rotator.Current(),
		ActiveKind: b.rotator.Piece().Kind(),
		X:          b.offset.X,
		Y:          b.offset.Y,
		Next:       next.State(0),
		NextKind:   next.Kind(),
		ShadowY:    b.ShadowY(),
	}
	if b.hasHeld {
		v.Held = b.held.State(0)
		v.HeldKind = b.held.Kind()
		v.HasHeld = true
	}
	return v
}
