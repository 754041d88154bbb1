// Package grid provides the immutable cell matrix used by the blocks game
// and the pure operations on it: collision testing, merging a shape into the
// grid, and full-row removal.
//
// A Grid never changes after construction. Every operation that would alter
// cells returns a new Grid, so a Grid can be shared freely between the board
// and any snapshot handed to a renderer.
package grid

import "strings"

// Cell is a type tag: Empty or one of the seven piece kinds.
type Cell uint8

// Empty marks an unoccupied cell.
const Empty Cell = 0

// ShapeSize is the edge length of a piece bounding box.
const ShapeSize = 4

// Shape is one rotation state of a piece inside its 4x4 bounding box.
// It is an array, so assignment copies it.
type Shape [ShapeSize][ShapeSize]Cell

// Grid is a fixed-size, read-only matrix of cells addressed as (x, y)
// with y growing downward.
type Grid struct {
	width  int
	height int
	cells  []Cell // row-major, len == width*height
}

// New returns an empty grid with the given dimensions.
func New(height, width int) Grid {
	if height < 0 {
		height = 0
	}
	if width < 0 {
		width = 0
	}
	return Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// FromRows builds a grid from row slices. All rows are truncated or padded
// to the width of the first row.
func FromRows(rows [][]Cell) Grid {
	if len(rows) == 0 {
		return New(0, 0)
	}
	g := New(len(rows), len(rows[0]))
	for y, row := range rows {
		copy(g.cells[y*g.width:(y+1)*g.width], row)
	}
	return g
}

// Width returns the number of columns.
func (g Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g Grid) Height() int {
	return g.height
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// At returns the cell at (x, y). Out-of-bounds coordinates read as Empty.
func (g Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.cells[y*g.width+x]
}

// Row returns a copy of row y, or nil when y is out of range.
func (g Grid) Row(y int) []Cell {
	if y < 0 || y >= g.height {
		return nil
	}
	row := make([]Cell, g.width)
	copy(row, g.cells[y*g.width:(y+1)*g.width])
	return row
}

// Rows returns a deep copy of the grid as row slices.
func (g Grid) Rows() [][]Cell {
	rows := make([][]Cell, g.height)
	for y := range rows {
		rows[y] = g.Row(y)
	}
	return rows
}

// Clone returns a grid with its own backing storage.
func (g Grid) Clone() Grid {
	c := Grid{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Blank returns an all-empty grid with the same dimensions.
func (g Grid) Blank() Grid {
	return New(g.height, g.width)
}

// IsEmpty reports whether no cell is occupied.
func (g Grid) IsEmpty() bool {
	for _, c := range g.cells {
		if c != Empty {
			return false
		}
	}
	return true
}

// Count returns the number of occupied cells.
func (g Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c != Empty {
			n++
		}
	}
	return n
}

// Equal reports whether both grids have the same dimensions and cells.
func (g Grid) Equal(other Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid as rows of digits, '.' for empty cells.
func (g Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.width; x++ {
			c := g.cells[y*g.width+x]
			if c == Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('0' + byte(c))
			}
		}
	}
	return sb.String()
}

// set writes a cell in place. Only used on grids that have not escaped yet.
func (g Grid) set(x, y int, c Cell) {
	g.cells[y*g.width+x] = c
}

// Cells returns the occupied cells of a shape as (col, row) pairs.
func (s Shape) Cells() [][2]int {
	var out [][2]int
	for row := 0; row < ShapeSize; row++ {
		for col := 0; col < ShapeSize; col++ {
			if s[row][col] != Empty {
				out = append(out, [2]int{col, row})
			}
		}
	}
	return out
}

// IsEmpty reports whether the shape has no occupied cells.
func (s Shape) IsEmpty() bool {
	return s == Shape{}
}
