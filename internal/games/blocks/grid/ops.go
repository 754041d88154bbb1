package grid

// PointsPerClear is the base of the quadratic line-clear bonus.
const PointsPerClear = 50

// ClearRow is the outcome of removing full rows from a grid.
type ClearRow struct {
	// Grid is the grid after full rows were removed and the rest shifted down.
	Grid Grid
	// ScoreBonus is PointsPerClear * n * n for n removed rows.
	ScoreBonus int
	// Cleared lists the removed row indices as they were before the shift,
	// in ascending order.
	Cleared []int
}

// LinesRemoved returns how many rows were cleared.
func (c ClearRow) LinesRemoved() int {
	return len(c.Cleared)
}

// Bonus returns the score bonus for clearing n rows at once.
func Bonus(n int) int {
	return PointsPerClear * n * n
}

// Intersect reports whether placing shape with its top-left corner at (x, y)
// would leave the grid or overlap an occupied cell. Only non-empty shape
// cells are tested, so the empty margin of a 4x4 box may hang outside.
func Intersect(g Grid, shape Shape, x, y int) bool {
	for row := 0; row < ShapeSize; row++ {
		for col := 0; col < ShapeSize; col++ {
			if shape[row][col] == Empty {
				continue
			}
			tx, ty := x+col, y+row
			if !g.InBounds(tx, ty) || g.At(tx, ty) != Empty {
				return true
			}
		}
	}
	return false
}

// Merge returns a copy of g with every non-empty shape cell written at its
// absolute position. Cells that fall outside the grid are dropped.
func Merge(g Grid, shape Shape, x, y int) Grid {
	out := g.Clone()
	for row := 0; row < ShapeSize; row++ {
		for col := 0; col < ShapeSize; col++ {
			c := shape[row][col]
			if c == Empty {
				continue
			}
			tx, ty := x+col, y+row
			if out.InBounds(tx, ty) {
				out.set(tx, ty, c)
			}
		}
	}
	return out
}

// IsRowFull reports whether every cell in row y is occupied.
func IsRowFull(g Grid, y int) bool {
	if y < 0 || y >= g.height || g.width == 0 {
		return false
	}
	for x := 0; x < g.width; x++ {
		if g.At(x, y) == Empty {
			return false
		}
	}
	return true
}

// CheckRemoving removes every full row. Remaining rows keep their relative
// order and are packed against the bottom; the rows above them are empty.
func CheckRemoving(g Grid) ClearRow {
	var cleared []int
	kept := make([]int, 0, g.height)
	for y := 0; y < g.height; y++ {
		if IsRowFull(g, y) {
			cleared = append(cleared, y)
		} else {
			kept = append(kept, y)
		}
	}

	out := g.Blank()
	target := g.height - 1
	for i := len(kept) - 1; i >= 0; i-- {
		src := kept[i]
		copy(out.cells[target*g.width:(target+1)*g.width], g.cells[src*g.width:(src+1)*g.width])
		target--
	}

	return ClearRow{
		Grid:       out,
		ScoreBonus: Bonus(len(cleared)),
		Cleared:    cleared,
	}
}
