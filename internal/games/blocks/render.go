package blocks

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/board"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/grid"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/piece"
)

// Layout constants. Each well cell is two characters wide so blocks look
// square in a terminal.
const (
	cellW      = 2
	hudHeight  = 1
	panelGap   = 2
	panelWidth = 16
)

var kindColors = map[piece.Kind]core.Color{
	piece.KindI: core.ColorCyan,
	piece.KindJ: core.ColorBlue,
	piece.KindL: core.ColorOrange,
	piece.KindO: core.ColorYellow,
	piece.KindS: core.ColorGreen,
	piece.KindT: core.ColorMagenta,
	piece.KindZ: core.ColorRed,
}

func cellColor(c grid.Cell) core.Color {
	if color, ok := kindColors[piece.Kind(c)]; ok {
		return color
	}
	return core.ColorWhite
}

func (g *Game) requiredWidth() int {
	return g.cfg.Board.Width*cellW + 2 + panelGap + panelWidth
}

func (g *Game) requiredHeight() int {
	return hudHeight + g.cfg.Board.Height + 2
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < g.requiredWidth() || h < g.requiredHeight()
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.ctrl == nil {
		return
	}

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d", g.requiredWidth(), g.requiredHeight()))
		return
	}

	snap := g.ctrl.Snapshot()
	wellX := (dst.Width() - g.requiredWidth()) / 2
	wellY := hudHeight

	g.renderHUD(dst, snap.Score, snap.Level)
	dst.DrawBoxColored(core.NewRect(wellX, wellY, g.cfg.Board.Width*cellW+2, g.cfg.Board.Height+2), core.ColorGray)

	originX, originY := wellX+1, wellY+1
	g.renderMatrix(dst, snap.Matrix, originX, originY)
	if !snap.GameOver {
		if g.cfg.Board.Ghost {
			g.renderShape(dst, snap.View.Active, originX, originY, snap.View.X, snap.View.ShadowY, '░')
		}
		g.renderShape(dst, snap.View.Active, originX, originY, snap.View.X, snap.View.Y, '█')
	}

	g.renderPanel(dst, wellX+g.cfg.Board.Width*cellW+2+panelGap, wellY, snap.View, snap.Lines)

	switch {
	case snap.GameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  R to restart", snap.Score))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status line.
func (g *Game) renderHUD(dst *core.Screen, score, level int) {
	hud := fmt.Sprintf(" %s  Score: %d  Level: %d", g.Title(), score, level)
	dst.DrawText(0, 0, hud)
}

// renderMatrix draws locked cells; empty cells get a faint dot.
func (g *Game) renderMatrix(dst *core.Screen, m grid.Grid, originX, originY int) {
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			sx := originX + x*cellW
			sy := originY + y
			c := m.At(x, y)
			if c == grid.Empty {
				dst.SetColored(sx+1, sy, '·', core.ColorGray)
				continue
			}
			color := cellColor(c)
			dst.SetColored(sx, sy, '█', color)
			dst.SetColored(sx+1, sy, '█', color)
		}
	}
}

// renderShape draws a piece anchored at well coordinates (ax, ay). Rows
// above the well are skipped.
func (g *Game) renderShape(dst *core.Screen, s grid.Shape, originX, originY, ax, ay int, r rune) {
	for _, cell := range s.Cells() {
		col, row := cell[0], cell[1]
		wx, wy := ax+col, ay+row
		if wx < 0 || wx >= g.cfg.Board.Width || wy < 0 || wy >= g.cfg.Board.Height {
			continue
		}
		color := cellColor(s[row][col])
		sx := originX + wx*cellW
		sy := originY + wy
		dst.SetColored(sx, sy, r, color)
		dst.SetColored(sx+1, sy, r, color)
	}
}

// renderPanel draws the side panel: stats, next and held pieces, the
// visibility state and recent messages.
func (g *Game) renderPanel(dst *core.Screen, x, y int, view board.ViewData, lines int) {
	row := y
	dst.DrawTextColored(x, row, "LINES", core.ColorGray)
	dst.DrawText(x+7, row, fmt.Sprintf("%d", lines))
	row += 2

	dst.DrawTextColored(x, row, "NEXT", core.ColorGray)
	row++
	g.renderPreview(dst, view.Next, x, row)
	row += 3

	dst.DrawTextColored(x, row, "HOLD", core.ColorGray)
	row++
	if view.HasHeld {
		g.renderPreview(dst, view.Held, x, row)
	} else {
		dst.DrawTextColored(x, row, "  --", core.ColorGray)
	}
	row += 3

	if o, ok := g.board.Visibility().(*board.Obstructed); ok {
		label, color := "HIDDEN", core.ColorGray
		if o.State() == board.Revealed {
			label, color = "VISIBLE", core.ColorBrightGreen
		}
		dst.DrawTextColored(x, row, label, color)
		row += 2
	}

	for _, msg := range g.notes.Visible() {
		if row >= dst.Height() {
			break
		}
		dst.DrawTextColored(x, row, msg, core.ColorBrightYellow)
		row++
	}
}

// renderPreview draws the occupied rows of a 4x4 shape.
func (g *Game) renderPreview(dst *core.Screen, s grid.Shape, x, y int) {
	row := 0
	for r := 0; r < grid.ShapeSize && row < 2; r++ {
		empty := true
		for c := 0; c < grid.ShapeSize; c++ {
			if s[r][c] != grid.Empty {
				empty = false
				color := cellColor(s[r][c])
				dst.SetColored(x+c*cellW, y+row, '█', color)
				dst.SetColored(x+c*cellW+1, y+row, '█', color)
			}
		}
		if !empty {
			row++
		}
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2))
	boxW := maxLen + 4
	boxH := 5
	box := core.CenteredRect(boxW, boxH, w, h)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
