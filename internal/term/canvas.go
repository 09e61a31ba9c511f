package term

import (
	"cyberfolio/internal/render"

	"github.com/gdamore/tcell/v2"
)

type cell struct {
	ch    rune
	glyph render.Glyph
	set   bool
}

// cellCanvas samples glyphs into terminal cells. When several glyphs land in
// one cell the brightest wins.
type cellCanvas struct {
	cellW, cellH int
	cols, rows   int
	offsetY      float64
	cells        []cell
}

func (c *cellCanvas) resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	c.cells = make([]cell, c.cols*c.rows)
}

// Clear implements render.Canvas.
func (c *cellCanvas) Clear() {
	clear(c.cells)
}

// DrawGlyph implements render.Canvas.
func (c *cellCanvas) DrawGlyph(g render.Glyph) {
	y := g.Y - c.offsetY
	if g.X < 0 || y < 0 {
		return
	}
	col := int(g.X) / c.cellW
	row := int(y) / c.cellH
	if col >= c.cols || row >= c.rows {
		return
	}
	cur := &c.cells[row*c.cols+col]
	if cur.set && cur.glyph.Alpha >= g.Alpha {
		return
	}
	*cur = cell{ch: g.Char, glyph: g, set: true}
}

func (c *cellCanvas) flush(screen tcell.Screen) {
	blank := tcell.StyleDefault.Background(tcell.ColorBlack)
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			cur := c.cells[row*c.cols+col]
			if !cur.set {
				screen.SetContent(col, row, ' ', nil, blank)
				continue
			}
			fg := render.Premultiply(cur.glyph.Fill, cur.glyph.Alpha)
			screen.SetContent(col, row, cur.ch, nil, blank.Foreground(rgb(fg)))
		}
	}
}
