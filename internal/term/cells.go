// Package term is a terminal frontend for the scene navigator built on
// tcell.
package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is a single character cell.
type Cell struct {
	Glyph rune
	Style tcell.Style
}

// CellBuffer is a 2D grid of character cells composed off-screen and then
// flushed to a tcell screen in one pass.
type CellBuffer struct {
	Cols  int
	Rows  int
	Cells []Cell
	bg    tcell.Style
}

// NewCellBuffer creates a buffer of blank cells in the base style.
func NewCellBuffer(cols, rows int, base tcell.Style) *CellBuffer {
	b := &CellBuffer{bg: base}
	b.Resize(cols, rows)
	return b
}

// Resize reallocates the buffer when the terminal size changes.
func (b *CellBuffer) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == b.Cols && rows == b.Rows {
		return
	}
	b.Cols, b.Rows = cols, rows
	b.Cells = make([]Cell, cols*rows)
	b.Clear()
}

// Set writes a single cell at (x, y). Out-of-bounds writes are ignored.
func (b *CellBuffer) Set(x, y int, glyph rune, style tcell.Style) {
	if x >= 0 && x < b.Cols && y >= 0 && y < b.Rows {
		b.Cells[y*b.Cols+x] = Cell{Glyph: glyph, Style: style}
	}
}

// Get reads a single cell at (x, y). Out-of-bounds reads return a blank cell.
func (b *CellBuffer) Get(x, y int) Cell {
	if x >= 0 && x < b.Cols && y >= 0 && y < b.Rows {
		return b.Cells[y*b.Cols+x]
	}
	return Cell{Glyph: ' ', Style: b.bg}
}

// Clear resets all cells to blank.
func (b *CellBuffer) Clear() {
	for i := range b.Cells {
		b.Cells[i] = Cell{Glyph: ' ', Style: b.bg}
	}
}

// WriteString writes s starting at (x, y) and returns the number of columns
// used. Wide runes take two cells; the second holds a zero glyph.
func (b *CellBuffer) WriteString(x, y int, s string, style tcell.Style) int {
	col := 0
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		b.Set(x+col, y, ch, style)
		if w == 2 {
			b.Set(x+col+1, y, 0, style)
		}
		col += w
	}
	return col
}

// Row returns the glyphs of row y as a string, skipping wide-rune
// continuation cells.
func (b *CellBuffer) Row(y int) string {
	if y < 0 || y >= b.Rows {
		return ""
	}
	rs := make([]rune, 0, b.Cols)
	for _, c := range b.Cells[y*b.Cols : (y+1)*b.Cols] {
		if c.Glyph != 0 {
			rs = append(rs, c.Glyph)
		}
	}
	return string(rs)
}

// Flush copies the buffer to screen and shows it.
func (b *CellBuffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			c := b.Cells[y*b.Cols+x]
			if c.Glyph == 0 {
				continue
			}
			screen.SetContent(x, y, c.Glyph, nil, c.Style)
		}
	}
	screen.Show()
}
