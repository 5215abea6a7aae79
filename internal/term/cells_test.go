package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestCellBufferSetGet(t *testing.T) {
	b := NewCellBuffer(4, 2, tcell.StyleDefault)
	b.Set(1, 1, 'x', tcell.StyleDefault)
	if got := b.Get(1, 1).Glyph; got != 'x' {
		t.Errorf("Expected 'x', got %q", got)
	}
	b.Set(9, 9, 'y', tcell.StyleDefault)
	if got := b.Get(9, 9).Glyph; got != ' ' {
		t.Errorf("Expected blank for out-of-bounds read, got %q", got)
	}
	b.Clear()
	if got := b.Row(1); got != "    " {
		t.Errorf("Expected cleared row, got %q", got)
	}
}

func TestCellBufferWriteString(t *testing.T) {
	b := NewCellBuffer(8, 1, tcell.StyleDefault)
	if n := b.WriteString(0, 0, "ab", tcell.StyleDefault); n != 2 {
		t.Errorf("Expected 2 columns, got %d", n)
	}
	if n := b.WriteString(2, 0, "日", tcell.StyleDefault); n != 2 {
		t.Errorf("Expected wide rune to take 2 columns, got %d", n)
	}
	if b.Get(3, 0).Glyph != 0 {
		t.Error("Expected continuation cell after wide rune")
	}
	if got := b.Row(0); got != "ab日    " {
		t.Errorf("Expected %q, got %q", "ab日    ", got)
	}
	// Clipped at the right edge.
	b.WriteString(6, 0, "xyz", tcell.StyleDefault)
	if got := b.Row(0); got != "ab日  xy" {
		t.Errorf("Expected clipped write, got %q", got)
	}
}

func TestCellBufferResize(t *testing.T) {
	b := NewCellBuffer(2, 2, tcell.StyleDefault)
	b.Set(0, 0, 'x', tcell.StyleDefault)
	b.Resize(2, 2)
	if b.Get(0, 0).Glyph != 'x' {
		t.Error("Expected same-size resize to keep contents")
	}
	b.Resize(3, 1)
	if b.Cols != 3 || b.Rows != 1 || len(b.Cells) != 3 {
		t.Errorf("Expected 3x1 buffer, got %dx%d", b.Cols, b.Rows)
	}
	b.Resize(-1, 5)
	if b.Cols != 0 || len(b.Cells) != 0 {
		t.Errorf("Expected negative size to clamp to 0, got %d", b.Cols)
	}
}
