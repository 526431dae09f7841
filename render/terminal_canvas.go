package render

import (
	"github.com/gdamore/tcell/v2"
)

// Framebuffer pixels per terminal cell; 640x480 maps onto 80x30
const (
	PixelsPerColumn = 8
	PixelsPerRow    = 16
)

// TerminalCanvas draws the framebuffer onto a tcell screen at cell resolution
type TerminalCanvas struct {
	screen tcell.Screen
}

func NewTerminalCanvas(screen tcell.Screen) *TerminalCanvas {
	return &TerminalCanvas{screen: screen}
}

// toCell converts a pixel to a terminal cell, flooring negatives
func toCell(x, y int) (col, row int) {
	return floorDiv(x, PixelsPerColumn), floorDiv(y, PixelsPerRow)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// put writes a rune in fg over whatever background the cell already has
func (t *TerminalCanvas) put(col, row int, r rune, fg Color, bold bool) {
	_, _, st, _ := t.screen.GetContent(col, row)
	_, bg, _ := st.Decompose()
	style := tcell.StyleDefault.Foreground(fg.TCell()).Background(bg).Bold(bold)
	t.screen.SetContent(col, row, r, nil, style)
}

func (t *TerminalCanvas) Clear() {
	t.screen.Fill(' ', tcell.StyleDefault.Background(Black.TCell()))
}

func (t *TerminalCanvas) FillRect(x, y, w, h int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	c0, r0 := toCell(x, y)
	c1, r1 := toCell(x+w-1, y+h-1)
	style := tcell.StyleDefault.Background(c.TCell())
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			t.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

func (t *TerminalCanvas) DrawRect(x, y, w, h int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	t.DrawHLine(x, y, w, c)
	t.DrawHLine(x, y+h-1, w, c)
	t.DrawVLine(x, y, h, c)
	t.DrawVLine(x+w-1, y, h, c)
}

func (t *TerminalCanvas) DrawHLine(x, y, w int, c Color) {
	if w <= 0 {
		return
	}
	c0, row := toCell(x, y)
	c1, _ := toCell(x+w-1, y)
	for col := c0; col <= c1; col++ {
		t.put(col, row, '─', c, false)
	}
}

func (t *TerminalCanvas) DrawVLine(x, y, h int, c Color) {
	if h <= 0 {
		return
	}
	col, r0 := toCell(x, y)
	_, r1 := toCell(x, y+h-1)
	for row := r0; row <= r1; row++ {
		t.put(col, row, '│', c, false)
	}
}

func (t *TerminalCanvas) DrawText(x, y, size int, c Color, text string) {
	col, row := toCell(x, y)
	for _, r := range text {
		t.put(col, row, r, c, size > 1)
		col++
	}
}

func (t *TerminalCanvas) Show() {
	t.screen.Show()
}
