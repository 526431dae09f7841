package render

import (
	"fmt"
	"sync/atomic"

	"github.com/akinfelami/pico-mdr/component"
	"github.com/akinfelami/pico-mdr/engine"
	"github.com/akinfelami/pico-mdr/parameter"
)

// Screen layout in framebuffer pixels
const (
	headerX      = parameter.GridStartX + 10
	headerY      = 20
	headerWidth  = parameter.Cols * parameter.CellWidth
	headerHeight = 30

	logoWidth  = 70
	logoHeight = 40

	footerY      = 460
	footerHeight = 10
	footerText   = "0x5D9EA : 0xB57135"

	boxGap = 2
)

// Breakdown labels in counter order
var breakdownLabels = [4]string{"WO", "FC", "DR", "MA"}

// Scene composes a Snapshot onto a Canvas
type Scene struct {
	showAgents atomic.Bool
}

func NewScene() *Scene {
	return &Scene{}
}

// SetShowAgents toggles agent markers; safe from any goroutine
func (sc *Scene) SetShowAgents(on bool) {
	sc.showAgents.Store(on)
}

// ToggleAgents flips agent markers and returns the new setting
func (sc *Scene) ToggleAgents() bool {
	for {
		old := sc.showAgents.Load()
		if sc.showAgents.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Draw renders one frame and shows it
func (sc *Scene) Draw(snap *engine.Snapshot, c Canvas) {
	c.Clear()

	switch snap.Play {
	case engine.PlayStart:
		drawStart(c)
	default:
		drawHeader(c, snap.Progress)
		drawGrid(c, snap)
		drawCursor(c, snap)
		drawBoxes(c, snap)
		if sc.showAgents.Load() {
			drawAgents(c, snap)
		}
		if snap.Play == engine.PlayWon {
			drawWin(c)
		}
	}

	drawFooter(c)
	c.Show()
}

func drawStart(c Canvas) {
	drawLogo(c, parameter.ScreenWidth/2, 160)
	c.DrawText(200, 220, 2, Cyan, "MACRODATA REFINEMENT")
	c.DrawText(236, 280, 1, White, "press to begin refining")
}

// drawHeader is the title bar whose fill tracks completion
func drawHeader(c Canvas, progress int) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	fill := headerWidth * progress / 100

	c.DrawRect(headerX, headerY, headerWidth, headerHeight, Cyan)
	if fill > 0 {
		c.FillRect(headerX, headerY, fill, headerHeight, White)
	}
	c.DrawText(headerX+10, headerY+10, 2, LightBlue, "Ocula")

	textX := headerX + fill + 10
	if limit := headerX + headerWidth - 180; textX > limit {
		textX = limit
	}
	c.DrawText(textX, headerY+10, 1, White, fmt.Sprintf("%d%% Complete", progress))

	drawLogo(c, headerWidth-10, headerY+headerHeight/2)
}

// drawLogo approximates the globe with its two rails around the wordmark
func drawLogo(c Canvas, cx, cy int) {
	middleRX := logoWidth / 2 * 3 / 4
	ry := logoHeight / 2
	c.DrawHLine(cx-middleRX, cy-(ry-5), logoWidth*3/4, Cyan)
	c.DrawHLine(cx-middleRX, cy+(ry-5), logoWidth*3/4, Cyan)
	c.DrawText(cx-(middleRX+2), cy-5, 2, Cyan, "LUMON")
}

func drawGrid(c Canvas, snap *engine.Snapshot) {
	top := parameter.GridStartY
	bottom := parameter.GridStartY + (parameter.Rows+1)*parameter.CellHeight
	c.DrawHLine(parameter.GridStartX, top, headerWidth, Cyan)
	c.DrawHLine(parameter.GridStartX, bottom, headerWidth, Cyan)

	for row := range snap.Grid {
		for col := range snap.Grid[row] {
			cell := &snap.Grid[row][col]
			c.DrawText(cell.X+parameter.CellWidth/2, cell.Y+parameter.CellHeight/2, cell.Size, White,
				string(rune('0'+cell.Number)))
		}
	}
}

// drawCursor draws the marching-ants outline of the selected cell
func drawCursor(c Canvas, snap *engine.Snapshot) {
	if !engine.InBounds(snap.Cursor.Row, snap.Cursor.Col) {
		return
	}
	sel := &snap.Grid[snap.Cursor.Row][snap.Cursor.Col]
	w, h := parameter.CellWidth, parameter.CellHeight
	dash := parameter.DashLength

	for x := 0; x < w; x += dash * 2 {
		sx := sel.X + (x+snap.March)%w
		c.DrawHLine(sx, sel.Y, dash, DarkGreen)
		c.DrawHLine(sx, sel.Y+h-1, dash, DarkGreen)
	}
	for y := 0; y < h; y += dash * 2 {
		sy := sel.Y + (y+snap.March)%h
		c.DrawVLine(sel.X, sy, dash, DarkGreen)
		c.DrawVLine(sel.X+w-1, sy, dash, DarkGreen)
	}
}

// drawBoxes draws each meter lifted by its animation height
func drawBoxes(c Canvas, snap *engine.Snapshot) {
	for i := range snap.Boxes {
		drawBox(c, i, &snap.Boxes[i], &snap.Anims[i])
	}
}

func drawBox(c Canvas, idx int, box *component.Box, anim *component.BoxAnim) {
	x, y, w, h := box.X, box.Y-anim.Height, box.W, box.H

	c.DrawRect(x, y, w, h, Cyan)
	c.DrawText(x+w/2-4, y+h/2-4, 1, White, fmt.Sprintf("%02d", idx))

	pct := anim.Bin.Percent()
	barY := box.Y + h + boxGap
	c.DrawRect(x, barY, w, h, Cyan)
	if fill := w * pct / 100; fill > 0 {
		c.FillRect(x, barY, fill, h, White)
	}
	c.DrawText(x+5, barY+h/2-4, 1, Black, fmt.Sprintf("%d%%", pct))

	if anim.Reveal {
		counters := [4]int{anim.Bin.Woe, anim.Bin.Frolic, anim.Bin.Dread, anim.Bin.Malice}
		for k, label := range breakdownLabels {
			c.DrawText(x, y-12*(len(breakdownLabels)-k), 1, Yellow, fmt.Sprintf("%s %d", label, counters[k]))
		}
	}
}

func drawAgents(c Canvas, snap *engine.Snapshot) {
	for _, a := range snap.Agents {
		col := Red
		if a.Group == component.ScoutGroup1 {
			col = Magenta
		}
		c.DrawText(a.X, a.Y, 1, col, "o")
	}
}

func drawWin(c Canvas) {
	c.FillRect(120, 200, 400, 64, DarkBlue)
	c.DrawRect(120, 200, 400, 64, Cyan)
	c.DrawText(176, 216, 2, White, "100% REFINEMENT COMPLETE")
	c.DrawText(232, 244, 1, LightBlue, "press q to leave the floor")
}

func drawFooter(c Canvas) {
	c.FillRect(parameter.GridStartX, footerY, headerWidth, footerHeight, Cyan)
	c.DrawText(headerWidth/2-40, footerY+1, 1, Black, footerText)
}
