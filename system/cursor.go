package system

import (
	"github.com/akinfelami/pico-mdr/component"
	"github.com/akinfelami/pico-mdr/parameter"
)

// MoveCursor steps the cursor one slot, clamped to the grid, and reports whether it moved
func MoveCursor(c *component.Cursor, dir component.Direction) bool {
	row, col := c.Row, c.Col
	switch dir {
	case component.DirLeft:
		col--
	case component.DirRight:
		col++
	case component.DirUp:
		row--
	case component.DirDown:
		row++
	default:
		return false
	}

	row = clampInt(row, 0, parameter.Rows-1)
	col = clampInt(col, 0, parameter.Cols-1)
	if row == c.Row && col == c.Col {
		return false
	}
	c.Row, c.Col = row, col
	return true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
