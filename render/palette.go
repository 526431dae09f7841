package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Color is an index into the 16-colour VGA palette
// Bit 3 is red, bit 2 blue, bits 1-0 a two-bit green level
type Color uint8

const (
	Black Color = iota
	DarkGreen
	MedGreen
	Green
	DarkBlue
	Blue
	LightBlue
	Cyan
	Red
	DarkOrange
	Orange
	Yellow
	Magenta
	Pink
	LightPink
	White
)

var colorNames = [...]string{
	"black", "dark_green", "med_green", "green",
	"dark_blue", "blue", "light_blue", "cyan",
	"red", "dark_orange", "orange", "yellow",
	"magenta", "pink", "light_pink", "white",
}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}

// RGB expands the packed index to 8-bit channels
func (c Color) RGB() (r, g, b int32) {
	c &= 0xF
	r = 255 * int32(c>>3&1)
	b = 255 * int32(c>>2&1)
	g = 85 * int32(c&3)
	return r, g, b
}

// TCell returns the terminal colour for c
func (c Color) TCell() tcell.Color {
	return tcell.NewRGBColor(c.RGB())
}

// MarshalText encodes the colour by name in draw lists
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a colour name written by MarshalText
func (c *Color) UnmarshalText(text []byte) error {
	for i, name := range colorNames {
		if name == string(text) {
			*c = Color(i)
			return nil
		}
	}
	return fmt.Errorf("render: unknown colour %q", text)
}
