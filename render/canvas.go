package render

// Canvas is the presentation adapter for a 640x480 framebuffer
// Coordinates are framebuffer pixels; implementations map them to their own resolution
type Canvas interface {
	Clear()
	FillRect(x, y, w, h int, c Color)
	DrawRect(x, y, w, h int, c Color)
	DrawHLine(x, y, w int, c Color)
	DrawVLine(x, y, h int, c Color)

	// DrawText writes text with its top-left at (x, y); size 2 is the enlarged font
	DrawText(x, y, size int, c Color, text string)

	Show()
}
