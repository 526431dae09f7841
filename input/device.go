package input

// Device is a joystick-like input source sampled by the input task
type Device interface {
	// Axes returns 12-bit readings, centred near 2048
	Axes() (x, y int)
	// Button returns the raw, undebounced button level
	Button() bool
}
