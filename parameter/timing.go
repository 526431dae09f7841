package parameter

import "time"

// Task Pacing
const (
	// FrameBudget is the simulation frame period
	FrameBudget = 60 * time.Millisecond

	// AnimTickInterval is the meter-box animator period
	AnimTickInterval = 30 * time.Millisecond

	// AnimHoldDuration is the fully-grown pause during which the breakdown is shown
	AnimHoldDuration = 1500 * time.Millisecond

	// RenderInterval is the presentation refresh period
	RenderInterval = 33 * time.Millisecond

	// InputPollInterval is the input task period, shorter than the frame budget
	InputPollInterval = 10 * time.Millisecond

	// MoveInterval is the minimum time between cursor steps
	MoveInterval = 250 * time.Millisecond

	// CommandQueueSize is the input-to-simulation channel capacity
	CommandQueueSize = 64
)

// Joystick (12-bit ADC readings)
const (
	AxisMax      = 4095
	AxisCenter   = 2048
	XRightThresh = 3000
	XLeftThresh  = 500
	YHighThresh  = 3000
	YLowThresh   = 500

	// KeyPressSamples is how many polls a keyboard press holds the button down
	KeyPressSamples = 3
)

// Observer
const (
	// ObserverPublishInterval throttles snapshots pushed to each websocket client
	ObserverPublishInterval = 100 * time.Millisecond

	// ObserverPingInterval is the websocket liveness ping period
	ObserverPingInterval = 200 * time.Millisecond

	// ObserverPongWait is how long a client may go without answering pings
	ObserverPongWait = ObserverPingInterval * 4

	// ObserverWriteWait bounds a single websocket write
	ObserverWriteWait = time.Second
)

