// Package input turns polled per-frame input into split view events.
package input

// Touch is one active touch point in a frame.
type Touch struct {
	ID          int
	X, Y        int
	JustPressed bool
}

// InputState holds the polled state of inputs for a single frame.
// This separates input polling from input handling logic.
type InputState struct {
	Quit             bool
	ToggleFullscreen bool
	NextPair         bool
	PrevPair         bool
	Reload           bool
	ToggleStrip      bool

	// Mouse state
	MouseX, MouseY   int
	LeftJustPressed  bool
	LeftJustReleased bool

	// Touch state. Touches holds the active touches with the earliest first.
	Touches         []Touch
	ReleasedTouches []int
}
