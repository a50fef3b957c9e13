package ui

// InputState holds the polled state of inputs for a single frame.
// This separates input polling from input handling logic.
type InputState struct {
	Quit             bool
	ToggleFullscreen bool
	ToggleHUD        bool
	ResetView        bool

	// Mouse state
	WheelX, WheelY   float64
	CursorX, CursorY float64
	Buttons          [mouseButtonCount]ButtonEdges
	Modifiers        ModifierKey
}

// ButtonEdges records the transitions a mouse button went through since the
// previous frame, and whether it is held now.
type ButtonEdges struct {
	JustPressed  bool
	JustReleased bool
	Held         bool
}
