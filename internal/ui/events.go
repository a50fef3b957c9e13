// Package ui turns raw pointer, scroll and key input into view changes.
package ui

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle

	mouseButtonCount = iota
)

// MouseButtonPrimary is the button that starts a drag.
const MouseButtonPrimary = MouseButtonLeft

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	}
	return "unknown"
}

// Action is a button transition.
type Action int

const (
	Release Action = iota
	Press
)

func (a Action) String() string {
	if a == Press {
		return "press"
	}
	return "release"
}

// ModifierKey is a bit set of keyboard modifiers held during a button event.
type ModifierKey int

const (
	ModShift ModifierKey = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// Key is a view command bound to a keyboard key.
type Key int

const (
	// KeyReset restores the startup view.
	KeyReset Key = iota
)

// EventListener receives discrete input events. The platform binding invokes
// its methods synchronously, in event order, before the frame is drawn.
type EventListener interface {
	OnMouseButton(button MouseButton, action Action, mods ModifierKey)
	// OnCursorMove reports the cursor in screen pixels, origin top-left.
	OnCursorMove(x, y float64)
	OnScroll(xoffset, yoffset float64)
	OnKey(key Key)
}
