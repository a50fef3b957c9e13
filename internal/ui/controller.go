package ui

import "github.com/MarkusARoman/Mandelbrot/internal/view"

// dragSession exists between a primary-button press and its release.
type dragSession struct {
	active       bool
	lastX, lastY float64
}

// Controller translates input events into view mutations. It is the only
// writer of the view state it is given.
type Controller struct {
	view         *view.State
	screenHeight float64
	dragSpeed    float64

	// Last reported cursor position, tracked even when not dragging so a
	// press knows where it happened.
	cursorX, cursorY float64

	drag dragSession
}

var _ EventListener = (*Controller)(nil)

// NewController returns a Controller that pans v relative to a screen of the
// given height.
func NewController(v *view.State, screenHeight, dragSpeed float64) *Controller {
	return &Controller{
		view:         v,
		screenHeight: screenHeight,
		dragSpeed:    dragSpeed,
	}
}

// Dragging reports whether a drag session is open.
func (c *Controller) Dragging() bool {
	return c.drag.active
}

// OnMouseButton opens a drag session on primary press and closes it on release.
// Every press starts from the current cursor, so nothing carries over from an
// earlier session.
func (c *Controller) OnMouseButton(button MouseButton, action Action, _ ModifierKey) {
	if button != MouseButtonPrimary {
		return
	}
	switch action {
	case Press:
		c.drag = dragSession{active: true, lastX: c.cursorX, lastY: c.cursorY}
	case Release:
		c.drag = dragSession{}
	}
}

// OnCursorMove pans the view by the distance moved since the previous event
// while a drag session is open.
func (c *Controller) OnCursorMove(x, y float64) {
	c.cursorX, c.cursorY = x, y
	if !c.drag.active {
		return
	}
	dx := x - c.drag.lastX
	dy := y - c.drag.lastY
	c.view.ApplyPan(dx, dy, c.screenHeight, c.dragSpeed)
	c.drag.lastX, c.drag.lastY = x, y
}

// OnScroll zooms on vertical scroll. Horizontal scroll is ignored.
func (c *Controller) OnScroll(_, yoffset float64) {
	if yoffset == 0 {
		return
	}
	c.view.ApplyZoom(yoffset)
}

// OnKey handles view commands.
func (c *Controller) OnKey(key Key) {
	switch key {
	case KeyReset:
		c.view.Reset()
	}
}
