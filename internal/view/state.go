// Package view holds the viewport transform that maps screen pixels onto the
// fractal plane.
package view

import "math"

const (
	// DefaultZoom is the half-width of the visible fractal-plane region at startup.
	DefaultZoom = 4.0
	// ZoomBase is the factor applied per scroll step.
	ZoomBase = 1.1
	// DragSpeed scales screen-pixel drag deltas before they reach the offset.
	DragSpeed = 1.5
)

// Snapshot is an immutable copy of the view taken at the start of a frame.
type Snapshot struct {
	Zoom    float64
	OffsetX float64
	OffsetY float64
}

// State is the current view: a zoom scalar and the fractal-plane point at the
// center of the screen. Zoom is always strictly positive.
//
// State is not safe for concurrent use. The game loop mutates it while
// handling input and reads it while drawing, always on the same goroutine.
type State struct {
	zoom             float64
	offsetX, offsetY float64
}

// New returns a State with the default zoom centered on the origin.
func New() *State {
	return &State{zoom: DefaultZoom}
}

// Zoom returns the half-width of the visible region.
func (s *State) Zoom() float64 {
	return s.zoom
}

// Offset returns the fractal-plane coordinate at the center of the screen.
func (s *State) Offset() (x, y float64) {
	return s.offsetX, s.offsetY
}

// ApplyZoom scales the zoom by ZoomBase^-scrollDelta. A positive delta
// magnifies (zoom shrinks), a negative one zooms out.
func (s *State) ApplyZoom(scrollDelta float64) {
	factor := math.Pow(ZoomBase, -scrollDelta)
	// Factors and results outside the normal float64 range would lose
	// precision or collapse to 0/+Inf; such steps are dropped.
	if !(factor >= minNormal && factor <= 1/minNormal) {
		return
	}
	z := s.zoom * factor
	if !(z >= minNormal && z <= math.MaxFloat64) {
		return
	}
	s.zoom = z
}

// minNormal is the smallest positive normal float64.
const minNormal = 0x1p-1022

// ApplyPan moves the offset by a screen-space delta. Deltas are normalized by
// the screen height and scaled by the current zoom, so a drag covers the same
// fraction of the visible region at any magnification. Screen Y grows
// downward and fractal Y grows upward, hence the opposite signs.
func (s *State) ApplyPan(dx, dy, screenHeight, dragSpeed float64) {
	s.offsetX -= dx * dragSpeed / screenHeight * s.zoom
	s.offsetY += dy * dragSpeed / screenHeight * s.zoom
}

// Reset restores the startup view.
func (s *State) Reset() {
	s.zoom = DefaultZoom
	s.offsetX, s.offsetY = 0, 0
}

// Snapshot copies the current view.
func (s *State) Snapshot() Snapshot {
	return Snapshot{Zoom: s.zoom, OffsetX: s.offsetX, OffsetY: s.offsetY}
}
