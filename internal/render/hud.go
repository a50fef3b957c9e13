package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/MarkusARoman/Mandelbrot/internal/view"
)

const crosshairSize = 6

// HUD overlays the current view parameters and marks the screen center.
type HUD struct {
	Visible bool
}

// Toggle flips visibility.
func (h *HUD) Toggle() {
	h.Visible = !h.Visible
}

// Draw paints the overlay on top of an already rendered frame.
func (h *HUD) Draw(screen *ebiten.Image, snap view.Snapshot, tps float64) {
	if !h.Visible {
		return
	}
	ebitenutil.DebugPrintAt(screen, hudText(snap, tps), 4, 4)

	b := screen.Bounds()
	cx := float32(b.Min.X+b.Max.X) / 2
	cy := float32(b.Min.Y+b.Max.Y) / 2
	vector.StrokeLine(screen, cx-crosshairSize, cy, cx+crosshairSize, cy, 1, color.White, false)
	vector.StrokeLine(screen, cx, cy-crosshairSize, cx, cy+crosshairSize, 1, color.White, false)
}

func hudText(snap view.Snapshot, tps float64) string {
	return fmt.Sprintf("Zoom: %.6g\nCenter: (%.10g, %.10g)\nTPS: %.0f\n[drag] pan  [wheel] zoom  [R] reset  [H] hud",
		snap.Zoom, snap.OffsetX, snap.OffsetY, tps)
}
