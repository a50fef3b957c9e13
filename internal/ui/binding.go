package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Source is the platform input surface polled once per tick.
type Source interface {
	CursorPosition() (x, y int)
	Wheel() (xoff, yoff float64)
	IsMouseButtonPressed(b ebiten.MouseButton) bool
	IsMouseButtonJustPressed(b ebiten.MouseButton) bool
	IsMouseButtonJustReleased(b ebiten.MouseButton) bool
	IsKeyPressed(k ebiten.Key) bool
	IsKeyJustPressed(k ebiten.Key) bool
}

// EbitenSource reads input from the running ebiten game.
type EbitenSource struct{}

func (EbitenSource) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (EbitenSource) Wheel() (float64, float64) { return ebiten.Wheel() }

func (EbitenSource) IsKeyPressed(k ebiten.Key) bool { return ebiten.IsKeyPressed(k) }

func (EbitenSource) IsKeyJustPressed(k ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(k)
}

func (EbitenSource) IsMouseButtonPressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}

func (EbitenSource) IsMouseButtonJustPressed(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(b)
}

func (EbitenSource) IsMouseButtonJustReleased(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustReleased(b)
}

var ebitenButtons = [mouseButtonCount]ebiten.MouseButton{
	MouseButtonLeft:   ebiten.MouseButtonLeft,
	MouseButtonRight:  ebiten.MouseButtonRight,
	MouseButtonMiddle: ebiten.MouseButtonMiddle,
}

// Binding converts polled platform state into discrete events. ebiten only
// offers polling, so cursor moves are synthesized from position changes and
// button events from press/release edges.
type Binding struct {
	src Source

	lastX, lastY float64
	seenCursor   bool
}

// NewBinding returns a Binding polling src.
func NewBinding(src Source) *Binding {
	return &Binding{src: src}
}

// Poll gathers all raw input for the current tick.
func (b *Binding) Poll() InputState {
	wx, wy := b.src.Wheel()
	mx, my := b.src.CursorPosition()
	in := InputState{
		Quit:             b.src.IsKeyJustPressed(ebiten.KeyQ) || b.src.IsKeyJustPressed(ebiten.KeyEscape),
		ToggleFullscreen: b.src.IsKeyJustPressed(ebiten.KeyF11),
		ToggleHUD:        b.src.IsKeyJustPressed(ebiten.KeyH),
		ResetView:        b.src.IsKeyJustPressed(ebiten.KeyR),

		WheelX:  wx,
		WheelY:  wy,
		CursorX: float64(mx),
		CursorY: float64(my),
	}
	for i, eb := range ebitenButtons {
		in.Buttons[i] = ButtonEdges{
			JustPressed:  b.src.IsMouseButtonJustPressed(eb),
			JustReleased: b.src.IsMouseButtonJustReleased(eb),
			Held:         b.src.IsMouseButtonPressed(eb),
		}
	}
	if b.src.IsKeyPressed(ebiten.KeyShift) {
		in.Modifiers |= ModShift
	}
	if b.src.IsKeyPressed(ebiten.KeyControl) {
		in.Modifiers |= ModControl
	}
	if b.src.IsKeyPressed(ebiten.KeyAlt) {
		in.Modifiers |= ModAlt
	}
	if b.src.IsKeyPressed(ebiten.KeyMeta) {
		in.Modifiers |= ModSuper
	}
	return in
}

// Dispatch delivers the events contained in in to l, in this order: cursor
// move, button transitions, scroll, keys. Moving before the button events
// means motion in the tick a drag ends still pans, and a press in the tick
// the cursor arrives records the new position.
func (b *Binding) Dispatch(in InputState, l EventListener) {
	if !b.seenCursor || in.CursorX != b.lastX || in.CursorY != b.lastY {
		b.seenCursor = true
		b.lastX, b.lastY = in.CursorX, in.CursorY
		l.OnCursorMove(in.CursorX, in.CursorY)
	}

	for i, e := range in.Buttons {
		button := MouseButton(i)
		switch {
		case e.JustPressed && e.JustReleased && e.Held:
			// Released, then pressed again within one tick.
			l.OnMouseButton(button, Release, in.Modifiers)
			l.OnMouseButton(button, Press, in.Modifiers)
		case e.JustPressed && e.JustReleased:
			l.OnMouseButton(button, Press, in.Modifiers)
			l.OnMouseButton(button, Release, in.Modifiers)
		case e.JustPressed:
			l.OnMouseButton(button, Press, in.Modifiers)
		case e.JustReleased:
			l.OnMouseButton(button, Release, in.Modifiers)
		}
	}

	if in.WheelX != 0 || in.WheelY != 0 {
		l.OnScroll(in.WheelX, in.WheelY)
	}

	if in.ResetView {
		l.OnKey(KeyReset)
	}
}
