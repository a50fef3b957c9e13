// Package app wires input, view and rendering into the ebiten game loop.
package app

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/MarkusARoman/Mandelbrot/internal/config"
	"github.com/MarkusARoman/Mandelbrot/internal/render"
	"github.com/MarkusARoman/Mandelbrot/internal/ui"
	"github.com/MarkusARoman/Mandelbrot/internal/view"
)

// LoopState is the lifecycle state of a Loop.
type LoopState int

const (
	Running LoopState = iota
	Terminated
)

func (s LoopState) String() string {
	if s == Terminated {
		return "TERMINATED"
	}
	return "RUNNING"
}

// Window is the part of the platform window the loop queries each tick.
type Window interface {
	// CloseRequested reports whether the user asked to close the window.
	CloseRequested() bool
	ToggleFullscreen()
}

type ebitenWindow struct{}

func (ebitenWindow) CloseRequested() bool { return ebiten.IsWindowBeingClosed() }

func (ebitenWindow) ToggleFullscreen() { ebiten.SetFullscreen(!ebiten.IsFullscreen()) }

// Loop implements ebiten.Game. Each tick, Update drains input into the view
// and Draw renders a snapshot of it; ebiten calls both from one goroutine,
// so the view needs no locking.
type Loop struct {
	view       *view.State
	binding    *ui.Binding
	controller *ui.Controller
	renderer   *render.Renderer
	hud        *render.HUD
	window     Window

	width, height int

	state          LoopState
	closeRequested bool
}

var _ ebiten.Game = (*Loop)(nil)

// NewLoop builds a Loop drawing with res in a window of the configured size.
func NewLoop(cfg config.Config, res *Resources, src ui.Source, window Window) (*Loop, error) {
	if res == nil {
		return nil, errors.New("app: no resources")
	}
	r, err := render.NewRenderer(res.Program, res.Texture, res.Quad, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	v := view.New()
	return &Loop{
		view:       v,
		binding:    ui.NewBinding(src),
		controller: ui.NewController(v, float64(cfg.Height), view.DragSpeed),
		renderer:   r,
		hud:        &render.HUD{Visible: cfg.HUD},
		window:     window,
		width:      cfg.Width,
		height:     cfg.Height,
	}, nil
}

// State returns the lifecycle state.
func (l *Loop) State() LoopState {
	return l.state
}

// View returns the view driven by this loop.
func (l *Loop) View() *view.State {
	return l.view
}

// Update checks the close signal, then applies pending input to the view.
// Once terminated it keeps returning ebiten.Termination.
func (l *Loop) Update() error {
	if l.state == Terminated {
		return ebiten.Termination
	}
	if l.closeRequested || l.window.CloseRequested() {
		l.state = Terminated
		return ebiten.Termination
	}

	input := l.binding.Poll()
	if input.Quit {
		// Honored at the top of the next tick, like a window close.
		l.closeRequested = true
	}
	if input.ToggleFullscreen {
		l.window.ToggleFullscreen()
	}
	if input.ToggleHUD {
		l.hud.Toggle()
	}
	l.binding.Dispatch(input, l.controller)
	return nil
}

// Draw renders the fractal and the optional HUD.
func (l *Loop) Draw(screen *ebiten.Image) {
	snap := l.renderFrame(screen)
	l.hud.Draw(screen, snap, ebiten.ActualTPS())
}

func (l *Loop) renderFrame(dst render.Surface) view.Snapshot {
	snap := l.view.Snapshot()
	l.renderer.Frame(dst, snap)
	return snap
}

// Layout keeps the logical screen at the fixed window size.
func (l *Loop) Layout(_, _ int) (int, int) {
	return l.width, l.height
}
