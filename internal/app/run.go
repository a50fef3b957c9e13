package app

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/MarkusARoman/Mandelbrot/internal/config"
)

// Runner drives a game until it terminates.
type Runner func(game ebiten.Game) error

// EbitenRunner configures the window from cfg and runs the game with
// ebiten.RunGame. The window is not resizable, and closing it is reported
// to the loop instead of ending the process directly.
func EbitenRunner(cfg config.Config) Runner {
	return func(game ebiten.Game) error {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
		ebiten.SetWindowTitle(cfg.Title)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
		ebiten.SetWindowClosingHandled(true)
		ebiten.SetTPS(cfg.TPS)
		ebiten.SetVsyncEnabled(cfg.VSync)
		return ebiten.RunGame(game)
	}
}

// Run acquires the loop's resources, runs it with run and releases the
// resources on every exit path. Startup failures are returned as
// *StartupError before run is called.
func Run(cfg config.Config, deps Deps, run Runner) error {
	res, err := deps.acquire(cfg)
	if err != nil {
		return err
	}
	defer res.Release()

	loop, err := NewLoop(cfg, res, deps.Source, deps.Window)
	if err != nil {
		return &StartupError{Stage: "loop", Err: err}
	}
	return run(loop)
}
