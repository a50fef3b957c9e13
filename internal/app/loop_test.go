package app

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/MarkusARoman/Mandelbrot/internal/config"
	"github.com/MarkusARoman/Mandelbrot/internal/render"
	"github.com/MarkusARoman/Mandelbrot/internal/service"
)

type fakeWindow struct {
	closing     bool
	fullscreens int
}

func (w *fakeWindow) CloseRequested() bool { return w.closing }

func (w *fakeWindow) ToggleFullscreen() { w.fullscreens++ }

type fakeSource struct {
	x, y        int
	wheelY      float64
	leftPressed bool
	leftJust    bool
	leftRelease bool
	keys        map[ebiten.Key]bool
}

func (s *fakeSource) CursorPosition() (int, int) { return s.x, s.y }

func (s *fakeSource) Wheel() (float64, float64) { return 0, s.wheelY }

func (s *fakeSource) IsKeyPressed(ebiten.Key) bool { return false }

func (s *fakeSource) IsKeyJustPressed(k ebiten.Key) bool {
	return s.keys[k]
}

func (s *fakeSource) IsMouseButtonPressed(b ebiten.MouseButton) bool {
	return b == ebiten.MouseButtonLeft && s.leftPressed
}

func (s *fakeSource) IsMouseButtonJustPressed(b ebiten.MouseButton) bool {
	return b == ebiten.MouseButtonLeft && s.leftJust
}

func (s *fakeSource) IsMouseButtonJustReleased(b ebiten.MouseButton) bool {
	return b == ebiten.MouseButtonLeft && s.leftRelease
}

// endTick clears edge-triggered input.
func (s *fakeSource) endTick() {
	s.wheelY = 0
	s.leftJust = false
	s.leftRelease = false
	s.keys = nil
}

type fakeProgram struct {
	log *[]string
}

func (p fakeProgram) record(s string) { *p.log = append(*p.log, s) }

func (p fakeProgram) Use() { p.record("use") }

func (p fakeProgram) SetUniform1f(name string, v float32) {
	p.record(fmt.Sprintf("%s=%v", name, v))
}

func (p fakeProgram) SetUniform2f(name string, x, y float32) {
	p.record(fmt.Sprintf("%s=%v,%v", name, x, y))
}

func (p fakeProgram) SetUniform1i(name string, v int) {
	p.record(fmt.Sprintf("%s=%d", name, v))
}

func (p fakeProgram) BindTexture(unit int, _ *ebiten.Image) {
	p.record(fmt.Sprintf("bind %d", unit))
}

func (p fakeProgram) Draw(render.Surface, *render.Quad) { p.record("draw") }

func (p fakeProgram) Delete() { p.record("delete program") }

type nopSurface struct{}

func (nopSurface) Clear() {}

func (nopSurface) DrawTrianglesShader([]ebiten.Vertex, []uint16, *ebiten.Shader, *ebiten.DrawTrianglesShaderOptions) {
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Width, cfg.Height = 800, 600
	return cfg
}

func newTestLoop(t *testing.T, log *[]string) (*Loop, *fakeSource, *fakeWindow) {
	t.Helper()
	cfg := testConfig()
	res := &Resources{
		Program: fakeProgram{log: log},
		Texture: ebiten.NewImage(1, 1),
		Quad:    render.NewQuad(cfg.Width, cfg.Height, 1, 1),
	}
	src := &fakeSource{}
	win := &fakeWindow{}
	l, err := NewLoop(cfg, res, src, win)
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	return l, src, win
}

// tick runs one iteration the way ebiten does: Update, then Draw.
func tick(t *testing.T, l *Loop, src *fakeSource) error {
	t.Helper()
	err := l.Update()
	if err == nil {
		l.renderFrame(nopSurface{})
	}
	src.endTick()
	return err
}

func TestLoopTerminatesOnClose(t *testing.T) {
	var log []string
	l, src, win := newTestLoop(t, &log)

	for i := 0; i < 3; i++ {
		if err := tick(t, l, src); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if l.State() != Running {
			t.Fatalf("tick %d: state %v", i, l.State())
		}
	}

	win.closing = true
	if err := tick(t, l, src); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("Update() = %v, want ebiten.Termination", err)
	}
	if l.State() != Terminated {
		t.Errorf("state = %v, want %v", l.State(), Terminated)
	}

	// No restart path.
	win.closing = false
	if err := l.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update() after termination = %v", err)
	}
}

func TestLoopQuitKeyClosesNextTick(t *testing.T) {
	var log []string
	l, src, _ := newTestLoop(t, &log)
	src.keys = map[ebiten.Key]bool{ebiten.KeyEscape: true}
	if err := tick(t, l, src); err != nil {
		t.Fatalf("first tick: %v", err)
	}
	if err := tick(t, l, src); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("second tick = %v, want ebiten.Termination", err)
	}
}

func TestLoopInputBeforeRender(t *testing.T) {
	var log []string
	l, src, _ := newTestLoop(t, &log)

	src.x, src.y = 400, 300
	src.leftPressed, src.leftJust = true, true
	if err := tick(t, l, src); err != nil {
		t.Fatal(err)
	}
	log = nil

	// A drag and a scroll in the same tick reach the uniforms of that tick's frame.
	src.x = 500
	src.wheelY = 1
	if err := tick(t, l, src); err != nil {
		t.Fatal(err)
	}
	snap := l.View().Snapshot()
	if snap.OffsetX == 0 || snap.Zoom == 4 {
		t.Fatalf("input not applied: %+v", snap)
	}
	want := []string{
		"use",
		"u_resolution=800,600",
		fmt.Sprintf("u_zoom=%v", float32(snap.Zoom)),
		fmt.Sprintf("u_offset=%v,%v", float32(snap.OffsetX), float32(snap.OffsetY)),
		"u_texture=0",
		"bind 0",
		"draw",
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestLoopKeys(t *testing.T) {
	var log []string
	l, src, win := newTestLoop(t, &log)
	src.keys = map[ebiten.Key]bool{ebiten.KeyF11: true, ebiten.KeyH: true}
	if err := tick(t, l, src); err != nil {
		t.Fatal(err)
	}
	if win.fullscreens != 1 {
		t.Errorf("fullscreen toggled %d times, want 1", win.fullscreens)
	}
	if !l.hud.Visible {
		t.Error("HUD not shown")
	}

	src.wheelY = 3
	if err := tick(t, l, src); err != nil {
		t.Fatal(err)
	}
	src.keys = map[ebiten.Key]bool{ebiten.KeyR: true}
	if err := tick(t, l, src); err != nil {
		t.Fatal(err)
	}
	if z := l.View().Zoom(); z != 4 {
		t.Errorf("zoom after reset = %v, want 4", z)
	}
}

func TestLayoutIsFixed(t *testing.T) {
	var log []string
	l, _, _ := newTestLoop(t, &log)
	if w, h := l.Layout(1920, 1080); w != 800 || h != 600 {
		t.Errorf("Layout() = %d, %d; want 800, 600", w, h)
	}
}

func writePalette(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "palette.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 16, 1))); err != nil {
		t.Fatal(err)
	}
	return path
}

func testDeps(log *[]string, compileErr error) Deps {
	compile := func(string) (render.Program, error) {
		if compileErr != nil {
			return nil, compileErr
		}
		*log = append(*log, "compile")
		return fakeProgram{log: log}, nil
	}
	upload := func(tex *service.Texture) *ebiten.Image {
		*log = append(*log, "upload")
		w, h := tex.Size()
		return ebiten.NewImage(w, h)
	}
	return Deps{
		CompileShader: compile,
		Textures:      service.NewTextureService(),
		Upload:        upload,
		Source:        &fakeSource{},
		Window:        &fakeWindow{},
	}
}

func TestRunReleasesAfterLoop(t *testing.T) {
	var log []string
	cfg := testConfig()
	cfg.Texture = writePalette(t)

	var loop *Loop
	err := Run(cfg, testDeps(&log, nil), func(g ebiten.Game) error {
		log = append(log, "run")
		loop = g.(*Loop)
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff([]string{"compile", "upload", "run", "delete program"}, log); diff != "" {
		t.Errorf("lifecycle mismatch (-want +got):\n%s", diff)
	}
	if loop == nil || loop.State() != Running {
		t.Error("runner did not receive a fresh loop")
	}
}

func TestRunReleasesOnRunnerError(t *testing.T) {
	var log []string
	cfg := testConfig()
	cfg.Texture = writePalette(t)
	boom := errors.New("graphics driver unavailable")

	err := Run(cfg, testDeps(&log, nil), func(ebiten.Game) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("Run() = %v, want %v", err, boom)
	}
	if log[len(log)-1] != "delete program" {
		t.Errorf("program not released: %v", log)
	}
}

func TestRunShaderFailure(t *testing.T) {
	var log []string
	cfg := testConfig()
	cfg.Texture = writePalette(t)
	compileErr := &render.ShaderError{Name: "bad.kage", Err: errors.New("unexpected token")}

	err := Run(cfg, testDeps(&log, compileErr), func(ebiten.Game) error {
		t.Error("runner called after startup failure")
		return nil
	})
	var se *StartupError
	if !errors.As(err, &se) || se.Stage != "shader" {
		t.Fatalf("Run() = %v, want shader StartupError", err)
	}
	var shaderErr *render.ShaderError
	if !errors.As(err, &shaderErr) {
		t.Errorf("Run() = %v, want wrapped *render.ShaderError", err)
	}
	if len(log) != 0 {
		t.Errorf("unexpected activity: %v", log)
	}
}

func TestRunTextureFailureReleasesShader(t *testing.T) {
	var log []string
	cfg := testConfig()
	cfg.Texture = filepath.Join(t.TempDir(), "missing.jpg")

	err := Run(cfg, testDeps(&log, nil), func(ebiten.Game) error {
		t.Error("runner called after startup failure")
		return nil
	})
	var le *service.TextureLoadError
	if !errors.As(err, &le) {
		t.Fatalf("Run() = %v, want wrapped *service.TextureLoadError", err)
	}
	if diff := cmp.Diff([]string{"compile", "delete program"}, log); diff != "" {
		t.Errorf("lifecycle mismatch (-want +got):\n%s", diff)
	}
}

func TestResourcesReleaseIdempotent(t *testing.T) {
	var log []string
	r := &Resources{Program: fakeProgram{log: &log}, Quad: render.NewQuad(1, 1, 1, 1)}
	r.Release()
	r.Release()
	if diff := cmp.Diff([]string{"delete program"}, log); diff != "" {
		t.Errorf("release mismatch (-want +got):\n%s", diff)
	}
}
