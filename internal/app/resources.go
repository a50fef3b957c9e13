package app

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/MarkusARoman/Mandelbrot/internal/config"
	"github.com/MarkusARoman/Mandelbrot/internal/render"
	"github.com/MarkusARoman/Mandelbrot/internal/service"
	"github.com/MarkusARoman/Mandelbrot/internal/ui"
)

// StartupError is a fatal failure to acquire a resource before the loop
// starts. Err is a *render.ShaderError or *service.TextureLoadError for
// shader and texture failures.
type StartupError struct {
	Stage string
	Err   error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("startup failed (%s): %v", e.Stage, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// Resources owns the GPU-side objects used by the loop.
type Resources struct {
	Program render.Program
	Texture *ebiten.Image
	Quad    *render.Quad
}

// Release frees everything acquired so far, in reverse order of acquisition.
// It is safe to call more than once and on partially built Resources.
func (r *Resources) Release() {
	if r.Quad != nil {
		r.Quad.Delete()
		r.Quad = nil
	}
	if r.Texture != nil {
		r.Texture.Deallocate()
		r.Texture = nil
	}
	if r.Program != nil {
		r.Program.Delete()
		r.Program = nil
	}
}

// Deps are the collaborators used to build and drive the loop.
type Deps struct {
	CompileShader func(path string) (render.Program, error)
	Textures      *service.TextureService
	Upload        func(*service.Texture) *ebiten.Image
	Source        ui.Source
	Window        Window
}

// DefaultDeps returns the ebiten-backed collaborators.
func DefaultDeps(cfg config.Config) Deps {
	return Deps{
		CompileShader: compileMandelbrot,
		Textures:      &service.TextureService{MaxSize: cfg.MaxTextureSize},
		Upload:        (*service.Texture).Upload,
		Source:        ui.EbitenSource{},
		Window:        ebitenWindow{},
	}
}

func compileMandelbrot(path string) (render.Program, error) {
	p, err := render.CompileMandelbrot(path)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// acquire compiles the shader, loads the texture and builds the quad. On
// failure everything already acquired is released.
func (d Deps) acquire(cfg config.Config) (_ *Resources, err error) {
	res := &Resources{}
	defer func() {
		if err != nil {
			res.Release()
		}
	}()

	prog, err := d.CompileShader(cfg.Shader)
	if err != nil {
		return nil, &StartupError{Stage: "shader", Err: err}
	}
	res.Program = prog

	tex, err := d.Textures.Load(cfg.Texture)
	if err != nil {
		return nil, &StartupError{Stage: "texture", Err: err}
	}
	logTexture(d.Textures, tex)
	res.Texture = d.Upload(tex)

	w, h := tex.Size()
	res.Quad = render.NewQuad(cfg.Width, cfg.Height, w, h)
	return res, nil
}

func logTexture(ts *service.TextureService, tex *service.Texture) {
	w, h := tex.Size()
	log.Printf("Loaded texture %s (%s, %dx%d)", tex.Path, tex.Format, w, h)
	info, err := ts.Info(tex.Path)
	if err != nil {
		return
	}
	if w != info.Width || h != info.Height {
		log.Printf("Texture scaled down from %dx%d", info.Width, info.Height)
	}
	for k, v := range info.EXIFData {
		log.Printf("Texture %s: %s", k, v)
	}
}
