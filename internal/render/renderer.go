package render

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/MarkusARoman/Mandelbrot/internal/view"
)

// FrameUniforms are the values handed to the program for one frame.
type FrameUniforms struct {
	ResolutionW, ResolutionH float64
	Zoom                     float64
	OffsetX, OffsetY         float64
	TextureUnit              int
}

// Renderer draws one frame of the fractal per call to Frame.
type Renderer struct {
	prog   Program
	tex    *ebiten.Image
	quad   *Quad
	width  int
	height int
}

// NewRenderer returns a Renderer for a width x height window. All resources
// must already be valid; the renderer never draws with missing ones.
func NewRenderer(prog Program, tex *ebiten.Image, quad *Quad, width, height int) (*Renderer, error) {
	switch {
	case prog == nil:
		return nil, errors.New("render: nil program")
	case tex == nil:
		return nil, errors.New("render: nil texture")
	case quad == nil:
		return nil, errors.New("render: nil quad")
	case width <= 0 || height <= 0:
		return nil, errors.New("render: empty viewport")
	}
	return &Renderer{prog: prog, tex: tex, quad: quad, width: width, height: height}, nil
}

// Uniforms derives the frame uniforms from a view snapshot.
func (r *Renderer) Uniforms(snap view.Snapshot) FrameUniforms {
	return FrameUniforms{
		ResolutionW: float64(r.width),
		ResolutionH: float64(r.height),
		Zoom:        snap.Zoom,
		OffsetX:     snap.OffsetX,
		OffsetY:     snap.OffsetY,
		TextureUnit: TextureUnit,
	}
}

// Frame clears dst and draws the fractal for snap. The snapshot is taken by
// value, so every uniform comes from the same view. ebiten presents the
// screen once Draw returns.
func (r *Renderer) Frame(dst Surface, snap view.Snapshot) {
	u := r.Uniforms(snap)

	dst.Clear()
	r.prog.Use()
	r.prog.SetUniform2f(UniformResolution, float32(u.ResolutionW), float32(u.ResolutionH))
	r.prog.SetUniform1f(UniformZoom, float32(u.Zoom))
	r.prog.SetUniform2f(UniformOffset, float32(u.OffsetX), float32(u.OffsetY))
	r.prog.SetUniform1i(UniformTexture, u.TextureUnit)
	r.prog.BindTexture(TextureUnit, r.tex)
	r.prog.Draw(dst, r.quad)
}
