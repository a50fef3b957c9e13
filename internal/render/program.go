// Package render draws the fractal: it owns the shader program, the
// screen-filling quad and the per-frame uniform contract.
package render

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// Uniform names understood by the fractal program.
const (
	UniformResolution = "u_resolution" // vec2, window size in pixels
	UniformZoom       = "u_zoom"       // float, half-width of the visible region
	UniformOffset     = "u_offset"     // vec2, fractal-plane center
	UniformTexture    = "u_texture"    // int, texture unit sampled as palette
)

// TextureUnit is the unit the palette texture is bound to every frame.
const TextureUnit = 0

// Surface is a draw target. *ebiten.Image implements it.
type Surface interface {
	Clear()
	DrawTrianglesShader(vertices []ebiten.Vertex, indices []uint16, shader *ebiten.Shader, options *ebiten.DrawTrianglesShaderOptions)
}

var _ Surface = (*ebiten.Image)(nil)

// Program is a compiled shader program.
type Program interface {
	Use()
	SetUniform1f(name string, v float32)
	SetUniform2f(name string, x, y float32)
	SetUniform1i(name string, v int)
	BindTexture(unit int, tex *ebiten.Image)
	Draw(dst Surface, q *Quad)
	Delete()
}

//go:embed shaders/mandelbrot.kage
var mandelbrotKage []byte

// kageUniforms maps program uniform names to Kage variable names. Kage only
// exposes exported package variables as uniforms.
var kageUniforms = map[string]string{
	UniformResolution: "Resolution",
	UniformZoom:       "Zoom",
	UniformOffset:     "Offset",
}

// maxTextureUnits matches the number of source images a Kage shader can read.
const maxTextureUnits = len(ebiten.DrawTrianglesShaderOptions{}.Images)

// KageProgram is a Program backed by an ebiten Kage shader. Uniform and
// texture state accumulates between Use and Draw, like a GL program object.
type KageProgram struct {
	name   string
	shader *ebiten.Shader

	uniforms map[string]any
	units    [maxTextureUnits]*ebiten.Image
	sampler  int
}

var _ Program = (*KageProgram)(nil)

// CompileMandelbrot compiles the built-in fractal shader, or the Kage source
// at path when path is non-empty.
func CompileMandelbrot(path string) (*KageProgram, error) {
	if path == "" {
		return Compile("mandelbrot", mandelbrotKage)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &ShaderError{Name: path, Err: fmt.Errorf("reading source: %w", err)}
	}
	return Compile(path, src)
}

// Compile builds a KageProgram from source.
func Compile(name string, src []byte) (*KageProgram, error) {
	s, err := ebiten.NewShader(src)
	if err != nil {
		return nil, &ShaderError{Name: name, Err: err}
	}
	return newKageProgram(name, s), nil
}

func newKageProgram(name string, s *ebiten.Shader) *KageProgram {
	return &KageProgram{name: name, shader: s, uniforms: map[string]any{}}
}

// Use starts a new draw: uniforms set for a previous frame are discarded.
func (p *KageProgram) Use() {
	p.uniforms = map[string]any{}
}

// SetUniform1f sets a float uniform. Unknown names are ignored.
func (p *KageProgram) SetUniform1f(name string, v float32) {
	if k, ok := kageUniforms[name]; ok {
		p.uniforms[k] = v
	}
}

// SetUniform2f sets a vec2 uniform. Unknown names are ignored.
func (p *KageProgram) SetUniform2f(name string, x, y float32) {
	if k, ok := kageUniforms[name]; ok {
		p.uniforms[k] = []float32{x, y}
	}
}

// SetUniform1i sets an int uniform. UniformTexture selects the texture unit
// that feeds the shader's first source image.
func (p *KageProgram) SetUniform1i(name string, v int) {
	if name == UniformTexture {
		if v >= 0 && v < maxTextureUnits {
			p.sampler = v
		}
		return
	}
	if k, ok := kageUniforms[name]; ok {
		p.uniforms[k] = v
	}
}

// BindTexture attaches tex to a texture unit.
func (p *KageProgram) BindTexture(unit int, tex *ebiten.Image) {
	if unit < 0 || unit >= maxTextureUnits {
		return
	}
	p.units[unit] = tex
}

// Draw renders q onto dst with the current uniforms and textures.
func (p *KageProgram) Draw(dst Surface, q *Quad) {
	op := &ebiten.DrawTrianglesShaderOptions{Uniforms: p.uniforms}
	op.Images[0] = p.units[p.sampler]
	dst.DrawTrianglesShader(q.Vertices(), q.Indices(), p.shader, op)
}

// Delete releases the shader.
func (p *KageProgram) Delete() {
	if p.shader != nil {
		p.shader.Deallocate()
		p.shader = nil
	}
}
