// Package service provides texture loading and image metadata extraction.
package service

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Wrap is a texture coordinate wrapping mode.
type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapClamp
)

// Filter is a texture sampling filter.
type Filter int

const (
	FilterLinear Filter = iota
	FilterNearest
)

// DefaultMaxTextureSize bounds the longer texture side. Larger images are
// scaled down on load.
const DefaultMaxTextureSize = 4096

// TextureLoadError reports an image that could not be turned into a texture.
// Reason is the decoder's own message.
type TextureLoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *TextureLoadError) Error() string {
	return fmt.Sprintf("failed to load texture %s: %s", e.Path, e.Reason)
}

func (e *TextureLoadError) Unwrap() error {
	return e.Err
}

// Texture is a decoded RGBA8 image together with its sampling parameters.
type Texture struct {
	Path      string
	Format    string
	Pixels    *image.RGBA
	WrapS     Wrap
	WrapT     Wrap
	MinFilter Filter
	MagFilter Filter
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (width, height int) {
	b := t.Pixels.Bounds()
	return b.Dx(), b.Dy()
}

// Upload creates the GPU-side image. It must be called after the game
// window exists or before ebiten.RunGame, like any ebiten.NewImage call.
func (t *Texture) Upload() *ebiten.Image {
	return ebiten.NewImageFromImage(t.Pixels)
}

// ImageInfo holds metadata about an image.
type ImageInfo struct {
	Width    int
	Height   int
	Format   string
	Size     int64
	ModTime  time.Time
	EXIFData map[string]string
}

// TextureService loads textures from image files.
type TextureService struct {
	// MaxSize bounds the longer side of loaded textures; zero means
	// DefaultMaxTextureSize.
	MaxSize int
}

// NewTextureService creates a new TextureService.
func NewTextureService() *TextureService {
	return &TextureService{MaxSize: DefaultMaxTextureSize}
}

// Load decodes the image at path into an RGBA8 texture that repeats in both
// directions and filters linearly.
func (ts *TextureService) Load(path string) (*Texture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &TextureLoadError{Path: path, Reason: err.Error(), Err: err}
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, &TextureLoadError{Path: path, Reason: err.Error(), Err: err}
	}
	if img.Bounds().Empty() {
		err := errors.New("image has no pixels")
		return nil, &TextureLoadError{Path: path, Reason: err.Error(), Err: err}
	}

	return &Texture{
		Path:      path,
		Format:    format,
		Pixels:    ts.toRGBA(img),
		WrapS:     WrapRepeat,
		WrapT:     WrapRepeat,
		MinFilter: FilterLinear,
		MagFilter: FilterLinear,
	}, nil
}

// toRGBA converts img to a zero-origin RGBA image, scaling it down if it
// exceeds the size limit.
func (ts *TextureService) toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	w, h := fitWithin(b.Dx(), b.Dy(), ts.maxSize())
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
		return dst
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

func (ts *TextureService) maxSize() int {
	if ts.MaxSize <= 0 {
		return DefaultMaxTextureSize
	}
	return ts.MaxSize
}

// fitWithin scales w x h down, preserving aspect ratio, so that neither side
// exceeds limit. Sides never drop below one pixel.
func fitWithin(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}

// Info reads an image file and extracts metadata without decoding the full image,
// which is significantly more performant.
func (ts *TextureService) Info(path string) (*ImageInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	config, format, err := image.DecodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("decoding image config: %w", err)
	}

	// Reset file pointer to read EXIF data
	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("seeking file for exif: %w", err)
	}

	exifData, _ := exif.Decode(file) // Ignore error, EXIF might not be present

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("getting file stats: %w", err)
	}

	info := &ImageInfo{
		Width:    config.Width,
		Height:   config.Height,
		Format:   format,
		Size:     fileInfo.Size(),
		ModTime:  fileInfo.ModTime(),
		EXIFData: make(map[string]string),
	}

	if exifData != nil {
		if camModel, err := exifData.Get(exif.Model); err == nil {
			info.EXIFData["Camera Model"] = camModel.String()
		}
		if orientation, err := exifData.Get(exif.Orientation); err == nil {
			if v, err := orientation.Int(0); err == nil {
				info.EXIFData["Orientation"] = fmt.Sprint(v)
			}
		}
	}

	return info, nil
}
