// Package config resolves viewer settings from defaults, an optional YAML
// file and command-line flags, in increasing order of precedence.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the viewer settings. Window dimensions are fixed for the
// lifetime of the process.
type Config struct {
	Title          string `yaml:"title"`
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
	Texture        string `yaml:"texture"`
	Shader         string `yaml:"shader"` // Kage source; empty uses the built-in shader
	TPS            int    `yaml:"tps"`
	HUD            bool   `yaml:"hud"`
	VSync          bool   `yaml:"vsync"`
	MaxTextureSize int    `yaml:"max_texture_size"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Title:          "Mandelbrot Set",
		Width:          800,
		Height:         600,
		Texture:        "assets/palette.png",
		TPS:            60,
		VSync:          true,
		MaxTextureSize: 4096,
	}
}

// maxConfigSize guards against reading something that is clearly not a config file.
const maxConfigSize = 1 << 20

// Load reads a YAML file over the defaults. Keys that are not Config fields
// are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	info, err := os.Stat(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if info.Size() > maxConfigSize {
		return cfg, fmt.Errorf("config %s is too large (%d bytes)", path, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	case c.TPS <= 0:
		return fmt.Errorf("invalid tps %d", c.TPS)
	case c.Texture == "":
		return errors.New("no texture given")
	case c.MaxTextureSize <= 0:
		return fmt.Errorf("invalid max_texture_size %d", c.MaxTextureSize)
	}
	return nil
}

// Resolve parses command-line arguments. A -config file replaces the
// defaults, then every flag given explicitly overrides the file. A single
// positional argument is taken as the texture path unless -texture is set.
func Resolve(name string, args []string, output io.Writer) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	f := Default()
	configPath := fs.String("config", "", "YAML config file")
	fs.StringVar(&f.Title, "title", f.Title, "Window title")
	fs.IntVar(&f.Width, "width", f.Width, "Window width in pixels")
	fs.IntVar(&f.Height, "height", f.Height, "Window height in pixels")
	fs.StringVar(&f.Texture, "texture", f.Texture, "Palette texture image. Can also be provided as a positional argument.")
	fs.StringVar(&f.Shader, "shader", f.Shader, "Kage shader source replacing the built-in fractal shader")
	fs.IntVar(&f.TPS, "tps", f.TPS, "Input and update ticks per second")
	fs.BoolVar(&f.HUD, "hud", f.HUD, "Show the zoom/offset overlay at startup")
	fs.BoolVar(&f.VSync, "vsync", f.VSync, "Synchronize frames with the display refresh")
	fs.IntVar(&f.MaxTextureSize, "max-texture-size", f.MaxTextureSize, "Scale textures down so neither side exceeds this many pixels")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if *configPath != "" {
		var err error
		if cfg, err = Load(*configPath); err != nil {
			return Config{}, err
		}
	}

	textureFlagSet := false
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "title":
			cfg.Title = f.Title
		case "width":
			cfg.Width = f.Width
		case "height":
			cfg.Height = f.Height
		case "texture":
			cfg.Texture = f.Texture
			textureFlagSet = true
		case "shader":
			cfg.Shader = f.Shader
		case "tps":
			cfg.TPS = f.TPS
		case "hud":
			cfg.HUD = f.HUD
		case "vsync":
			cfg.VSync = f.VSync
		case "max-texture-size":
			cfg.MaxTextureSize = f.MaxTextureSize
		}
	})

	switch {
	case fs.NArg() > 1:
		return Config{}, fmt.Errorf("unexpected arguments: %q", fs.Args()[1:])
	case fs.NArg() == 1 && !textureFlagSet:
		cfg.Texture = fs.Arg(0)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
