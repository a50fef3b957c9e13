package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/MarkusARoman/Mandelbrot/internal/app"
	"github.com/MarkusARoman/Mandelbrot/internal/config"
)

func main() {
	cfg, err := config.Resolve(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Printf("Invalid configuration: %v", err)
		os.Exit(2)
	}
	log.Printf("Starting %q at %dx%d, texture %s", cfg.Title, cfg.Width, cfg.Height, cfg.Texture)

	if err := app.Run(cfg, app.DefaultDeps(cfg), app.EbitenRunner(cfg)); err != nil {
		log.Fatalf("Failed to run: %v", err)
	}
}
