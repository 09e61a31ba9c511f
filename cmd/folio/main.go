//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"cyberfolio/internal/app"
	"cyberfolio/internal/page"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := cfg.Logger(os.Stderr)
	p, err := page.New(cfg.PageConfig(), page.WithLogger(logger))
	if err != nil {
		log.Fatalf("build page: %v", err)
	}
	defer p.Close()

	game, err := app.New(p, cfg)
	if err != nil {
		log.Fatalf("start: %v", err)
	}

	ebiten.SetWindowTitle("cyberfolio")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
