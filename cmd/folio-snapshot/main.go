package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"cyberfolio/internal/app"
	"cyberfolio/internal/core"
	"cyberfolio/internal/page"
	"cyberfolio/internal/snapshot"

	"github.com/gogpu/gg"
)

func main() {
	cfg := app.NewConfig()
	cfg.SkipIntro = true
	cfg.Bind(flag.CommandLine)
	scroll := flag.Float64("scroll", 0, "document scroll offset in pixels")
	frames := flag.Int("frames", 60, "frames to run before capturing")
	pointer := flag.String("pointer", "", "pointer position as x,y in viewport pixels")
	out := flag.String("out", "snapshot.png", "output PNG path")
	flag.Parse()

	logger := cfg.Logger(os.Stderr)
	gg.SetLogger(logger.With("component", "gg"))

	opts := snapshot.Options{Width: cfg.Width, Height: cfg.Height, ScrollY: *scroll, Frames: *frames}
	if *pointer != "" {
		pt, err := parsePoint(*pointer)
		if err != nil {
			log.Fatalf("pointer: %v", err)
		}
		opts.Pointer = &pt
	}

	p, err := page.New(cfg.PageConfig(), page.WithLogger(logger))
	if err != nil {
		log.Fatalf("build page: %v", err)
	}
	defer p.Close()

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	w := bufio.NewWriter(f)
	if err := snapshot.Render(p, opts, w); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		log.Fatalf("write %s: %v", *out, err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("close %s: %v", *out, err)
	}
	logger.Info("snapshot written", "path", *out, "scroll", p.ScrollY())
}

func parsePoint(s string) (core.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return core.Point{}, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return core.Point{}, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return core.Point{}, fmt.Errorf("y: %w", err)
	}
	return core.Point{X: x, Y: y}, nil
}
