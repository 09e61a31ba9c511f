package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"cyberfolio/internal/app"
	"cyberfolio/internal/page"
	"cyberfolio/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run returns only after screen.Fini, so main reports errors on a restored
// terminal.
func run() error {
	cfg := app.NewConfig()
	cfg.TPS = term.DefaultConfig().TPS
	cfg.Bind(flag.CommandLine)
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	logOut, closeLog, err := openLog(*logPath)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := cfg.Logger(logOut)

	p, err := page.New(cfg.PageConfig(), page.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("build page: %w", err)
	}
	defer p.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tcfg := term.DefaultConfig()
	tcfg.TPS = cfg.TPS
	if err := term.New(screen, p, tcfg, logger).Run(ctx); err != nil {
		logger.Error("terminal loop", "err", err)
		return fmt.Errorf("terminal loop: %w", err)
	}
	return nil
}

// openLog returns the log destination. The screen owns the terminal, so
// without a path every record is discarded.
func openLog(path string) (io.Writer, func() error, error) {
	if path == "" {
		return io.Discard, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return f, f.Close, nil
}
