// Package term drives a page on a character-cell terminal through tcell. Each
// cell stands for a CellW by CellH block of page pixels, so the page runs at
// its normal pixel geometry and the terminal samples it.
package term

import (
	"context"
	"errors"
	"image/color"
	"log/slog"
	"time"

	"cyberfolio/internal/page"
	"cyberfolio/internal/render"
	"cyberfolio/internal/scramble"

	"github.com/gdamore/tcell/v2"
)

// Config controls the cell geometry and loop cadence.
type Config struct {
	CellW      int
	CellH      int
	TPS        int
	ScrollStep float64
}

// DefaultConfig returns the standard terminal settings.
func DefaultConfig() Config {
	return Config{CellW: 10, CellH: 20, TPS: 30, ScrollStep: 60}
}

// minOpacity hides elements that would render as near-black text.
const minOpacity = 0.05

// Surface owns a tcell screen and forwards its input to a page.
type Surface struct {
	screen tcell.Screen
	page   *page.Page
	cfg    Config
	log    *slog.Logger

	canvas  *cellCanvas
	buttons tcell.ButtonMask
}

// New binds p to screen. The screen must already be initialised.
func New(screen tcell.Screen, p *page.Page, cfg Config, log *slog.Logger) *Surface {
	def := DefaultConfig()
	if cfg.CellW <= 0 {
		cfg.CellW = def.CellW
	}
	if cfg.CellH <= 0 {
		cfg.CellH = def.CellH
	}
	if cfg.TPS <= 0 {
		cfg.TPS = def.TPS
	}
	if cfg.ScrollStep <= 0 {
		cfg.ScrollStep = def.ScrollStep
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Surface{screen: screen, page: p, cfg: cfg, log: log, canvas: &cellCanvas{cellW: cfg.CellW, cellH: cfg.CellH}}
}

// Mount sizes the page from the current screen dimensions.
func (s *Surface) Mount(now time.Duration) {
	cols, rows := s.screen.Size()
	s.canvas.resize(cols, rows)
	s.page.Resize(cols*s.cfg.CellW, rows*s.cfg.CellH, now)
}

// HandleEvent applies one terminal event. It reports whether the loop should
// stop and whether the event asked for an immediate redraw.
func (s *Surface) HandleEvent(ev tcell.Event, now time.Duration) (quit, redraw bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return s.handleKey(ev)
	case *tcell.EventMouse:
		return false, s.handleMouse(ev)
	case *tcell.EventResize:
		s.screen.Sync()
		s.Mount(now)
		s.log.Debug("terminal resized", "cols", s.canvas.cols, "rows", s.canvas.rows)
		return false, true
	}
	return false, false
}

func (s *Surface) handleKey(ev *tcell.EventKey) (quit, redraw bool) {
	screenful := s.page.Viewport().H * 0.9
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, false
	case tcell.KeyDown:
		return false, s.page.Scroll(float64(s.cfg.CellH))
	case tcell.KeyUp:
		return false, s.page.Scroll(-float64(s.cfg.CellH))
	case tcell.KeyPgDn:
		return false, s.page.Scroll(screenful)
	case tcell.KeyPgUp:
		return false, s.page.Scroll(-screenful)
	case tcell.KeyHome:
		return false, s.page.ScrollTo(0)
	case tcell.KeyEnd:
		return false, s.page.ScrollTo(s.page.MaxScroll())
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true, false
		case ' ':
			return false, s.page.Scroll(screenful)
		case 'j':
			return false, s.page.Scroll(float64(s.cfg.CellH))
		case 'k':
			return false, s.page.Scroll(-float64(s.cfg.CellH))
		}
	}
	return false, false
}

func (s *Surface) handleMouse(ev *tcell.EventMouse) bool {
	col, row := ev.Position()
	x := float64(col*s.cfg.CellW + s.cfg.CellW/2)
	y := float64(row*s.cfg.CellH + s.cfg.CellH/2)
	s.page.PointerMove(x, y)

	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && s.buttons&tcell.Button1 == 0
	s.buttons = buttons

	redraw := false
	switch {
	case buttons&tcell.WheelDown != 0:
		redraw = s.page.Scroll(s.cfg.ScrollStep)
	case buttons&tcell.WheelUp != 0:
		redraw = s.page.Scroll(-s.cfg.ScrollStep)
	}
	if pressed && s.page.Click(x, y) > 0 {
		redraw = true
	}
	return redraw
}

// Frame advances the page and paints the screen.
func (s *Surface) Frame(now time.Duration) {
	if !s.page.Ready() {
		s.page.Frame(now, nil)
		if !s.page.Ready() {
			s.drawSplash(s.page.Splash().Frame(now))
			s.screen.Show()
			return
		}
	}
	s.canvas.offsetY = s.page.ScrollY()
	s.page.Frame(now, s.canvas)
	s.canvas.flush(s.screen)
	for _, e := range s.page.Elements() {
		s.drawElement(e)
	}
	s.drawString(1, 0, s.page.Logo(), tcell.StyleDefault.Foreground(tcell.NewRGBColor(120, 255, 140)).Background(tcell.ColorBlack))
	s.screen.Show()
}

func (s *Surface) drawSplash(f scramble.SplashFrame) {
	bg := tcell.StyleDefault.Background(rgb(f.Background))
	s.screen.Fill(' ', bg)
	if f.Opacity < minOpacity {
		return
	}
	cols, rows := s.screen.Size()
	runes := []rune(f.Text)
	// Black text fading into the background.
	fg := render.Premultiply(f.Background, 1-f.Opacity)
	s.drawString(cols/2-len(runes)/2, rows/2, f.Text, bg.Foreground(rgb(fg)))
}

func (s *Surface) drawElement(e *page.Element) {
	v := e.Visual
	if v.Opacity < minOpacity || e.Label == "" {
		return
	}
	x, y := s.page.ElementPosition(e)
	if y < 0 {
		return
	}
	// Blur has no cell equivalent; it dims the text instead.
	dim := 1 - min(v.Blur/20, 0.5)
	fg := render.Premultiply(color.RGBA{R: 255, G: 255, B: 255, A: 255}, v.Opacity*dim)
	style := tcell.StyleDefault.Foreground(rgb(fg)).Background(tcell.ColorBlack)

	col := int(x) / s.cfg.CellW
	row := int(y) / s.cfg.CellH
	if e.ID == page.Banner {
		width := int(s.page.Marquee().Width) / s.cfg.CellW
		for c := col; c < s.canvas.cols; c += max(width, 1) {
			s.drawString(c, row, e.Label, style)
		}
		return
	}
	s.drawString(col-len([]rune(e.Label))/2, row, e.Label, style)
}

func (s *Surface) drawString(col, row int, str string, style tcell.Style) {
	cols, rows := s.screen.Size()
	if row < 0 || row >= rows {
		return
	}
	for _, r := range str {
		if col >= cols {
			return
		}
		if col >= 0 {
			s.screen.SetContent(col, row, r, nil, style)
		}
		col++
	}
}

// ErrEventsClosed is returned by Run when the screen stops delivering events
// before the user quits, typically because it was finalised underneath it.
var ErrEventsClosed = errors.New("term: event stream closed")

// Run polls terminal events on a goroutine and drives the page from a ticker
// until ctx is done or the user quits; both end the loop with a nil error.
func (s *Surface) Run(ctx context.Context) error {
	if s.screen == nil {
		return errors.New("term: no screen")
	}
	events := make(chan tcell.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	start := time.Now()
	s.Mount(0)
	s.Frame(0)

	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.TPS))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return ErrEventsClosed
			}
			now := time.Since(start)
			quit, redraw := s.HandleEvent(ev, now)
			if quit {
				s.log.Info("quit requested")
				return nil
			}
			if redraw {
				s.Frame(now)
			}
		case <-ticker.C:
			s.Frame(time.Since(start))
		}
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
