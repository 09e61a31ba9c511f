// Package page composes the portfolio: intro splash, tile backdrop, scroll
// choreography and the banner marquee, behind one set of input callbacks that
// every surface drives the same way.
package page

import (
	"fmt"
	"log/slog"
	"time"

	"cyberfolio/internal/matrix"
	"cyberfolio/internal/render"
	"cyberfolio/internal/scramble"
	"cyberfolio/internal/sequence"
)

// Config bundles the page-level settings.
type Config struct {
	Matrix matrix.Config
	Splash scramble.SplashConfig

	// Pages is the document height in viewport heights.
	Pages float64
	// BannerAdvance is the width of one banner glyph in pixels.
	BannerAdvance float64

	Name      string
	Logo      string
	SkipIntro bool
}

// DefaultConfig returns the standard page configuration.
func DefaultConfig() Config {
	return Config{
		Matrix:        matrix.DefaultConfig(),
		Splash:        scramble.DefaultSplashConfig(),
		Pages:         11,
		BannerAdvance: 17,
		Name:          "FLAVIO JUNIOR",
		Logo:          "FJR.",
	}
}

// Page is one mounted portfolio. All methods run on the surface's loop.
type Page struct {
	cfg Config
	log *slog.Logger

	vp        sequence.Viewport
	scrollY   float64
	maxScroll float64

	renderer *matrix.Renderer
	seq      *sequence.Sequencer
	splash   *scramble.Splash
	logo     *scramble.Scrambler
	marquee  *Marquee
	entrance *Entrance

	elements []*Element
	byID     map[sequence.ElementID]*Element

	mounted bool
	closed  bool
}

// Option customises a Page.
type Option func(*options)

type options struct {
	log      *slog.Logger
	layout   *sequence.Layout
	elements []*Element
	cues     []Cue
}

// WithLogger routes diagnostics of the page and its components to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithLayout replaces the default scroll choreography.
func WithLayout(l sequence.Layout, elements []*Element) Option {
	return func(o *options) {
		o.layout = &l
		o.elements = elements
	}
}

// WithEntrance replaces the timed cues played when the intro finishes.
func WithEntrance(cues []Cue) Option {
	return func(o *options) { o.cues = cues }
}

// New builds a page. It fails only when the layout does not validate.
func New(cfg Config, opts ...Option) (*Page, error) {
	o := options{log: slog.New(slog.DiscardHandler), cues: DefaultCues()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = slog.New(slog.DiscardHandler)
	}
	layout := DefaultLayout()
	elements := DefaultElements()
	if o.layout != nil {
		layout, elements = *o.layout, o.elements
	}
	if cfg.Pages <= 1 {
		cfg.Pages = DefaultConfig().Pages
	}

	p := &Page{
		cfg:      cfg,
		log:      o.log,
		renderer: matrix.New(cfg.Matrix, matrix.WithLogger(o.log.With("component", "matrix"))),
		splash:   scramble.NewSplash(cfg.Name, cfg.Splash),
		marquee:  NewMarquee(BannerItems, cfg.BannerAdvance),
		entrance: NewEntrance(o.cues),
		elements: elements,
		byID:     make(map[sequence.ElementID]*Element, len(elements)),
	}
	logoCfg := cfg.Splash.Scramble
	logoCfg.Loop = true
	p.logo = scramble.New(cfg.Logo, logoCfg)

	seqLog := o.log.With("component", "sequence")
	seq, err := sequence.New(layout,
		sequence.WithLogger(seqLog),
		sequence.WithPhaseObserver(func(group string, from, to sequence.Phase) {
			seqLog.Debug("group phase", "group", group, "from", from, "to", to, "scroll", p.scrollY)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("page layout: %w", err)
	}
	p.seq = seq

	for _, e := range elements {
		p.byID[e.ID] = e
		if e.ID == Banner && e.Label == "" {
			e.Label = p.marquee.Text
		}
		if !seq.Bind(e.ID, e) {
			p.log.Warn("element not in layout", "id", e.ID)
		}
	}
	if cfg.SkipIntro {
		p.splash.Skip()
		p.entrance.Finish()
	}
	return p, nil
}

// Mount sizes the page for a viewport and builds the backdrop grid.
func (p *Page) Mount(w, h int) {
	if p.closed {
		return
	}
	p.setViewport(w, h)
	p.renderer.Build(w, h)
	p.mounted = true
	p.log.Info("page mounted", "width", w, "height", h, "tiles", len(p.renderer.Tiles()))
}

func (p *Page) setViewport(w, h int) {
	p.vp = sequence.Viewport{W: float64(max(w, 0)), H: float64(max(h, 0))}
	p.maxScroll = max(p.vp.H*(p.cfg.Pages-1), 0)
	p.scrollY = min(p.scrollY, p.maxScroll)
}

// Resize applies a new viewport. Layout follows immediately; the backdrop
// rebuild waits for resize input to settle.
func (p *Page) Resize(w, h int, now time.Duration) {
	if p.closed {
		return
	}
	if !p.mounted {
		p.Mount(w, h)
		return
	}
	p.setViewport(w, h)
	p.renderer.Resize(w, h, now)
	p.renderer.OnScroll(p.scrollY)
}

// Scroll moves the page by delta pixels. It reports whether the backdrop
// asked for a redraw.
func (p *Page) Scroll(delta float64) bool {
	return p.ScrollTo(p.scrollY + delta)
}

// ScrollTo moves the page to y, clamped to the document.
func (p *Page) ScrollTo(y float64) bool {
	if p.closed || !p.Ready() {
		return false
	}
	y = min(max(y, 0), p.maxScroll)
	delta := y - p.scrollY
	p.scrollY = y
	if delta != 0 {
		p.marquee.OnScroll(y, delta, p.maxScroll)
	}
	return p.renderer.OnScroll(y)
}

// PointerMove forwards a pointer position in viewport coordinates.
func (p *Page) PointerMove(clientX, clientY float64) {
	if p.closed || !p.Ready() {
		return
	}
	p.renderer.OnPointerMove(clientX, clientY)
}

// Click forwards a click in viewport coordinates and returns the number of
// tiles that started glitching.
func (p *Page) Click(clientX, clientY float64) int {
	if p.closed || !p.Ready() {
		return 0
	}
	n := p.renderer.OnClick(clientX, clientY+p.scrollY)
	if n > 0 {
		p.log.Debug("glitch", "tiles", n, "active", p.renderer.Glitching())
	}
	return n
}

// Ready reports whether the intro has finished and the page takes input.
func (p *Page) Ready() bool { return p.splash.Done() }

// Frame runs one loop iteration. While the intro plays only the splash
// advances; afterwards the backdrop draws into c, every element is re-derived
// from the scroll offset and the entrance cues are layered on top.
func (p *Page) Frame(now time.Duration, c render.Canvas) {
	if p.closed {
		return
	}
	if !p.splash.Done() {
		p.splash.Advance(now)
		if !p.splash.Done() {
			return
		}
		p.log.Info("intro finished")
		p.entrance.Start(now)
	}
	p.logo.Advance(now)
	p.renderer.Frame(now, c)
	p.seq.Update(p.scrollY, p.vp, now)
	p.entrance.Apply(now, p.byID)
	p.marquee.Step()
}

// ElementPosition returns where e's anchor sits in viewport coordinates,
// including its animated offset.
func (p *Page) ElementPosition(e *Element) (x, y float64) {
	x = e.Anchor.X.Resolve(p.vp) + e.Visual.X
	y = e.Anchor.Y.Resolve(p.vp) + e.Visual.Y
	if !e.Anchor.Fixed {
		y -= p.scrollY
	}
	if e.ID == Banner {
		x += p.marquee.X
	}
	return x, y
}

// Elements returns the element handles in draw order.
func (p *Page) Elements() []*Element { return p.elements }

// Element looks up a handle by id.
func (p *Page) Element(id sequence.ElementID) (*Element, bool) {
	e, ok := p.byID[id]
	return e, ok
}

func (p *Page) ScrollY() float64               { return p.scrollY }
func (p *Page) MaxScroll() float64             { return p.maxScroll }
func (p *Page) Viewport() sequence.Viewport    { return p.vp }
func (p *Page) Renderer() *matrix.Renderer     { return p.renderer }
func (p *Page) Sequencer() *sequence.Sequencer { return p.seq }
func (p *Page) Splash() *scramble.Splash       { return p.splash }
func (p *Page) Marquee() *Marquee              { return p.marquee }
func (p *Page) Entrance() *Entrance            { return p.entrance }

// Logo returns the current frame of the looping navbar logo.
func (p *Page) Logo() string { return p.logo.Text() }

// Close tears down the backdrop and the sequencer. It is idempotent.
func (p *Page) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.renderer.Close()
	p.seq.Close()
	p.log.Info("page closed")
}
