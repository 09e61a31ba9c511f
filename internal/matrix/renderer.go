// Package matrix implements the animated tile-grid backdrop: a tall canvas of
// scrambling glyphs that glow near the pointer, with update and draw work
// limited to a window around the current scroll offset.
package matrix

import (
	"log/slog"
	"math"
	"time"

	"cyberfolio/internal/core"
	"cyberfolio/internal/render"
)

// Renderer owns the tile set and all shared animation state for one backdrop
// instance. It is not safe for concurrent use; every method is expected to be
// called from the loop that owns the surface.
type Renderer struct {
	cfg      Config
	alphabet []rune
	rng      *core.RNG
	log      *slog.Logger

	tiles   []Tile
	lattice core.Lattice
	canvas  core.Size

	viewportH    float64
	firstSection float64
	window       Window

	scrollY        float64
	lastDrawScroll float64
	pointer        core.Point

	glitching int

	throttle *core.Throttle
	resize   *core.Debounce
	pending  core.Size
	dirty    bool
	closed   bool
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithLogger routes renderer diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// New constructs a Renderer. The grid stays empty until Build is called.
func New(cfg Config, opts ...Option) *Renderer {
	cfg = normalize(cfg)
	r := &Renderer{
		cfg:      cfg,
		alphabet: []rune(cfg.Alphabet),
		rng:      core.NewRNG(cfg.Seed),
		log:      slog.New(slog.DiscardHandler),
		pointer:  core.Offscreen,
		throttle: core.NewThrottle(cfg.UpdateRate),
		resize:   core.NewDebounce(cfg.ResizeQuiet),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func normalize(cfg Config) Config {
	def := DefaultConfig()
	if cfg.CanvasMultiple <= 0 {
		cfg.CanvasMultiple = def.CanvasMultiple
	}
	if cfg.UpdateRate <= 0 {
		cfg.UpdateRate = def.UpdateRate
	}
	if cfg.Alphabet == "" {
		cfg.Alphabet = def.Alphabet
	}
	if cfg.MaxGlitches < 0 {
		cfg.MaxGlitches = 0
	}
	cfg.GlitchChance = render.Clamp01(cfg.GlitchChance)
	p := &cfg.Params
	p.ApproachRate = render.Clamp01(p.ApproachRate)
	p.ReleaseRate = render.Clamp01(p.ReleaseRate)
	p.OffscreenDecay = render.Clamp01(p.OffscreenDecay)
	p.ScaleRelax = render.Clamp01(p.ScaleRelax)
	return cfg
}

// Name identifies the component on the HUD.
func (r *Renderer) Name() string { return "matrix" }

// Config returns the active configuration.
func (r *Renderer) Config() Config { return r.cfg }

// Tiles exposes the current tile set. Callers must treat it as read-only.
func (r *Renderer) Tiles() []Tile { return r.tiles }

// Lattice returns the grid dimensions.
func (r *Renderer) Lattice() core.Lattice { return r.lattice }

// CanvasSize returns the backing surface size set by the last Build.
func (r *Renderer) CanvasSize() core.Size { return r.canvas }

// FirstSection returns the height of the always-active band.
func (r *Renderer) FirstSection() float64 { return r.firstSection }

// Window returns the active band computed by the last tick.
func (r *Renderer) Window() Window { return r.window }

// Pointer returns the last pointer position in document coordinates.
func (r *Renderer) Pointer() core.Point { return r.pointer }

// Glitching returns the number of tiles counted against the glitch cap.
func (r *Renderer) Glitching() int { return r.glitching }

// Closed reports whether Close has been called.
func (r *Renderer) Closed() bool { return r.closed }

// Build discards every tile and lays out a fresh grid for the viewport. The
// backing canvas is the viewport width by CanvasMultiple viewport heights.
func (r *Renderer) Build(viewportW, viewportH int) {
	if r.closed {
		return
	}
	viewportW = max(viewportW, 0)
	viewportH = max(viewportH, 0)

	r.canvas = core.Size{W: viewportW, H: viewportH * r.cfg.CanvasMultiple}
	r.viewportH = float64(viewportH)
	r.firstSection = float64(viewportH)
	r.lattice = core.NewLattice(r.canvas.W, r.canvas.H, r.cfg.TileSize)

	r.tiles = make([]Tile, r.lattice.Len())
	for y := 0; y < r.lattice.Rows; y++ {
		for x := 0; x < r.lattice.Cols; x++ {
			cx, cy := r.lattice.Center(x, y)
			r.tiles[r.lattice.Index(x, y)] = Tile{
				X:     cx,
				Y:     cy,
				Char:  r.rng.Pick(r.alphabet),
				Scale: 1,
			}
		}
	}
	r.glitching = 0
	r.window = WindowAt(r.scrollY, r.viewportH, r.cfg.Buffer)
	r.throttle.Reset()
	r.dirty = true
	r.log.Debug("grid built", "cols", r.lattice.Cols, "rows", r.lattice.Rows, "tiles", len(r.tiles))
}

// Resize schedules a rebuild once resize input has been quiet for the
// configured period. The rebuild is applied by Frame.
func (r *Renderer) Resize(viewportW, viewportH int, now time.Duration) {
	if r.closed {
		return
	}
	r.pending = core.Size{W: viewportW, H: viewportH}
	r.resize.Poke(now)
}

// OnPointerMove records the pointer in document coordinates.
func (r *Renderer) OnPointerMove(clientX, clientY float64) {
	if r.closed {
		return
	}
	r.pointer = core.Point{X: clientX, Y: clientY + r.scrollY}
}

// OnScroll records the scroll offset. It reports true when the offset moved
// past the redraw threshold since the last forced redraw.
func (r *Renderer) OnScroll(scrollY float64) bool {
	if r.closed {
		return false
	}
	r.scrollY = scrollY
	if math.Abs(scrollY-r.lastDrawScroll) > r.cfg.ScrollRedrawDelta {
		r.lastDrawScroll = scrollY
		r.dirty = true
		return true
	}
	return false
}

// Dirty reports whether a redraw was requested since the last Draw.
func (r *Renderer) Dirty() bool { return r.dirty }

// OnClick hit-tests every tile against a tileSize square centred on it and may
// start a glitch on each tile under (x, y), given in document coordinates. It
// returns the number of tiles that started glitching.
func (r *Renderer) OnClick(x, y float64) int {
	if r.closed {
		return 0
	}
	half := float64(r.cfg.TileSize) / 2
	started := 0
	for i := range r.tiles {
		t := &r.tiles[i]
		if x < t.X-half || x > t.X+half || y < t.Y-half || y > t.Y+half {
			continue
		}
		if r.glitching >= r.cfg.MaxGlitches || r.rng.Float64() >= r.cfg.GlitchChance {
			continue
		}
		if !t.Glitching() {
			r.glitching++
		}
		t.Char = r.rng.Pick(r.alphabet)
		t.GlitchFrames = r.cfg.GlitchFrames
		started++
	}
	if started > 0 {
		r.dirty = true
	}
	return started
}

// Active reports whether a tile at y receives update and draw work.
func (r *Renderer) Active(y float64) bool {
	return y <= r.firstSection || r.window.Contains(y)
}

// Tick advances tile state when the update throttle allows it. It reports
// whether an update ran.
func (r *Renderer) Tick(now time.Duration) bool {
	if r.closed || !r.throttle.Ready(now) {
		return false
	}
	r.window = WindowAt(r.scrollY, r.viewportH, r.cfg.Buffer)
	p := r.cfg.Params

	for i := range r.tiles {
		t := &r.tiles[i]
		if !r.Active(t.Y) {
			if t.Intensity > 0 {
				t.Intensity = approach(t.Intensity, 0, p.OffscreenDecay)
			}
			// Glitches keep expiring offscreen so they cannot pin the cap.
			r.countdown(t)
			continue
		}

		distance := math.Hypot(r.pointer.X-t.X, r.pointer.Y-t.Y)
		if distance < r.cfg.Radius {
			t.Intensity = approach(t.Intensity, TargetIntensity(distance, r.cfg.Radius), p.ApproachRate)
		} else {
			t.Intensity = approach(t.Intensity, 0, p.ReleaseRate)
		}

		if t.Glitching() {
			r.countdown(t)
			t.Scale = 1 + r.rng.Float64()*p.GlitchScaleJitter
			t.Intensity = 1
		} else {
			t.Scale = approach(t.Scale-1, 0, p.ScaleRelax) + 1
		}
		t.Intensity = render.Clamp01(t.Intensity)
		t.LastUpdated = now
	}
	return true
}

func (r *Renderer) countdown(t *Tile) {
	if t.GlitchFrames <= 0 {
		return
	}
	t.GlitchFrames--
	if t.GlitchFrames == 0 && r.glitching > 0 {
		r.glitching--
	}
}

// Draw clears c and emits every tile that is active and visible. A nil canvas
// or a closed renderer draws nothing.
func (r *Renderer) Draw(c render.Canvas) {
	if r.closed || c == nil {
		return
	}
	c.Clear()
	threshold := r.cfg.Params.DrawThreshold
	for i := range r.tiles {
		t := &r.tiles[i]
		if t.Y > r.firstSection {
			if !r.window.Contains(t.Y) {
				continue
			}
			if t.Intensity < threshold && !t.Glitching() {
				continue
			}
		}
		flash := t.Glitching() && r.rng.Bool()
		c.DrawGlyph(render.TileGlyph(t.X, t.Y, t.Char, t.Intensity, t.Scale, t.Glitching(), flash))
	}
	r.dirty = false
}

// Frame runs one iteration of the animation loop: a settled resize rebuilds
// the grid, then tiles update (throttled) and draw.
func (r *Renderer) Frame(now time.Duration, c render.Canvas) {
	if r.closed {
		return
	}
	if r.resize.Due(now) {
		r.Build(r.pending.W, r.pending.H)
	}
	r.Tick(now)
	r.Draw(c)
}

// Close tears the renderer down. It is idempotent; every later call on the
// renderer is a no-op.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.resize.Cancel()
	r.tiles = nil
	r.log.Debug("renderer closed")
}
