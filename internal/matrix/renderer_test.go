package matrix

import (
	"math"
	"strings"
	"testing"
	"time"

	"cyberfolio/internal/render"
)

func newTestRenderer(t *testing.T, mutate func(*Config)) *Renderer {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 7
	if mutate != nil {
		mutate(&cfg)
	}
	return New(cfg)
}

func TestBuildGridDimensions(t *testing.T) {
	r := newTestRenderer(t, nil)
	r.Build(1400, 800)

	l := r.Lattice()
	if l.Cols != 20 || l.Rows != 57 {
		t.Fatalf("lattice = %dx%d, want 20x57", l.Cols, l.Rows)
	}
	if got := len(r.Tiles()); got != 1140 {
		t.Fatalf("tile count = %d, want 1140", got)
	}
	if size := r.CanvasSize(); size.W != 1400 || size.H != 4000 {
		t.Fatalf("canvas = %+v, want 1400x4000", size)
	}
	if r.FirstSection() != 800 {
		t.Fatalf("first section = %v, want 800", r.FirstSection())
	}

	first := r.Tiles()[0]
	if first.X != 35 || first.Y != 35 || first.Scale != 1 {
		t.Fatalf("first tile = %+v, want centre (35,35) scale 1", first)
	}
	for _, tile := range r.Tiles() {
		if !strings.ContainsRune(DefaultAlphabet, tile.Char) {
			t.Fatalf("tile glyph %q not in alphabet", tile.Char)
		}
	}
}

func TestRebuildReplacesAllTiles(t *testing.T) {
	r := newTestRenderer(t, nil)
	r.Build(1400, 800)
	r.Tiles()[0].Intensity = 0.9
	r.Tiles()[0].GlitchFrames = 3

	r.Build(700, 350)
	want := (700 / 70) * (350 * 5 / 70)
	if got := len(r.Tiles()); got != want {
		t.Fatalf("tile count after rebuild = %d, want %d", got, want)
	}
	for i, tile := range r.Tiles() {
		if tile.Intensity != 0 || tile.GlitchFrames != 0 || tile.Scale != 1 {
			t.Fatalf("tile %d kept state across rebuild: %+v", i, tile)
		}
	}
	if r.FirstSection() != 350 {
		t.Fatalf("first section should follow the new viewport, got %v", r.FirstSection())
	}
}

func TestBuildClampsDegenerateViewport(t *testing.T) {
	r := newTestRenderer(t, nil)
	r.Build(0, 800)
	if len(r.Tiles()) != 0 {
		t.Fatalf("zero width should produce no tiles, got %d", len(r.Tiles()))
	}
	r.Build(-10, -10)
	if len(r.Tiles()) != 0 || r.CanvasSize().W != 0 || r.CanvasSize().H != 0 {
		t.Fatalf("negative viewport should clamp to empty, got %d tiles canvas %+v", len(r.Tiles()), r.CanvasSize())
	}
	r.Tick(time.Second)
	r.Draw(&render.Recorder{})
}

func TestTargetIntensityFalloff(t *testing.T) {
	cases := []struct {
		distance, radius, want float64
	}{
		{0, 250, 1},
		{250, 250, 0},
		{125, 250, 0.5},
		{400, 250, 0},
		{10, 0, 0},
	}
	for _, tc := range cases {
		if got := TargetIntensity(tc.distance, tc.radius); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("TargetIntensity(%v,%v) = %v, want %v", tc.distance, tc.radius, got, tc.want)
		}
	}
}

func TestPointerScenarioTargets(t *testing.T) {
	r := newTestRenderer(t, func(c *Config) { c.TileSize = 50 })
	r.Build(1400, 800)
	r.OnPointerMove(700, 400)

	var atPointer, atEdge *Tile
	for i := range r.Tiles() {
		tile := &r.Tiles()[i]
		if tile.X == 725 && tile.Y == 425 {
			atPointer = tile
		}
		if tile.X == 975 && tile.Y == 425 {
			atEdge = tile
		}
	}
	if atPointer == nil || atEdge == nil {
		t.Fatal("expected lattice tiles at (725,425) and (975,425)")
	}

	// Move the pointer onto the first tile; the second sits exactly one radius away.
	r.OnPointerMove(725, 425)
	r.Tick(time.Second)
	if math.Abs(atPointer.Intensity-0.2) > 1e-12 {
		t.Fatalf("tile under pointer should ease 20%% toward 1, got %v", atPointer.Intensity)
	}
	if atEdge.Intensity != 0 {
		t.Fatalf("tile at the radius should stay dark, got %v", atEdge.Intensity)
	}
}

func TestFirstSectionAlwaysUpdated(t *testing.T) {
	r := newTestRenderer(t, nil)
	r.Build(1400, 800)
	r.OnScroll(3000)

	now := 5 * time.Second
	if !r.Tick(now) {
		t.Fatal("first tick should run")
	}
	win := r.Window()
	if win.Top != 2700 || win.Bottom != 4100 {
		t.Fatalf("window = %+v, want [2700,4100]", win)
	}

	for _, tile := range r.Tiles() {
		inFirst := tile.Y <= 800
		inWindow := tile.Y >= 2700 && tile.Y <= 4100
		updated := tile.LastUpdated == now
		if updated != (inFirst || inWindow) {
			t.Fatalf("tile at y=%v updated=%v, first=%v window=%v", tile.Y, updated, inFirst, inWindow)
		}
	}
}

func TestFirstSectionKeepsReactingWhileScrolledAway(t *testing.T) {
	r := newTestRenderer(t, nil)
	r.Build(1400, 800)
	r.OnScroll(3000)
	// Pointer over tile (35,35) in document space while the viewport sits far below.
	r.OnPointerMove(35, 35-3000)
	r.Tick(time.Second)

	if got := r.Tiles()[0].Intensity; got <= 0 {
		t.Fatalf("first-section tile should react to the pointer, intensity=%v", got)
	}
}

func TestOffscreenTilesDecay(t *testing.T) {
	r := newTestRenderer(t, nil)
	r.Build(1400, 800)
	idx := -1
	for i, tile := range r.Tiles() {
		if tile.Y > 2000 {
			idx = i
			break
		}
	}
	r.Tiles()[idx].Intensity = 0.5
	r.Tick(time.Second)
	if got := r.Tiles()[idx].Intensity; math.Abs(got-0.45) > 1e-12 {
		t.Fatalf("offscreen tile should decay 10%% toward 0, got %v", got)
	}
	if r.Tiles()[idx].LastUpdated != 0 {
		t.Fatal("offscreen tile must not be processed beyond decay")
	}
}

func TestIntensityEasesWithoutJumps(t *testing.T) {
	r := newTestRenderer(t, nil)
	r.Build(1400, 800)
	r.OnPointerMove(35, 35)

	prev := 0.0
	step := time.Second / 30
	for i := 0; i < 120; i++ {
		r.Tick(time.Duration(i) * step)
		got := r.Tiles()[0].Intensity
		if got < 0 || got > 1 {
			t.Fatalf("intensity out of range: %v", got)
		}
		if got < prev {
			t.Fatalf("intensity fell while approaching target: %v -> %v", prev, got)
		}
		if want := prev + (1-prev)*0.2; math.Abs(got-want) > 1e-9 {
			t.Fatalf("tick %d: intensity %v, want smoothed %v", i, got, want)
		}
		prev = got
	}

	r.OnPointerMove(-9999, -9999)
	for i := 120; i < 240; i++ {
		r.Tick(time.Duration(i) * step)
		got := r.Tiles()[0].Intensity
		if got > prev || got < 0 {
			t.Fatalf("intensity should decay monotonically, %v -> %v", prev, got)
		}
		prev = got
	}
}

func TestTickIsThrottled(t *testing.T) {
	r := newTestRenderer(t, nil)
	r.Build(1400, 800)
	if !r.Tick(0) {
		t.Fatal("first tick should run")
	}
	if r.Tick(10 * time.Millisecond) {
		t.Fatal("tick inside the update interval must be skipped")
	}
	if !r.Tick(40 * time.Millisecond) {
		t.Fatal("tick after the update interval should run")
	}
}

func TestDrawWindowingAndThreshold(t *testing.T) {
	r := newTestRenderer(t, nil)
	r.Build(1400, 800)
	r.OnScroll(2000)
	r.Tick(time.Second)

	// Light one in-window tile beyond the first section and one outside the window.
	var lit, outside int = -1, -1
	for i, tile := range r.Tiles() {
		if lit < 0 && tile.Y > 2000 && tile.Y < 2500 {
			lit = i
		}
		if outside < 0 && tile.Y > 3500 {
			outside = i
		}
	}
	r.Tiles()[lit].Intensity = 0.5
	r.Tiles()[outside].Intensity = 0.9

	var rec render.Recorder
	r.Draw(&rec)

	firstSection := 0
	for _, tile := range r.Tiles() {
		if tile.Y <= 800 {
			firstSection++
		}
	}
	if len(rec.Glyphs) != firstSection+1 {
		t.Fatalf("drew %d glyphs, want %d first-section tiles plus one lit tile", len(rec.Glyphs), firstSection)
	}
	if rec.Clears != 1 {
		t.Fatalf("draw should clear the surface once, got %d", rec.Clears)
	}
	for _, g := range rec.Glyphs {
		if g.Y > 800 && g.Y != r.Tiles()[lit].Y {
			t.Fatalf("unexpected glyph drawn at y=%v", g.Y)
		}
	}
}

func TestClickRespectsGlitchCap(t *testing.T) {
	r := newTestRenderer(t, nil)
	r.Build(1400, 800)
	if n := r.OnClick(35, 35); n != 0 {
		t.Fatalf("default cap of zero must disable glitching, started %d", n)
	}
	for _, tile := range r.Tiles() {
		if tile.GlitchFrames != 0 {
			t.Fatal("no tile may glitch with the default cap")
		}
	}
}

func TestClickGlitchesOnlyHitTile(t *testing.T) {
	r := newTestRenderer(t, func(c *Config) {
		c.MaxGlitches = 4
		c.GlitchChance = 1
	})
	r.Build(1400, 800)

	if n := r.OnClick(35, 35); n != 1 {
		t.Fatalf("click inside one hitbox should glitch exactly one tile, got %d", n)
	}
	for i, tile := range r.Tiles() {
		if i == 0 {
			if tile.GlitchFrames != 5 {
				t.Fatalf("hit tile countdown = %d, want 5", tile.GlitchFrames)
			}
			if !strings.ContainsRune(DefaultAlphabet, tile.Char) {
				t.Fatalf("glitched glyph %q not in alphabet", tile.Char)
			}
			continue
		}
		if tile.GlitchFrames != 0 {
			t.Fatalf("tile %d outside the hitbox was affected", i)
		}
	}
	if r.Glitching() != 1 {
		t.Fatalf("glitch counter = %d, want 1", r.Glitching())
	}

	// Far below the first section but still clickable: clicks are not windowed.
	if n := r.OnClick(35, 3535); n != 1 {
		t.Fatalf("click outside the window should still hit, got %d", n)
	}
}

func TestGlitchCountdownReleasesCap(t *testing.T) {
	r := newTestRenderer(t, func(c *Config) {
		c.MaxGlitches = 1
		c.GlitchChance = 1
	})
	r.Build(1400, 800)
	r.OnClick(35, 35)
	if n := r.OnClick(105, 35); n != 0 {
		t.Fatalf("cap of one should block a second glitch, started %d", n)
	}

	step := time.Second / 30
	for i := 0; i < 5; i++ {
		r.Tick(time.Duration(i) * step)
		tile := r.Tiles()[0]
		if tile.Intensity != 1 {
			t.Fatalf("glitching tile should hold full intensity, got %v", tile.Intensity)
		}
		if tile.Scale < 1 || tile.Scale > 1.3 {
			t.Fatalf("glitch scale out of range: %v", tile.Scale)
		}
	}
	if r.Tiles()[0].GlitchFrames != 0 || r.Glitching() != 0 {
		t.Fatalf("glitch should end after 5 ticks, frames=%d counter=%d", r.Tiles()[0].GlitchFrames, r.Glitching())
	}
	if n := r.OnClick(105, 35); n != 1 {
		t.Fatalf("cap should be free again, started %d", n)
	}
}

func TestOffscreenGlitchStillExpires(t *testing.T) {
	r := newTestRenderer(t, func(c *Config) {
		c.MaxGlitches = 1
		c.GlitchChance = 1
	})
	r.Build(1400, 800)
	idx := -1
	for i, tile := range r.Tiles() {
		if tile.Y > 2000 {
			idx = i
			break
		}
	}
	far := r.Tiles()[idx]
	if n := r.OnClick(far.X, far.Y); n != 1 {
		t.Fatalf("click on the far tile started %d glitches, want 1", n)
	}

	step := time.Second / 30
	for i := 0; i < 5; i++ {
		r.Tick(time.Duration(i) * step)
	}
	tile := r.Tiles()[idx]
	if tile.GlitchFrames != 0 || r.Glitching() != 0 {
		t.Fatalf("offscreen glitch should expire, frames=%d counter=%d", tile.GlitchFrames, r.Glitching())
	}
	if tile.Scale != 1 || tile.LastUpdated != 0 {
		t.Fatalf("offscreen tile should only count down, got %+v", tile)
	}
	if n := r.OnClick(35, 35); n != 1 {
		t.Fatalf("cap should be free again, started %d", n)
	}
}

func TestScrollRedrawThreshold(t *testing.T) {
	r := newTestRenderer(t, nil)
	r.Build(1400, 800)
	r.Draw(&render.Recorder{})

	if r.OnScroll(30) {
		t.Fatal("small scroll should not force a redraw")
	}
	if !r.OnScroll(60) {
		t.Fatal("scroll past 50px should force a redraw")
	}
	if !r.Dirty() {
		t.Fatal("forced redraw should mark the renderer dirty")
	}
	if r.OnScroll(100) {
		t.Fatal("threshold is measured from the last forced redraw")
	}
}

func TestResizeIsDebounced(t *testing.T) {
	r := newTestRenderer(t, nil)
	r.Build(1400, 800)

	r.Resize(700, 400, 0)
	r.Resize(700, 350, 100*time.Millisecond)
	r.Frame(300*time.Millisecond, nil)
	if r.CanvasSize().W != 1400 {
		t.Fatal("resize must wait for the quiet period")
	}
	r.Frame(400*time.Millisecond, nil)
	if size := r.CanvasSize(); size.W != 700 || size.H != 1750 {
		t.Fatalf("canvas after settled resize = %+v, want 700x1750", size)
	}
}

func TestCloseIsIdempotentAndGuardsCallbacks(t *testing.T) {
	r := newTestRenderer(t, func(c *Config) { c.MaxGlitches = 1; c.GlitchChance = 1 })
	r.Build(1400, 800)
	r.Resize(10, 10, 0)

	r.Close()
	r.Close()

	var rec render.Recorder
	r.Frame(time.Hour, &rec)
	r.Draw(&rec)
	if rec.Clears != 0 || len(rec.Glyphs) != 0 {
		t.Fatal("closed renderer must not touch the surface")
	}
	if r.OnClick(35, 35) != 0 || r.Tick(time.Hour) || r.OnScroll(1000) {
		t.Fatal("closed renderer must ignore input")
	}
	r.Build(100, 100)
	if len(r.Tiles()) != 0 {
		t.Fatal("closed renderer must not rebuild")
	}
}

func TestDrawWithNilCanvasIsNoop(t *testing.T) {
	r := newTestRenderer(t, nil)
	r.Build(1400, 800)
	r.Draw(nil)
	r.Frame(time.Second, nil)
}

func TestFromMapOverrides(t *testing.T) {
	cfg := FromMap(map[string]string{
		"tile_size":     "40",
		"max_glitches":  "3",
		"glitch_chance": "2",
		"radius":        "-1",
		"resize_quiet":  "100ms",
		"update_rate":   "nope",
	})
	if cfg.TileSize != 40 || cfg.MaxGlitches != 3 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.GlitchChance != 1 {
		t.Fatalf("glitch chance should clamp to 1, got %v", cfg.GlitchChance)
	}
	if cfg.Radius != 250 || cfg.UpdateRate != 30 {
		t.Fatalf("invalid values should be ignored, got radius=%v rate=%v", cfg.Radius, cfg.UpdateRate)
	}
	if cfg.ResizeQuiet != 100*time.Millisecond {
		t.Fatalf("resize quiet = %v, want 100ms", cfg.ResizeQuiet)
	}
}

func TestHUDParameterSetters(t *testing.T) {
	r := newTestRenderer(t, nil)
	r.Build(1400, 800)

	if !r.SetIntParameter("max_glitches", 2) || r.Config().MaxGlitches != 2 {
		t.Fatal("max_glitches should be adjustable")
	}
	if !r.SetIntParameter("tile_size", 100) || len(r.Tiles()) != 14*40 {
		t.Fatalf("tile_size change should rebuild, got %d tiles", len(r.Tiles()))
	}
	if r.SetFloatParameter("glitch_chance", 1.5) {
		t.Fatal("glitch chance above 1 must be rejected")
	}
	if r.SetIntParameter("unknown", 1) {
		t.Fatal("unknown keys must be rejected")
	}
	p, ok := r.Parameters().Lookup("max_glitches")
	if !ok || p.Value != "2" {
		t.Fatalf("snapshot should reflect setter, got %+v", p)
	}
}
