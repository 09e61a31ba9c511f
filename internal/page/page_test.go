package page

import (
	"errors"
	"testing"
	"time"

	"cyberfolio/internal/render"
	"cyberfolio/internal/sequence"
)

func newTestPage(t *testing.T, mutate func(*Config)) *Page {
	t.Helper()
	cfg := DefaultConfig()
	cfg.SkipIntro = true
	if mutate != nil {
		mutate(&cfg)
	}
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p.Mount(1400, 800)
	return p
}

func TestMountBuildsBackdropAndDocument(t *testing.T) {
	p := newTestPage(t, nil)
	if got := len(p.Renderer().Tiles()); got != 1140 {
		t.Fatalf("tiles = %d, want 1140", got)
	}
	if p.MaxScroll() != 8000 {
		t.Fatalf("max scroll = %v, want 8000", p.MaxScroll())
	}
	if len(p.Elements()) != 10 {
		t.Fatalf("elements = %d, want 10", len(p.Elements()))
	}
	banner, ok := p.Element(Banner)
	if !ok || banner.Label == "" {
		t.Fatal("banner should carry the marquee text")
	}
}

func TestScrollClampsToDocument(t *testing.T) {
	p := newTestPage(t, nil)
	p.ScrollTo(-50)
	if p.ScrollY() != 0 {
		t.Fatalf("scroll = %v, want 0", p.ScrollY())
	}
	p.Scroll(1e6)
	if p.ScrollY() != 8000 {
		t.Fatalf("scroll = %v, want 8000", p.ScrollY())
	}
}

func TestInputWaitsForIntro(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Matrix.MaxGlitches = 1
	cfg.Matrix.GlitchChance = 1
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p.Mount(1400, 800)

	var rec render.Recorder
	p.Frame(0, &rec)
	if p.Ready() || len(rec.Glyphs) != 0 {
		t.Fatal("backdrop must not draw while the intro plays")
	}
	if p.ScrollTo(1000) || p.ScrollY() != 0 || p.Click(35, 35) != 0 {
		t.Fatal("input must be ignored while the intro plays")
	}

	for now := time.Duration(0); now <= 4*time.Second; now += 50 * time.Millisecond {
		p.Frame(now, &rec)
	}
	if !p.Ready() || len(rec.Glyphs) == 0 {
		t.Fatal("page should take over once the intro finishes")
	}
	if p.Click(35, 35) != 1 {
		t.Fatal("clicks should reach the backdrop after the intro")
	}
	if p.Logo() == "" {
		t.Fatal("logo scramble should be running")
	}
}

func TestHeroEntranceFollowsIntro(t *testing.T) {
	p, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p.Mount(1400, 800)

	step := 50 * time.Millisecond
	now := time.Duration(0)
	for ; !p.Ready(); now += step {
		if now > 5*time.Second {
			t.Fatal("intro never finished")
		}
		p.Frame(now, nil)
	}
	// The frame that finished the intro also started the entrance.
	start := now - step

	hero, _ := p.Element(Hero)
	welcome, _ := p.Element(Welcome)
	portfolio, _ := p.Element(Portfolio)
	if hero.Visual.Opacity != 0 || hero.Visual.Y != 30 {
		t.Fatalf("hero should wait out its delay, got %v", hero.Visual)
	}

	p.Frame(start+900*time.Millisecond, nil)
	if o := hero.Visual.Opacity; o <= 0 || o >= 1 {
		t.Fatalf("hero should be mid-entrance, opacity=%v", o)
	}
	if y := hero.Visual.Y; y <= 0 || y >= 30 {
		t.Fatalf("hero should be rising, y=%v", y)
	}
	if welcome.Visual.Opacity != 0 {
		t.Fatalf("welcome starts after one second, opacity=%v", welcome.Visual.Opacity)
	}

	p.Frame(start+2500*time.Millisecond, nil)
	if hero.Visual.Opacity != 1 || hero.Visual.Y != 0 {
		t.Fatalf("hero entrance should be complete, got %v", hero.Visual)
	}
	if welcome.Visual.Opacity != 1 || welcome.Visual.Y != 0 {
		t.Fatalf("welcome entrance should be complete, got %v", welcome.Visual)
	}
	if o := portfolio.Visual.Opacity; o <= 0 || o >= 1 {
		t.Fatalf("portfolio is staggered last, opacity=%v", o)
	}
	if p.Entrance().Done(start + 2500*time.Millisecond) {
		t.Fatal("entrance should still be playing")
	}
	if !p.Entrance().Done(start + 3400*time.Millisecond) {
		t.Fatal("entrance should end with the last cue")
	}
}

func TestEntranceYieldsToScrollFade(t *testing.T) {
	p := newTestPage(t, nil)
	if !p.Entrance().Done(0) {
		t.Fatal("skipping the intro should skip the entrance")
	}
	p.ScrollTo(300)
	p.Frame(0, nil)
	for _, id := range []sequence.ElementID{Hero, Welcome, Presentation, Portfolio} {
		e, _ := p.Element(id)
		if e.Visual.Opacity != 0 || e.Visual.Y != -100 {
			t.Fatalf("%s should fade with the hero section, got %v", id, e.Visual)
		}
	}
}

func TestEntranceCuesIgnoreMissingElements(t *testing.T) {
	e := NewEntrance([]Cue{{Element: "ghost", Duration: time.Second, OffsetY: 10}})
	e.Start(0)
	e.Apply(500*time.Millisecond, map[sequence.ElementID]*Element{})
	if got := e.Progress(0, 500*time.Millisecond); got != 0.5 {
		t.Fatalf("linear cue progress = %v, want 0.5", got)
	}
	if e.Progress(0, -time.Second) != 0 || e.Progress(3, time.Second) != 0 {
		t.Fatal("out-of-range queries should report no progress")
	}
}

func TestClickUsesDocumentCoordinates(t *testing.T) {
	p := newTestPage(t, func(c *Config) {
		c.Matrix.MaxGlitches = 5
		c.Matrix.GlitchChance = 1
	})
	p.ScrollTo(700)
	if n := p.Click(35, 10); n != 1 {
		t.Fatalf("click should hit the tile at document y=710, got %d", n)
	}
	for _, tile := range p.Renderer().Tiles() {
		if tile.Glitching() && (tile.X != 35 || tile.Y != 735) {
			t.Fatalf("unexpected glitching tile at (%v,%v)", tile.X, tile.Y)
		}
	}
}

func TestDeveloperSectionChoreography(t *testing.T) {
	p := newTestPage(t, nil)
	seq := p.Sequencer()
	title, _ := p.Element(Title)
	hero, _ := p.Element(Hero)

	p.Frame(0, nil)
	if hero.Visual.Opacity != 1 || title.Visual.Opacity != 0 {
		t.Fatalf("top of page: hero=%v title=%v", hero.Visual.Opacity, title.Visual.Opacity)
	}

	now := time.Duration(0)
	settle := func(y float64) {
		p.ScrollTo(y)
		for i := 0; i < 240; i++ {
			now += time.Second / 60
			p.Frame(now, nil)
		}
	}

	settle(2800)
	if hero.Visual.Opacity != 0 {
		t.Fatalf("hero should have faded, opacity=%v", hero.Visual.Opacity)
	}
	if title.Visual.Opacity != 1 || title.Visual.Blur != 0 {
		t.Fatalf("title should be fully entered, got %v", title.Visual)
	}
	if !seq.Armed(DeveloperGroup) {
		t.Fatal("exit should arm once the entrance completed outside the exit window")
	}

	settle(7000)
	if seq.Phase(DeveloperGroup) != sequence.Exiting {
		t.Fatalf("phase = %v, want exiting", seq.Phase(DeveloperGroup))
	}
	banner, _ := p.Element(Banner)
	if banner.Visual.Opacity != 0 {
		t.Fatalf("banner fades in the first part of the exit, opacity=%v", banner.Visual.Opacity)
	}
	if title.Visual.Opacity != 1 {
		t.Fatalf("title fades last, opacity=%v", title.Visual.Opacity)
	}

	settle(8000)
	for _, id := range []sequence.ElementID{Banner, Left, Right, Image, Subtitle, Title} {
		e, _ := p.Element(id)
		if e.Visual.Opacity != 0 {
			t.Fatalf("%s should be hidden past the exit window, opacity=%v", id, e.Visual.Opacity)
		}
	}
	if seq.Phase(DeveloperGroup) != sequence.Exited {
		t.Fatalf("phase = %v, want exited", seq.Phase(DeveloperGroup))
	}
}

func TestElementPositionFollowsAnchor(t *testing.T) {
	p := newTestPage(t, nil)
	p.ScrollTo(1000)
	p.Frame(0, nil)

	title, _ := p.Element(Title)
	_, fixedY := p.ElementPosition(title)
	if want := 22*800/100 + title.Visual.Y; fixedY != want {
		t.Fatalf("fixed element y = %v, want %v", fixedY, want)
	}

	left, _ := p.Element(Left)
	x, y := p.ElementPosition(left)
	if want := 470*800/100 - 1000 + left.Visual.Y; y != want {
		t.Fatalf("document element y = %v, want %v", y, want)
	}
	if want := 25*1400/100 + left.Visual.X; x != want {
		t.Fatalf("document element x = %v, want %v", x, want)
	}
}

func TestResizeBeforeMountMounts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SkipIntro = true
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p.Resize(700, 400, 0)
	if len(p.Renderer().Tiles()) == 0 || p.Viewport().H != 400 {
		t.Fatal("first resize should mount the page")
	}

	p.ScrollTo(4000)
	p.Resize(700, 200, time.Second)
	if p.ScrollY() != 2000 {
		t.Fatalf("scroll should clamp to the shorter document, got %v", p.ScrollY())
	}
}

func TestInvalidLayoutIsRejected(t *testing.T) {
	layout := DefaultLayout()
	layout.Groups[0].Fades = append(layout.Groups[0].Fades, sequence.Fade{Element: Hero})
	_, err := New(DefaultConfig(), WithLayout(layout, DefaultElements()))
	if !errors.Is(err, sequence.ErrInvalidLayout) {
		t.Fatalf("expected ErrInvalidLayout, got %v", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	p := newTestPage(t, nil)
	p.Close()
	p.Close()
	var rec render.Recorder
	p.Frame(time.Second, &rec)
	if rec.Clears != 0 {
		t.Fatal("closed page must not draw")
	}
	if p.Scroll(100) || p.Click(10, 10) != 0 {
		t.Fatal("closed page must ignore input")
	}
}

func TestMarqueeVelocity(t *testing.T) {
	m := NewMarquee(BannerItems, 10)
	m.OnScroll(2000, 100, 8000)
	if m.Velocity != 20 {
		t.Fatalf("velocity = %v, want 20", m.Velocity)
	}
	m.OnScroll(5, -40, 8000)
	if m.Velocity != 0.5 {
		t.Fatalf("near the top the banner idles at +0.5, got %v", m.Velocity)
	}
	m.OnScroll(7995, 40, 8000)
	if m.Velocity != -0.5 {
		t.Fatalf("near the bottom the banner idles at -0.5, got %v", m.Velocity)
	}
}

func TestMarqueeWraps(t *testing.T) {
	m := NewMarquee([]string{"AB"}, 10)
	if m.Width <= 0 {
		t.Fatal("width should follow the text")
	}
	m.X = -m.Width + 1
	m.Velocity = -2
	m.Step()
	if m.X != -1 {
		t.Fatalf("x = %v, want -1 after wrapping left", m.X)
	}
	m.X = -1
	m.Velocity = 3
	m.Step()
	if m.X != 2-m.Width {
		t.Fatalf("x = %v, want %v after wrapping right", m.X, 2-m.Width)
	}
}
