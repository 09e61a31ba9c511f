//go:build ebiten

package app

import (
	"image/color"
	"strings"
	"time"

	"cyberfolio/internal/page"
	"cyberfolio/internal/render"
	"cyberfolio/internal/scramble"
	"cyberfolio/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

const (
	wheelStep = 60
	keyStep   = 40
	hudWidth  = 260
)

// Game adapts a portfolio page to the ebiten.Game interface.
type Game struct {
	page    *page.Page
	canvas  *render.ScreenCanvas
	frame   render.Recorder
	hud     *ui.HUD
	overlay *ui.Overlay

	face  *text.GoTextFace
	faces map[float64]*text.GoTextFace

	tps     int
	now     time.Duration
	w, h    int
	cursorX int
	cursorY int
	showHUD bool
}

// New constructs a Game for the provided page.
func New(p *page.Page, cfg *Config) (*Game, error) {
	face, err := render.NewMonoFace(render.GlyphSize)
	if err != nil {
		return nil, err
	}
	tps := cfg.TPS
	if tps <= 0 {
		tps = 60
	}
	return &Game{
		page:    p,
		canvas:  render.NewScreenCanvas(face),
		hud:     ui.NewHUD(p.Renderer(), hudWidth),
		overlay: ui.NewOverlay(p.Renderer(), p),
		face:    face,
		faces:   make(map[float64]*text.GoTextFace),
		tps:     tps,
		cursorX: -1,
		cursorY: -1,
	}, nil
}

// Update handles per-frame input and advances the page by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	g.now += time.Second / time.Duration(g.tps)

	g.handleScroll()

	mx, my := ebiten.CursorPosition()
	if mx != g.cursorX || my != g.cursorY {
		g.cursorX, g.cursorY = mx, my
		g.page.PointerMove(float64(mx), float64(my))
	}

	onPanel := false
	if g.showHUD {
		onPanel = g.hud.Update(g.w - g.hud.Width())
	}
	if !onPanel && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.page.Click(float64(mx), float64(my))
	}
	g.overlay.Update()

	g.page.Frame(g.now, &g.frame)
	return nil
}

func (g *Game) handleScroll() {
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.page.Scroll(-dy * wheelStep)
	}
	screenful := float64(g.h) * 0.9
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		g.page.Scroll(keyStep)
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		g.page.Scroll(-keyStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.page.Scroll(screenful)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		g.page.Scroll(-screenful)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		g.page.ScrollTo(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		g.page.ScrollTo(g.page.MaxScroll())
	}
}

// Draw renders the current page state.
func (g *Game) Draw(screen *ebiten.Image) {
	if !g.page.Ready() {
		g.drawSplash(screen, g.page.Splash().Frame(g.now))
		return
	}
	screen.Fill(color.Black)
	g.canvas.Target(screen, g.page.ScrollY())
	for _, glyph := range g.frame.Glyphs {
		g.canvas.DrawGlyph(glyph)
	}
	for _, e := range g.page.Elements() {
		g.drawElement(screen, e)
	}
	g.drawText(screen, g.page.Logo(), g.face, 24, 20, 1, 1, 0, text.AlignStart, color.RGBA{R: 120, G: 255, B: 140, A: 255})
	g.overlay.Draw(screen)
	if g.showHUD {
		g.hud.Draw(screen, g.w-g.hud.Width(), g.h)
	}
}

func (g *Game) drawSplash(screen *ebiten.Image, f scramble.SplashFrame) {
	screen.Fill(f.Background)
	if f.Opacity <= 0 {
		return
	}
	g.drawText(screen, f.Text, g.sizedFace(64), float64(g.w)/2, float64(g.h)/2, f.Opacity, f.Scale, f.Blur, text.AlignCenter, color.Black)
}

func (g *Game) drawElement(screen *ebiten.Image, e *page.Element) {
	v := e.Visual
	if v.Opacity <= 0 || e.Label == "" {
		return
	}
	x, y := g.page.ElementPosition(e)
	face := g.sizedFace(e.Size)
	if e.ID == page.Banner {
		// Two copies cover the wrap seam of the marquee.
		width := g.page.Marquee().Width
		for _, dx := range []float64{0, width} {
			g.drawText(screen, e.Label, face, x+dx, y, v.Opacity, v.Scale, v.Blur, text.AlignStart, color.White)
		}
		return
	}
	lines := wrapLines(e.Label, face, float64(g.w)*0.4)
	lineHeight := e.Size * 1.2
	top := y - lineHeight*float64(len(lines)-1)/2
	for i, line := range lines {
		g.drawText(screen, line, face, x, top+float64(i)*lineHeight, v.Opacity, v.Scale, v.Blur, text.AlignCenter, color.White)
	}
}

// drawText renders s centred vertically on y. Blur is approximated by faint
// copies offset around the glyphs.
func (g *Game) drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y, opacity, scale, blur float64, align text.Align, clr color.Color) {
	if scale <= 0 {
		scale = 1
	}
	draw := func(dx, dy, alpha float64) {
		op := &text.DrawOptions{}
		op.PrimaryAlign = align
		op.SecondaryAlign = text.AlignCenter
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x+dx, y+dy)
		op.ColorScale.ScaleWithColor(clr)
		op.ColorScale.ScaleAlpha(float32(render.Clamp01(alpha)))
		text.Draw(screen, s, face, op)
	}
	if blur > 0.5 {
		spread := blur / 2
		for _, d := range [][2]float64{{-spread, 0}, {spread, 0}, {0, -spread}, {0, spread}} {
			draw(d[0], d[1], opacity*0.25)
		}
		draw(0, 0, opacity*0.5)
		return
	}
	draw(0, 0, opacity)
}

func (g *Game) sizedFace(size float64) *text.GoTextFace {
	if f, ok := g.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: g.face.Source, Size: size}
	g.faces[size] = f
	return f
}

// Layout tracks the window size and forwards changes to the page.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.page.Resize(g.w, g.h, g.now)
	}
	return g.w, g.h
}

func wrapLines(s string, face *text.GoTextFace, maxWidth float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if width, _ := text.Measure(candidate, face, 0); width > maxWidth {
			lines = append(lines, line)
			line = w
			continue
		}
		line = candidate
	}
	return append(lines, line)
}
