//go:build ebiten

package ui

import (
	"image/color"

	"cyberfolio/internal/core"
	"cyberfolio/internal/matrix"
	"cyberfolio/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// scrollSource reports the current document offset.
type scrollSource interface {
	ScrollY() float64
}

// Overlay draws optional debugging visuals on top of the backdrop.
type Overlay struct {
	renderer *matrix.Renderer
	scroll   scrollSource

	showBands   bool
	showPointer bool
	showHitbox  bool

	mask    render.BandMask
	maskImg *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(r *matrix.Renderer, scroll scrollSource) *Overlay {
	return &Overlay{renderer: r, scroll: scroll}
}

// Update toggles overlay layers from the number keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showBands = !o.showBands
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showPointer = !o.showPointer
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showHitbox = !o.showHitbox
	}
}

// Draw renders the enabled layers onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.renderer == nil || o.renderer.Closed() {
		return
	}
	scrollY := 0.0
	if o.scroll != nil {
		scrollY = o.scroll.ScrollY()
	}
	if o.showBands {
		o.drawBands(screen, scrollY)
	}
	if o.showPointer {
		o.drawPointer(screen, scrollY)
	}
	if o.showHitbox {
		o.drawHitboxes(screen, scrollY)
	}
}

func (o *Overlay) drawBands(screen *ebiten.Image, scrollY float64) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	win := o.renderer.Window()
	bands := render.ActiveBands(o.renderer.FirstSection(), win.Top, win.Bottom, scrollY, h)
	o.mask.Paint(w, h, bands)
	if o.mask.W == 0 {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != w || o.maskImg.Bounds().Dy() != h {
		o.maskImg = ebiten.NewImage(w, h)
	}
	o.maskImg.WritePixels(o.mask.Pix)
	screen.DrawImage(o.maskImg, nil)
}

func (o *Overlay) drawPointer(screen *ebiten.Image, scrollY float64) {
	p := o.renderer.Pointer()
	if p == core.Offscreen {
		return
	}
	x, y := float32(p.X), float32(p.Y-scrollY)
	radius := float32(o.renderer.Config().Radius)
	vector.StrokeCircle(screen, x, y, radius, 1.5, color.RGBA{R: 120, G: 255, B: 140, A: 160}, true)
	vector.DrawFilledCircle(screen, x, y, 3, color.RGBA{R: 120, G: 255, B: 140, A: 255}, true)
}

// drawHitboxes outlines the click square of every visible tile; glitching
// tiles are drawn in red.
func (o *Overlay) drawHitboxes(screen *ebiten.Image, scrollY float64) {
	size := float32(o.renderer.Config().TileSize)
	half := size / 2
	h := float64(screen.Bounds().Dy())
	for _, t := range o.renderer.Tiles() {
		y := t.Y - scrollY
		if y < -float64(half) || y > h+float64(half) {
			continue
		}
		clr := color.RGBA{R: 60, G: 90, B: 70, A: 90}
		if t.Glitching() {
			clr = color.RGBA{R: 255, G: 80, B: 80, A: 200}
		}
		vector.StrokeRect(screen, float32(t.X)-half, float32(y)-half, size, size, 1, clr, false)
	}
}
