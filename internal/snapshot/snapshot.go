// Package snapshot renders a page offscreen with gogpu/gg and encodes the
// result as PNG. It drives the page through the same Frame loop as the
// interactive surfaces, using a fixed frame clock.
package snapshot

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"time"

	"cyberfolio/internal/core"
	"cyberfolio/internal/page"
	"cyberfolio/internal/render"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gomono"
)

// Options selects the moment to capture.
type Options struct {
	Width, Height int
	ScrollY       float64
	// Frames is the number of 60 Hz frames run before capturing.
	Frames int
	// Pointer, when set, is held at this viewport position for every frame.
	Pointer *core.Point
	// Clicks are issued in viewport coordinates before the first frame.
	Clicks []core.Point
}

const frameStep = time.Second / 60

// Canvas draws glyphs onto a gg context, shifted by the scroll offset.
type Canvas struct {
	ctx     *gg.Context
	src     *text.FontSource
	faces   map[int]text.Face
	offsetY float64
}

// NewCanvas allocates a w*h drawing context with the embedded mono font.
func NewCanvas(w, h int) (*Canvas, error) {
	src, err := text.NewFontSource(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("load mono font: %w", err)
	}
	return &Canvas{ctx: gg.NewContext(w, h), src: src, faces: make(map[int]text.Face)}, nil
}

func (c *Canvas) face(size float64) text.Face {
	key := max(int(math.Round(size)), 1)
	if f, ok := c.faces[key]; ok {
		return f
	}
	f := c.src.Face(float64(key))
	c.faces[key] = f
	return f
}

// Clear implements render.Canvas.
func (c *Canvas) Clear() {
	c.ctx.ClearWithColor(gg.FromColor(color.Black))
}

// DrawGlyph implements render.Canvas.
func (c *Canvas) DrawGlyph(g render.Glyph) {
	y := g.Y - c.offsetY
	if y < -render.GlyphSize*2 || y > float64(c.ctx.Height())+render.GlyphSize*2 {
		return
	}
	scale := g.Scale
	if scale <= 0 {
		scale = 1
	}
	alpha := render.Clamp01(g.Alpha)
	if g.GlowRadius > 0.5 {
		setColor(c.ctx, g.Glow, 40.0/255*alpha)
		c.ctx.DrawCircle(g.X, y, render.GlyphSize*scale/2+g.GlowRadius)
		_ = c.ctx.Fill()
	}
	setColor(c.ctx, g.Fill, alpha)
	c.ctx.SetFont(c.face(render.GlyphSize * scale))
	c.ctx.DrawStringAnchored(string(g.Char), g.X, y, 0.5, 0.5)
}

// DrawText draws s centred on (x, y) in white at the given size and opacity.
func (c *Canvas) DrawText(s string, x, y, size, opacity float64) {
	if opacity <= 0 || s == "" {
		return
	}
	setColor(c.ctx, color.RGBA{R: 255, G: 255, B: 255, A: 255}, opacity)
	c.ctx.SetFont(c.face(size))
	c.ctx.DrawStringAnchored(s, x, y, 0.5, 0.5)
}

// EncodePNG writes the current image.
func (c *Canvas) EncodePNG(w io.Writer) error { return c.ctx.EncodePNG(w) }

// Close releases the drawing context.
func (c *Canvas) Close() error { return c.ctx.Close() }

func setColor(ctx *gg.Context, clr color.RGBA, alpha float64) {
	ctx.SetRGBA(float64(clr.R)/255, float64(clr.G)/255, float64(clr.B)/255, render.Clamp01(alpha))
}

// Render mounts p at the requested size, replays the options and writes one
// PNG frame to w. The page should have its intro skipped; otherwise the
// capture shows whatever the backdrop drew once the intro ends, if ever.
func Render(p *page.Page, opts Options, w io.Writer) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("snapshot: invalid size %dx%d", opts.Width, opts.Height)
	}
	frames := max(opts.Frames, 1)

	c, err := NewCanvas(opts.Width, opts.Height)
	if err != nil {
		return err
	}
	defer c.Close()

	p.Mount(opts.Width, opts.Height)
	p.ScrollTo(opts.ScrollY)
	for _, click := range opts.Clicks {
		p.Click(click.X, click.Y)
	}

	c.Clear()
	for i := 0; i < frames; i++ {
		if opts.Pointer != nil {
			p.PointerMove(opts.Pointer.X, opts.Pointer.Y)
		}
		var canvas render.Canvas
		if i == frames-1 {
			c.offsetY = p.ScrollY()
			canvas = c
		}
		p.Frame(time.Duration(i)*frameStep, canvas)
	}

	for _, e := range p.Elements() {
		if e.Label == "" || e.ID == page.Banner {
			continue
		}
		x, y := p.ElementPosition(e)
		scale := e.Visual.Scale
		if scale <= 0 {
			scale = 1
		}
		c.DrawText(e.Label, x, y, e.Size*scale, e.Visual.Opacity)
	}
	if banner, ok := p.Element(page.Banner); ok && banner.Visual.Opacity > 0 {
		x, y := p.ElementPosition(banner)
		c.drawBanner(banner.Label, x, y, banner.Size, banner.Visual.Opacity)
	}

	if err := c.EncodePNG(w); err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return nil
}

func (c *Canvas) drawBanner(label string, x, y, size, opacity float64) {
	setColor(c.ctx, color.RGBA{R: 255, G: 255, B: 255, A: 255}, opacity)
	c.ctx.SetFont(c.face(size))
	c.ctx.DrawStringAnchored(label, x, y, 0, 0.5)
}
