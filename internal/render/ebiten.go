//go:build ebiten

package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"
)

// NewMonoFace loads the embedded Go Mono face at the given size.
func NewMonoFace(size float64) (*text.GoTextFace, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("load mono font: %w", err)
	}
	return &text.GoTextFace{Source: src, Size: size}, nil
}

// ScreenCanvas draws glyphs onto an ebiten image, shifted by the current
// scroll offset so document coordinates land in the viewport.
type ScreenCanvas struct {
	dst     *ebiten.Image
	face    *text.GoTextFace
	offsetY float64
}

// NewScreenCanvas constructs a canvas using face for glyphs.
func NewScreenCanvas(face *text.GoTextFace) *ScreenCanvas {
	return &ScreenCanvas{face: face}
}

// Target points the canvas at dst for the current frame.
func (c *ScreenCanvas) Target(dst *ebiten.Image, offsetY float64) {
	c.dst = dst
	c.offsetY = offsetY
}

// Clear fills the target with black.
func (c *ScreenCanvas) Clear() {
	if c.dst == nil {
		return
	}
	c.dst.Fill(color.Black)
}

// DrawGlyph renders g with its glow halo. Glyphs outside the viewport are skipped.
func (c *ScreenCanvas) DrawGlyph(g Glyph) {
	if c.dst == nil || c.face == nil {
		return
	}
	y := g.Y - c.offsetY
	h := float64(c.dst.Bounds().Dy())
	if y < -GlyphSize*2 || y > h+GlyphSize*2 {
		return
	}
	scale := g.Scale
	if scale <= 0 {
		scale = 1
	}

	if g.GlowRadius > 0.5 {
		halo := g.Glow
		halo.A = uint8(40 * Clamp01(g.Alpha))
		r := float32(GlyphSize*scale/2 + g.GlowRadius)
		vector.DrawFilledCircle(c.dst, float32(g.X), float32(y), r, premultipliedAlpha(halo), true)
	}

	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(g.X, y)
	op.ColorScale.ScaleWithColor(g.Fill)
	op.ColorScale.ScaleAlpha(float32(Clamp01(g.Alpha)))
	text.Draw(c.dst, string(g.Char), c.face, op)
}

func premultipliedAlpha(c color.RGBA) color.RGBA {
	a := uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) * a / 255),
		G: uint8(uint32(c.G) * a / 255),
		B: uint8(uint32(c.B) * a / 255),
		A: c.A,
	}
}
