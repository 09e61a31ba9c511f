// Package render holds the surface-neutral drawing contract shared by the
// ebiten, terminal and snapshot backends.
package render

import (
	"image/color"
	"math"
)

// Glyph is one character draw request in document coordinates.
type Glyph struct {
	X, Y  float64
	Char  rune
	Scale float64

	Fill       color.RGBA
	Glow       color.RGBA
	GlowRadius float64
	Alpha      float64
}

// Canvas is a drawing surface owned exclusively by one renderer.
type Canvas interface {
	Clear()
	DrawGlyph(g Glyph)
}

var (
	// GlitchWhite and GlitchGreen are the two colours a glitching tile flashes between.
	GlitchWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	GlitchGreen = color.RGBA{R: 0, G: 255, B: 0, A: 255}
)

// GlyphSize is the nominal glyph height in pixels (1rem).
const GlyphSize = 16

const (
	tileHue        = 120
	glitchGlow     = 10.0
	maxGlow        = 10.0
	alphaFloor     = 0.1
	alphaRange     = 0.9
	lightnessFloor = 0.5
)

// TileGlyph encodes a tile's visual state. Glitching tiles flash white or
// green (selected by flash) with a fixed glow; the rest are drawn in a single
// green hue whose lightness and glow follow intensity.
func TileGlyph(x, y float64, ch rune, intensity, scale float64, glitching, flash bool) Glyph {
	intensity = Clamp01(intensity)
	g := Glyph{
		X:     x,
		Y:     y,
		Char:  ch,
		Scale: scale,
		Alpha: alphaFloor + intensity*alphaRange,
	}
	if glitching {
		g.Fill = GlitchGreen
		if flash {
			g.Fill = GlitchWhite
		}
		g.Glow = g.Fill
		g.GlowRadius = glitchGlow
		return g
	}
	g.Fill = HSL(tileHue, 1, lightnessFloor+intensity*(1-lightnessFloor))
	g.Glow = HSL(tileHue, 1, lightnessFloor)
	g.GlowRadius = intensity * maxGlow
	return g
}

// HSL converts hue (degrees), saturation and lightness in [0,1] to RGBA.
func HSL(h, s, l float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = Clamp01(s)
	l = Clamp01(l)
	c := (1 - math.Abs(2*l-1)) * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g = c, x
	case hp < 2:
		r, g = x, c
	case hp < 3:
		g, b = c, x
	case hp < 4:
		g, b = x, c
	case hp < 5:
		r, b = x, c
	default:
		r, b = c, x
	}
	m := l - c/2
	return color.RGBA{R: channel(r + m), G: channel(g + m), B: channel(b + m), A: 255}
}

// Premultiply scales c by alpha over a black background.
func Premultiply(c color.RGBA, alpha float64) color.RGBA {
	alpha = Clamp01(alpha)
	return color.RGBA{
		R: uint8(math.Round(float64(c.R) * alpha)),
		G: uint8(math.Round(float64(c.G) * alpha)),
		B: uint8(math.Round(float64(c.B) * alpha)),
		A: 255,
	}
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func channel(v float64) uint8 {
	return uint8(math.Round(Clamp01(v) * 255))
}

// Recorder is a Canvas that keeps the glyphs of the last frame in memory.
type Recorder struct {
	Glyphs []Glyph
	Clears int
}

// Clear drops the recorded frame.
func (r *Recorder) Clear() {
	r.Glyphs = r.Glyphs[:0]
	r.Clears++
}

// DrawGlyph records g.
func (r *Recorder) DrawGlyph(g Glyph) { r.Glyphs = append(r.Glyphs, g) }
