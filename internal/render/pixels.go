package render

import "image/color"

// Band is a vertical span of rows painted with a tint.
type Band struct {
	Top, Bottom int
	Tint        color.RGBA
}

// fillBandsRGBA paints a w*h RGBA buffer with the given bands. Rows not
// covered by any band are cleared to transparent black; later bands win.
func fillBandsRGBA(buf []byte, w, h int, bands []Band) {
	if w <= 0 || h <= 0 || len(buf) < 4*w*h {
		return
	}
	clear(buf[:4*w*h])
	for _, b := range bands {
		top := max(b.Top, 0)
		bottom := min(b.Bottom, h)
		for y := top; y < bottom; y++ {
			row := y * w * 4
			for x := 0; x < w; x++ {
				base := row + x*4
				buf[base+0] = b.Tint.R
				buf[base+1] = b.Tint.G
				buf[base+2] = b.Tint.B
				buf[base+3] = b.Tint.A
			}
		}
	}
}

var (
	// FirstSectionTint marks the always-active band.
	FirstSectionTint = color.RGBA{R: 0, G: 60, B: 0, A: 70}
	// WindowTint marks the scroll window.
	WindowTint = color.RGBA{R: 20, G: 40, B: 90, A: 60}
)

// ActiveBands converts the renderer's active regions from document space to
// viewport rows. Bands wholly outside the viewport are dropped.
func ActiveBands(firstSection, windowTop, windowBottom, scrollY float64, viewportH int) []Band {
	toRows := func(top, bottom float64, tint color.RGBA) (Band, bool) {
		b := Band{Top: int(top - scrollY), Bottom: int(bottom - scrollY), Tint: tint}
		b.Top = max(b.Top, 0)
		b.Bottom = min(b.Bottom, viewportH)
		return b, b.Bottom > b.Top
	}
	var out []Band
	if b, ok := toRows(windowTop, windowBottom, WindowTint); ok {
		out = append(out, b)
	}
	if b, ok := toRows(0, firstSection, FirstSectionTint); ok {
		out = append(out, b)
	}
	return out
}

// BandMask is a reusable RGBA pixel buffer of tinted bands.
type BandMask struct {
	W, H int
	Pix  []byte
}

// Paint resizes the mask to w*h if needed and repaints it with bands.
func (m *BandMask) Paint(w, h int, bands []Band) {
	if w <= 0 || h <= 0 {
		m.W, m.H, m.Pix = 0, 0, nil
		return
	}
	if m.W != w || m.H != h || len(m.Pix) != 4*w*h {
		m.W, m.H = w, h
		m.Pix = make([]byte, 4*w*h)
	}
	fillBandsRGBA(m.Pix, w, h, bands)
}
