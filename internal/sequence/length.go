// Package sequence maps scroll position to staged entrance and exit animations
// for a fixed set of host-owned elements. Layouts are plain tables of tracks
// and groups; the Sequencer re-derives every element's visual state from the
// scroll offset on each update.
package sequence

// Viewport is the visible area the lengths in a layout resolve against.
type Viewport struct {
	W, H float64
}

// Length is a distance expressed in pixels plus viewport-relative units.
// One VW or VH is one percent of the viewport width or height.
type Length struct {
	PX, VW, VH float64
}

// PX returns a pixel length.
func PX(v float64) Length { return Length{PX: v} }

// VW returns a length in percent of viewport width.
func VW(v float64) Length { return Length{VW: v} }

// VH returns a length in percent of viewport height.
func VH(v float64) Length { return Length{VH: v} }

// Resolve converts l to pixels.
func (l Length) Resolve(vp Viewport) float64 {
	return l.PX + l.VW*vp.W/100 + l.VH*vp.H/100
}

// Range is a scroll-distance interval.
type Range struct {
	Start, End Length
}

// Bounds resolves the range to pixels.
func (r Range) Bounds(vp Viewport) (start, end float64) {
	return r.Start.Resolve(vp), r.End.Resolve(vp)
}

// Progress maps scrollY into [0,1] across the range. A range whose end does
// not lie after its start behaves as a step at start.
func (r Range) Progress(scrollY float64, vp Viewport) float64 {
	start, end := r.Bounds(vp)
	if end <= start {
		if scrollY >= start {
			return 1
		}
		return 0
	}
	return clamp01((scrollY - start) / (end - start))
}

// Contains reports whether scrollY lies inside the range, inclusive.
func (r Range) Contains(scrollY float64, vp Viewport) bool {
	start, end := r.Bounds(vp)
	return scrollY >= start && scrollY <= end
}

// Span is a sub-interval of a progress value. The zero Span covers [0,1].
type Span struct {
	From, To float64
}

// Full reports whether s is the zero Span.
func (s Span) Full() bool { return s.From == 0 && s.To == 0 }

// Local rescales progress p to the span. Before the span it is 0, after it 1.
func (s Span) Local(p float64) float64 {
	if s.Full() {
		return clamp01(p)
	}
	if s.To <= s.From {
		if p >= s.From {
			return 1
		}
		return 0
	}
	return clamp01((p - s.From) / (s.To - s.From))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
