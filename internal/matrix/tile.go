package matrix

import (
	"math"
	"time"
)

// Tile is one cell of the background grid.
type Tile struct {
	X, Y float64
	Char rune

	Intensity    float64
	GlitchFrames int
	Scale        float64

	LastUpdated time.Duration
}

// Glitching reports whether the tile is inside a glitch countdown.
func (t *Tile) Glitching() bool { return t.GlitchFrames > 0 }

// Window is the scroll-relative band of y coordinates considered active.
type Window struct {
	Top, Bottom float64
}

// WindowAt returns the active band for a scroll offset.
func WindowAt(scrollY, viewportH, buffer float64) Window {
	return Window{Top: scrollY - buffer, Bottom: scrollY + viewportH + buffer}
}

// Contains reports whether y lies inside the band, inclusive.
func (w Window) Contains(y float64) bool { return y >= w.Top && y <= w.Bottom }

// TargetIntensity is the inverse-linear proximity falloff: 1 at the pointer,
// 0 at or beyond radius.
func TargetIntensity(distance, radius float64) float64 {
	if radius <= 0 || distance >= radius {
		return 0
	}
	if distance <= 0 {
		return 1
	}
	return 1 - distance/radius
}

func approach(current, target, rate float64) float64 {
	next := current + (target-current)*rate
	if math.Abs(next) < 1e-9 {
		return 0
	}
	return next
}
