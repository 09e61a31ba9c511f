package sequence

import (
	"math"
	"strings"
)

// Ease maps linear progress in [0,1] to eased progress. Every ease here is
// monotonic and fixes 0 and 1.
type Ease func(t float64) float64

// Linear is the identity ease.
func Linear(t float64) float64 { return clamp01(t) }

// Power1Out decelerates quadratically.
func Power1Out(t float64) float64 {
	t = clamp01(t)
	return 1 - (1-t)*(1-t)
}

// Power2Out decelerates cubically.
func Power2Out(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}

// Power3Out decelerates with a quartic curve.
func Power3Out(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u*u
}

// Power2InOut is a symmetric cubic ease.
func Power2InOut(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// SineInOut is a symmetric sine ease.
func SineInOut(t float64) float64 {
	t = clamp01(t)
	return -(math.Cos(math.Pi*t) - 1) / 2
}

var easesByName = map[string]Ease{
	"none":         Linear,
	"linear":       Linear,
	"power1.out":   Power1Out,
	"power2.out":   Power2Out,
	"power3.out":   Power3Out,
	"power2.inout": Power2InOut,
	"sine.inout":   SineInOut,
	"standard":     Standard,
}

// EaseByName resolves the usual animation-library names ("power2.out",
// "sine.inOut", ...). Lookup is case-insensitive.
func EaseByName(name string) (Ease, bool) {
	e, ok := easesByName[strings.ToLower(strings.TrimSpace(name))]
	return e, ok
}

func (e Ease) apply(t float64) float64 {
	if e == nil {
		return Linear(t)
	}
	return clamp01(e(t))
}

// CubicBezier returns the CSS-style timing curve through (0,0), (x1,y1),
// (x2,y2), (1,1). x1 and x2 are clamped to [0,1] so the curve stays a function.
func CubicBezier(x1, y1, x2, y2 float64) Ease {
	x1, x2 = clamp01(x1), clamp01(x2)
	bez := func(t, p1, p2 float64) float64 {
		u := 1 - t
		return 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t
	}
	return func(x float64) float64 {
		x = clamp01(x)
		lo, hi := 0.0, 1.0
		t := x
		for range 40 {
			got := bez(t, x1, x2)
			if math.Abs(got-x) < 1e-7 {
				break
			}
			if got < x {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
		}
		return bez(t, y1, y2)
	}
}

// Standard is the (0.4, 0, 0.2, 1) material curve used by the intro.
var Standard = CubicBezier(0.4, 0, 0.2, 1)
