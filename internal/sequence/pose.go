package sequence

import "fmt"

// Pose is an element's visual state before viewport units are resolved.
type Pose struct {
	Opacity float64
	X, Y    Length
	Scale   float64
	Blur    float64
}

// Shown is the resting, fully visible pose.
var Shown = Pose{Opacity: 1, Scale: 1}

// Resolve converts p to pixels for vp.
func (p Pose) Resolve(vp Viewport) Visual {
	return Visual{
		Opacity: p.Opacity,
		X:       p.X.Resolve(vp),
		Y:       p.Y.Resolve(vp),
		Scale:   p.Scale,
		Blur:    p.Blur,
	}
}

// Visual is the resolved state applied to an element handle.
type Visual struct {
	Opacity float64
	X, Y    float64
	Scale   float64
	Blur    float64
}

// Identity is the visual of an element no track has touched.
var Identity = Visual{Opacity: 1, Scale: 1}

// Lerp interpolates between a and b.
func Lerp(a, b Visual, t float64) Visual {
	mix := func(x, y float64) float64 { return x + (y-x)*t }
	return Visual{
		Opacity: mix(a.Opacity, b.Opacity),
		X:       mix(a.X, b.X),
		Y:       mix(a.Y, b.Y),
		Scale:   mix(a.Scale, b.Scale),
		Blur:    mix(a.Blur, b.Blur),
	}
}

func (v Visual) String() string {
	return fmt.Sprintf("opacity=%.2f x=%.1f y=%.1f scale=%.2f blur=%.1f", v.Opacity, v.X, v.Y, v.Scale, v.Blur)
}
