package core

// Size describes the dimensions of a surface in pixels.
type Size struct {
	W int
	H int
}

// Empty reports whether either dimension is non-positive.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Point is a position in document coordinates.
type Point struct {
	X, Y float64
}

// Offscreen is the pointer sentinel used before any pointer input arrives.
var Offscreen = Point{X: -9999, Y: -9999}
