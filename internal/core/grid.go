package core

// Lattice describes a regular grid of square cells laid over a surface.
type Lattice struct {
	Cols, Rows int
	Cell       int
}

// NewLattice fits as many whole cells of side cell into a w*h surface as
// possible. Degenerate inputs yield an empty lattice rather than negative
// dimensions.
func NewLattice(w, h, cell int) Lattice {
	if cell <= 0 || w <= 0 || h <= 0 {
		return Lattice{Cell: max(cell, 0)}
	}
	return Lattice{Cols: w / cell, Rows: h / cell, Cell: cell}
}

// Len returns the number of cells.
func (l Lattice) Len() int { return l.Cols * l.Rows }

// Index returns the row-major slice index for column x, row y.
func (l Lattice) Index(x, y int) int { return y*l.Cols + x }

// Center returns the centre coordinate of cell (x, y).
func (l Lattice) Center(x, y int) (float64, float64) {
	half := float64(l.Cell) / 2
	return float64(x*l.Cell) + half, float64(y*l.Cell) + half
}
