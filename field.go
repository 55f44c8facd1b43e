package isosurface

import "gonum.org/v1/gonum/spatial/r3"

// Field provides the scalar value at each grid point. Indices outside of
// the grid are a programming error and panic.
type Field interface {
	Value(i GIndex) float64
}

var (
	_ Field = FuncField{}
	_ Field = Samples(nil)
)

// FuncField evaluates F at the point coordinates on every call. Values
// are not memoized.
type FuncField struct {
	Points []r3.Vec
	F      Func
}

// NewFuncField returns a Field evaluating f over the points of g.
func NewFuncField(g *Grid, f Func) FuncField {
	return FuncField{Points: g.points, F: f}
}

// Value evaluates the field function at point i.
func (ff FuncField) Value(i GIndex) float64 { return ff.F(ff.Points[i]) }

// Samples is a precomputed field, one value per grid point.
type Samples []float64

// Sample evaluates f once at every point of g.
func Sample(g *Grid, f Func) Samples {
	s := make(Samples, len(g.points))
	for i, p := range g.points {
		s[i] = f(p)
	}
	return s
}

// Value returns sample i.
func (s Samples) Value(i GIndex) float64 { return s[i] }
