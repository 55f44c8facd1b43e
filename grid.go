package isosurface

import (
	"fmt"
	"math"

	"github.com/soypat/isosurface/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Grid is a set of sample points and a tetrahedral decomposition of the
// space they span. A Grid is immutable once built and may be shared by
// any number of extractions.
type Grid struct {
	points []r3.Vec
	tetras []Tetrahedron
	// lattice extents for box basis grids.
	dims [3]int
}

// NewBoxBasisGrid builds a lattice over the oriented box spanned by b1, b2
// and b3 from origin. Point (i,j,k) lies at origin + i*b1 + j*b2 + k*b3 and
// is stored at index k + m3*(j + m2*i). Each extent n is rounded up to the
// nearest odd number m since tetrahedra are laid out over 2x2x2 blocks of
// unit cells. NewBoxBasisGrid panics if an extent is less than 1.
func NewBoxBasisGrid(origin, b1, b2, b3 r3.Vec, n1, n2, n3 int) *Grid {
	if n1 < 1 || n2 < 1 || n3 < 1 {
		panic("grid extents must be 1 or larger")
	}
	m1, m2, m3 := oddCeil(n1), oddCeil(n2), oddCeil(n3)
	g := &Grid{
		points: make([]r3.Vec, 0, m1*m2*m3),
		tetras: make([]Tetrahedron, 0, 5*(m1-1)*(m2-1)*(m3-1)),
		dims:   [3]int{m1, m2, m3},
	}
	idx := func(i, j, k int) GIndex { return GIndex(k + m3*(j+m2*i)) }
	for i := 0; i < m1; i++ {
		pi := r3.Add(origin, r3.Scale(float64(i), b1))
		for j := 0; j < m2; j++ {
			pj := r3.Add(pi, r3.Scale(float64(j), b2))
			for k := 0; k < m3; k++ {
				g.points = append(g.points, r3.Add(pj, r3.Scale(float64(k), b3)))
				if i >= 2 && j >= 2 && k >= 2 && i%2 == 0 && j%2 == 0 && k%2 == 0 {
					g.addBlock(idx, i, j, k)
				}
			}
		}
	}
	return g
}

// NewBoundsGrid returns a box basis grid with cubic cells covering bb.
// The box is scaled about its center so the boundaries aren't on the
// surface of a shape bounded by bb. cells is the number of samples along
// the longest axis and must be 3 or larger. Like every box basis extent it
// is rounded up to the next odd number, so even cells yield cells+1 samples.
func NewBoundsGrid(bb r3.Box, cells int) *Grid {
	if cells < 3 {
		panic("cells must be 3 or larger")
	}
	box := d3.Box(bb).ScaleAboutCenter(1.01)
	size := box.Size()
	resolution := d3.Max(size) / float64(cells-1)
	if !(resolution > 0) || math.IsInf(resolution, 0) {
		panic("bad bounding box")
	}
	// Tolerance keeps the longest axis at exactly cells samples.
	n := func(side float64) int { return int(math.Ceil(side/resolution-1e-6)) + 1 }
	return NewBoxBasisGrid(box.Min,
		r3.Vec{X: resolution}, r3.Vec{Y: resolution}, r3.Vec{Z: resolution},
		n(size.X), n(size.Y), n(size.Z),
	)
}

// NewGrid builds a grid from an externally generated tetrahedral
// decomposition. The tetrahedra are checked to reference distinct,
// existing points. The slices are not copied.
func NewGrid(points []r3.Vec, tetras []Tetrahedron) (*Grid, error) {
	n := GIndex(len(points))
	for it, t := range tetras {
		for i, a := range t {
			if a < 0 || a >= n {
				return nil, fmt.Errorf("tetrahedron %d vertex %d: %w (index %d, %d points)", it, i, ErrIndexOutOfRange, a, n)
			}
			for _, b := range t[i+1:] {
				if a == b {
					return nil, fmt.Errorf("tetrahedron %d %v: %w", it, t, ErrDegenerateTetrahedron)
				}
			}
		}
	}
	return &Grid{points: points, tetras: tetras}, nil
}

// addBlock splits the 2x2x2 block of unit cells whose far corner is the
// all-even lattice position (i,j,k) into 40 tetrahedra.
func (g *Grid) addBlock(idx func(i, j, k int) GIndex, i, j, k int) {
	for dk := 0; dk <= 2; dk += 2 {
		for dj := 0; dj <= 2; dj += 2 {
			for di := 0; di <= 2; di += 2 {
				g.addCube(idx, i-di, i-1, j-dj, j-1, k-dk, k-1)
			}
		}
	}
}

// addCube splits the unit cube spanning i..ii, j..jj, k..kk into five
// tetrahedra. (i,j,k) is an all-even corner and (ii,jj,kk) the block center.
// The four ear tetrahedra are anchored at the corners with an even count of
// odd coordinates so every cube face is cut along the diagonal joining
// those corners, whichever cube the face belongs to.
func (g *Grid) addCube(idx func(i, j, k int) GIndex, i, ii, j, jj, k, kk int) {
	g.tetras = append(g.tetras,
		Tetrahedron{idx(i, j, k), idx(ii, j, k), idx(i, jj, k), idx(i, j, kk)},
		Tetrahedron{idx(ii, jj, k), idx(ii, j, k), idx(i, jj, k), idx(ii, jj, kk)},
		Tetrahedron{idx(i, jj, kk), idx(i, j, kk), idx(ii, jj, kk), idx(i, jj, k)},
		Tetrahedron{idx(ii, j, kk), idx(ii, jj, kk), idx(i, j, kk), idx(ii, j, k)},
		// Central tetrahedron.
		Tetrahedron{idx(ii, jj, kk), idx(i, j, kk), idx(ii, j, k), idx(i, jj, k)},
	)
}

// Len returns the number of grid points.
func (g *Grid) Len() int { return len(g.points) }

// Point returns the position of grid point i.
func (g *Grid) Point(i GIndex) r3.Vec { return g.points[i] }

// Points returns the grid points. The returned slice must not be modified.
func (g *Grid) Points() []r3.Vec { return g.points }

// Tetrahedra returns the grid decomposition in construction order.
// The returned slice must not be modified.
func (g *Grid) Tetrahedra() []Tetrahedron { return g.tetras }

// Dims returns the lattice extents of a box basis grid. It returns
// zeros for grids built by other means.
func (g *Grid) Dims() [3]int { return g.dims }

// RelevantPoints returns for each grid point whether it belongs to a
// tetrahedron whose vertex values do not share a sign. Only those points
// are near the surface.
func (g *Grid) RelevantPoints(f Field) []bool {
	relevant := make([]bool, len(g.points))
	for _, t := range g.tetras {
		if !mixedSign(t, f) {
			continue
		}
		for _, i := range t {
			relevant[i] = true
		}
	}
	return relevant
}

// Band returns a grid with the same points as g keeping only the tetrahedra
// the surface of f passes through. Extracting from the band grid gives the
// same mesh as extracting from g.
func (g *Grid) Band(f Field) *Grid {
	var band []Tetrahedron
	for _, t := range g.tetras {
		if mixedSign(t, f) {
			band = append(band, t)
		}
	}
	return &Grid{points: g.points, tetras: band, dims: g.dims}
}

// mixedSign reports whether t has vertices on both sides of the surface.
func mixedSign(t Tetrahedron, f Field) bool {
	neg := 0
	for _, i := range t {
		if f.Value(i) < 0 {
			neg++
		}
	}
	return neg > 0 && neg < 4
}

// oddCeil rounds n up to the nearest odd number.
func oddCeil(n int) int {
	return n + (1 - n%2)
}
