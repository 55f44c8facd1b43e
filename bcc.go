package isosurface

import (
	"math"

	"github.com/soypat/isosurface/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// NewBCCGrid returns a body centered cubic lattice grid tiling bb: the
// corners of cells of side close to resolution plus one node at the center
// of each cell. Tetrahedra join the centers of face-adjacent cells with the
// edges of their shared face. Faces on the boundary of bb are joined to their
// cell center by two tetrahedra. BCC tetrahedra are better shaped than those
// of a box basis grid of the same resolution.
// Inspired by Tetrahedral Mesh Generation for Deformable Bodies
// Molino, Bridson, Fedkiw.
func NewBCCGrid(bb r3.Box, resolution float64) *Grid {
	size := d3.Box(bb).Size()
	ncell := func(side float64) int { return int(math.Ceil(side / resolution)) }
	div := [3]int{ncell(size.X), ncell(size.Y), ncell(size.Z)}
	if div[0] < 1 || div[1] < 1 || div[2] < 1 {
		panic("resolution too low or empty bounding box")
	}
	cell := r3.Vec{
		X: size.X / float64(div[0]),
		Y: size.Y / float64(div[1]),
		Z: size.Z / float64(div[2]),
	}
	ncorners := (div[0] + 1) * (div[1] + 1) * (div[2] + 1)
	ncenters := div[0] * div[1] * div[2]
	g := &Grid{
		points: make([]r3.Vec, 0, ncorners+ncenters),
		tetras: make([]Tetrahedron, 0, 12*ncenters),
	}
	corner := func(i, j, k int) GIndex {
		return GIndex(k + (div[2]+1)*(j+(div[1]+1)*i))
	}
	center := func(i, j, k int) GIndex {
		return GIndex(ncorners + k + div[2]*(j+div[1]*i))
	}
	at := func(x, y, z float64) r3.Vec {
		return r3.Add(bb.Min, r3.Vec{X: x * cell.X, Y: y * cell.Y, Z: z * cell.Z})
	}
	for i := 0; i <= div[0]; i++ {
		for j := 0; j <= div[1]; j++ {
			for k := 0; k <= div[2]; k++ {
				g.points = append(g.points, at(float64(i), float64(j), float64(k)))
			}
		}
	}
	for i := 0; i < div[0]; i++ {
		for j := 0; j < div[1]; j++ {
			for k := 0; k < div[2]; k++ {
				g.points = append(g.points, at(float64(i)+0.5, float64(j)+0.5, float64(k)+0.5))
			}
		}
	}

	for i := 0; i < div[0]; i++ {
		for j := 0; j < div[1]; j++ {
			for k := 0; k < div[2]; k++ {
				c := center(i, j, k)
				// Faces normal to x, y and z, given in cyclic order.
				xface := func(x int) [4]GIndex {
					return [4]GIndex{corner(x, j, k), corner(x, j+1, k), corner(x, j+1, k+1), corner(x, j, k+1)}
				}
				yface := func(y int) [4]GIndex {
					return [4]GIndex{corner(i, y, k), corner(i+1, y, k), corner(i+1, y, k+1), corner(i, y, k+1)}
				}
				zface := func(z int) [4]GIndex {
					return [4]GIndex{corner(i, j, z), corner(i+1, j, z), corner(i+1, j+1, z), corner(i, j+1, z)}
				}
				// Minus side faces are shared with the previous cell when it exists.
				if i > 0 {
					g.addOctahedron(c, center(i-1, j, k), xface(i))
				} else {
					g.addPyramid(c, xface(i))
				}
				if j > 0 {
					g.addOctahedron(c, center(i, j-1, k), yface(j))
				} else {
					g.addPyramid(c, yface(j))
				}
				if k > 0 {
					g.addOctahedron(c, center(i, j, k-1), zface(k))
				} else {
					g.addPyramid(c, zface(k))
				}
				// Plus side faces are only meshed on the boundary.
				if i == div[0]-1 {
					g.addPyramid(c, xface(i+1))
				}
				if j == div[1]-1 {
					g.addPyramid(c, yface(j+1))
				}
				if k == div[2]-1 {
					g.addPyramid(c, zface(k+1))
				}
			}
		}
	}
	return g
}

// addOctahedron splits the octahedron formed by two cell centers and their
// shared face into four tetrahedra around the center to center axis.
func (g *Grid) addOctahedron(c1, c2 GIndex, face [4]GIndex) {
	for l := range face {
		g.tetras = append(g.tetras, Tetrahedron{c1, c2, face[l], face[(l+1)%4]})
	}
}

// addPyramid splits the pyramid joining a cell center to a boundary face
// along the face diagonal face[0]-face[2].
func (g *Grid) addPyramid(c GIndex, face [4]GIndex) {
	g.tetras = append(g.tetras,
		Tetrahedron{c, face[0], face[1], face[2]},
		Tetrahedron{c, face[0], face[2], face[3]},
	)
}
