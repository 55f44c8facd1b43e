// Package isosurface extracts triangle meshes approximating the zero
// level-set of a scalar field using marching tetrahedra.
//
// A Grid samples an oriented box and decomposes it into tetrahedra. MakeMesh
// walks every tetrahedron, classifies its vertices by field sign and emits
// triangles whose vertices are crossing points found by bisection along the
// tetrahedron edges. Crossing points are shared between tetrahedra so each
// grid edge is root-found at most once per extraction.
//
//	g := isosurface.NewBoxBasisGrid(origin, b1, b2, b3, 41, 41, 41)
//	sphere := func(v r3.Vec) float64 { return r3.Norm(v) - 1 }
//	mesh := isosurface.MakeMesh(g, isosurface.NewFuncField(g, sphere), sphere)
package isosurface

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// GIndex indexes into a grid's point sequence or a mesh's point sequence.
type GIndex int

// Edge is an undirected pair of grid point indices.
type Edge [2]GIndex

// NewEdge returns the canonical edge joining a and b, that is, with the
// lower index first. It panics if a == b.
func NewEdge(a, b GIndex) Edge {
	if a == b {
		panic("edge endpoints must be distinct")
	}
	if a > b {
		a, b = b, a
	}
	return Edge{a, b}
}

// Canonical returns e with its lower index first.
func (e Edge) Canonical() Edge { return NewEdge(e[0], e[1]) }

// Tetrahedron references four distinct grid points. Vertex order carries no
// meaning.
type Tetrahedron [4]GIndex

// Func is a scalar field over space. The surface is where it is zero and
// negative values are considered inside.
type Func func(r3.Vec) float64

// SDF3 is the interface to a 3d signed distance function object.
type SDF3 interface {
	// Evaluate takes a point in 3D space as input and returns
	// the minimum distance of the SDF3 to the point. The distance
	// is negative if the point is contained within the SDF3.
	Evaluate(p r3.Vec) float64
	// Bounds returns the bounding box that completely contains
	// the SDF3.
	Bounds() r3.Box
}
