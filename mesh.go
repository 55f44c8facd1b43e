package isosurface

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is a triangle mesh of surface crossing points. Triangles index
// into Points and are wound counter-clockwise when viewed from the
// positive side of the field.
type Mesh struct {
	Points    []r3.Vec
	Triangles [][3]GIndex
}

// Triangle returns the vertices of the ith triangle.
func (m *Mesh) Triangle(i int) [3]r3.Vec {
	t := m.Triangles[i]
	return [3]r3.Vec{m.Points[t[0]], m.Points[t[1]], m.Points[t[2]]}
}

// MakeMesh extracts the zero level-set of a field over g. values gives the
// field at grid points and is used to classify tetrahedra; f is evaluated
// along edges crossing the surface to locate crossing points. values and f
// should describe the same field. The result depends only on the arguments:
// tetrahedra are visited in grid order so repeated calls give identical
// meshes.
//
// MakeMesh panics if a field value is NaN.
func MakeMesh(g *Grid, values Field, f Func, opts ...Option) *Mesh {
	o := newOptions(opts)
	mb := meshBuilder{
		grid: g,
		ep:   newEdgePoints(g, f, o),
	}
	var neg, pos [4]GIndex
	for _, t := range g.tetras {
		nneg, npos := 0, 0
		for _, i := range t {
			v := values.Value(i)
			if v < 0 {
				neg[nneg] = i
				nneg++
			} else if v >= 0 {
				pos[npos] = i
				npos++
			}
		}
		if nneg+npos != 4 {
			panic(fmt.Sprintf("bad field value in tetrahedron %v: %d negative and %d positive vertices", t, nneg, npos))
		}
		switch nneg {
		case 1:
			mb.cutCorner(neg[0], pos[:3], true)
		case 2:
			mb.cutQuad(neg[0], neg[1], pos[0], pos[1])
		case 3:
			mb.cutCorner(pos[0], neg[:3], false)
		}
	}
	mesh := &Mesh{Points: mb.ep.points, Triangles: mb.triangles}
	mb.ep.points = nil
	o.logger.LogExtraction(len(g.tetras), len(mesh.Points), len(mesh.Triangles), mb.ep.degraded)
	return mesh
}

// MeshSDF3 meshes the surface of s sampling its bounding box with cells
// samples along the longest axis. Only tetrahedra the surface crosses are
// triangulated.
func MeshSDF3(s SDF3, cells int, opts ...Option) *Mesh {
	g := NewBoundsGrid(s.Bounds(), cells)
	values := Sample(g, s.Evaluate)
	return MakeMesh(g.Band(values), values, s.Evaluate, opts...)
}

// meshBuilder accumulates the triangles of a single extraction.
type meshBuilder struct {
	grid      *Grid
	ep        *EdgePoints
	triangles [][3]GIndex
}

// cutCorner emits the triangle separating the lone vertex of a tetrahedron
// from the other three. minorityNegative is true when the lone vertex is
// the one with a negative value.
func (mb *meshBuilder) cutCorner(minority GIndex, majority []GIndex, minorityNegative bool) {
	i := mb.ep.PointIndex(Edge{minority, majority[0]})
	j := mb.ep.PointIndex(Edge{minority, majority[1]})
	k := mb.ep.PointIndex(Edge{minority, majority[2]})
	up := r3.Sub(mb.grid.points[majority[0]], mb.grid.points[minority])
	if !minorityNegative {
		up = r3.Scale(-1, up)
	}
	mb.addOriented(i, j, k, up)
}

// cutQuad emits the two triangles of the quadrilateral separating negative
// vertices m1, m2 from positive vertices p1, p2. The quad is split along
// the diagonal joining the crossings of m2-p1 and m1-p2.
func (mb *meshBuilder) cutQuad(m1, m2, p1, p2 GIndex) {
	m1p1 := mb.ep.PointIndex(Edge{m1, p1})
	m1p2 := mb.ep.PointIndex(Edge{m1, p2})
	m2p1 := mb.ep.PointIndex(Edge{m2, p1})
	m2p2 := mb.ep.PointIndex(Edge{m2, p2})
	pts := mb.grid.points
	mb.addOriented(m1p1, m2p1, m1p2, r3.Sub(pts[p1], pts[m1]))
	mb.addOriented(m2p2, m2p1, m1p2, r3.Sub(pts[p2], pts[m2]))
}

// addOriented appends triangle i,j,k wound so its normal has a positive
// component along up, the negative to positive direction of one of the
// edges the triangle cuts.
func (mb *meshBuilder) addOriented(i, j, k GIndex, up r3.Vec) {
	pts := mb.ep.points
	u := r3.Sub(pts[j], pts[i])
	v := r3.Sub(pts[k], pts[i])
	if r3.Dot(r3.Cross(u, v), up) > 0 {
		mb.triangles = append(mb.triangles, [3]GIndex{i, j, k})
	} else {
		mb.triangles = append(mb.triangles, [3]GIndex{k, j, i})
	}
}
