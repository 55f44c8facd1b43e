package render

import (
	"io"

	"github.com/soypat/isosurface"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle3 is a 3D triangle.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the unit normal of the triangle following the right hand
// rule over its vertex order. The result is NaN for degenerate triangles.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Degenerate returns true if two of the triangle's vertices are within tol
// of each other.
func (t Triangle3) Degenerate(tol float64) bool {
	return r3.Norm(r3.Sub(t.V[0], t.V[1])) <= tol ||
		r3.Norm(r3.Sub(t.V[1], t.V[2])) <= tol ||
		r3.Norm(r3.Sub(t.V[2], t.V[0])) <= tol
}

// Renderer streams triangles. ReadTriangles fills dst and returns the number
// of triangles written. It returns io.EOF once all triangles have been read.
type Renderer interface {
	ReadTriangles(dst []Triangle3) (int, error)
}

// MeshRenderer streams the triangles of an extracted mesh in mesh order.
type MeshRenderer struct {
	mesh *isosurface.Mesh
	next int
}

var _ Renderer = (*MeshRenderer)(nil)

// NewMeshRenderer returns a Renderer over the triangles of m.
func NewMeshRenderer(m *isosurface.Mesh) *MeshRenderer {
	return &MeshRenderer{mesh: m}
}

// ReadTriangles writes the next triangles of the mesh into dst.
func (mr *MeshRenderer) ReadTriangles(dst []Triangle3) (n int, err error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	remaining := len(mr.mesh.Triangles) - mr.next
	if remaining == 0 {
		return 0, io.EOF
	}
	for n < len(dst) && n < remaining {
		dst[n] = Triangle3{V: mr.mesh.Triangle(mr.next + n)}
		n++
	}
	mr.next += n
	return n, nil
}

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.ReadAll implementation.
func RenderAll(r Renderer) ([]Triangle3, error) {
	result := make([]Triangle3, 0, 1<<12)
	buf := make([]Triangle3, 1024)
	for {
		nt, err := r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return result, err
		}
	}
}
