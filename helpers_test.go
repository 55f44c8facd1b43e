package isosurface

import (
	"math"

	"github.com/soypat/isosurface/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func sphere(v r3.Vec) float64 { return r3.Norm(v) - 1 }

type sphereSDF struct{ r float64 }

func (s sphereSDF) Evaluate(v r3.Vec) float64 { return r3.Norm(v) - s.r }

func (s sphereSDF) Bounds() r3.Box {
	return r3.Box{Min: d3.Elem(-s.r), Max: d3.Elem(s.r)}
}

// cubeGrid returns an axis aligned grid spanning [-half, half] in each
// dimension with spacing h.
func cubeGrid(half, h float64) *Grid {
	n := int(math.Round(2*half/h)) + 1
	return NewBoxBasisGrid(d3.Elem(-half), r3.Vec{X: h}, r3.Vec{Y: h}, r3.Vec{Z: h}, n, n, n)
}

// signedVolume returns the volume enclosed by a closed mesh, positive
// when triangle normals point outwards.
func signedVolume(m *Mesh) float64 {
	var vol float64
	for i := range m.Triangles {
		t := m.Triangle(i)
		vol += r3.Dot(t[0], r3.Cross(t[1], t[2])) / 6
	}
	return vol
}

type faceKey [3]GIndex

func sortedFace(a, b, c GIndex) faceKey {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return faceKey{a, b, c}
}

// onBoxFace reports whether all points lie on the same face of bb.
func onBoxFace(bb d3.Box, tol float64, pts ...r3.Vec) bool {
	same := func(get func(r3.Vec) float64, want float64) bool {
		for _, p := range pts {
			if math.Abs(get(p)-want) > tol {
				return false
			}
		}
		return true
	}
	x := func(v r3.Vec) float64 { return v.X }
	y := func(v r3.Vec) float64 { return v.Y }
	z := func(v r3.Vec) float64 { return v.Z }
	return same(x, bb.Min.X) || same(x, bb.Max.X) ||
		same(y, bb.Min.Y) || same(y, bb.Max.Y) ||
		same(z, bb.Min.Z) || same(z, bb.Max.Z)
}
