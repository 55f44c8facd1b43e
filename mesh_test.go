package isosurface

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/soypat/isosurface/internal/d3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMakeMeshSphere(t *testing.T) {
	g := NewBoxBasisGrid(d3.Elem(-1), r3.Vec{X: 0.1}, r3.Vec{Y: 0.1}, r3.Vec{Z: 0.1}, 21, 21, 21)
	mesh := MakeMesh(g, NewFuncField(g, sphere), sphere)
	require.NotEmpty(t, mesh.Triangles)
	for i, p := range mesh.Points {
		require.Less(t, math.Abs(r3.Norm(p)-1), 0.15, "point %d: %v", i, p)
	}
	for _, tri := range mesh.Triangles {
		for _, i := range tri {
			require.True(t, i >= 0 && int(i) < len(mesh.Points))
		}
	}
}

func TestMakeMeshResolution(t *testing.T) {
	// Largest distance from a triangle centroid to the sphere.
	worst := func(h float64) float64 {
		g := cubeGrid(1.2, h)
		mesh := MakeMesh(g, NewFuncField(g, sphere), sphere)
		var maxErr float64
		for i := range mesh.Triangles {
			v := mesh.Triangle(i)
			c := r3.Scale(1./3, r3.Add(v[0], r3.Add(v[1], v[2])))
			maxErr = math.Max(maxErr, math.Abs(r3.Norm(c)-1))
		}
		return maxErr
	}
	coarse, fine := worst(0.2), worst(0.05)
	assert.Less(t, fine, coarse)
	assert.Less(t, coarse, 0.15)
}

func TestMakeMeshDeterministic(t *testing.T) {
	g := cubeGrid(1.5, 0.1)
	f := func(v r3.Vec) float64 {
		w := r3.Vec{X: v.X + 0.3*math.Sin(5*v.Y), Y: v.Y, Z: v.Z + 0.2*math.Sin(8*v.Y)}
		return (r3.Norm(w) - 1) * 0.5
	}
	m1 := MakeMesh(g, NewFuncField(g, f), f)
	m2 := MakeMesh(g, NewFuncField(g, f), f)
	require.Empty(t, cmp.Diff(m1, m2), "meshes differ (-first +second)")
	// Precomputed samples describe the same field.
	m3 := MakeMesh(g, Sample(g, f), f)
	require.Empty(t, cmp.Diff(m1, m3), "sampled field mesh differs (-func +samples)")
	// Uniform tetrahedra contribute nothing so the band gives the same mesh.
	m4 := MakeMesh(g.Band(Sample(g, f)), NewFuncField(g, f), f)
	require.Empty(t, cmp.Diff(m1, m4), "band mesh differs (-full +band)")
}

func TestMakeMeshEmpty(t *testing.T) {
	g := cubeGrid(1, 0.25)
	f := func(v r3.Vec) float64 { return r3.Norm(v) + 1 }
	mesh := MakeMesh(g, Sample(g, f), f)
	assert.Empty(t, mesh.Points)
	assert.Empty(t, mesh.Triangles)
}

func TestMakeMeshOrientation(t *testing.T) {
	const r = 0.97
	f := func(v r3.Vec) float64 { return r3.Norm(v) - r }
	for _, test := range []struct {
		name string
		g    *Grid
	}{
		{name: "box", g: cubeGrid(1.5, 0.1)},
		{name: "bcc", g: NewBCCGrid(r3.Box{Min: d3.Elem(-1.5), Max: d3.Elem(1.5)}, 0.15)},
	} {
		t.Run(test.name, func(t *testing.T) {
			mesh := MakeMesh(test.g, Sample(test.g, f), f)
			want := 4 * math.Pi * r * r * r / 3
			assert.InEpsilon(t, want, signedVolume(mesh), 0.03)

			// Closed and consistently wound: every directed edge is
			// traversed once and its reverse once.
			directed := make(map[Edge]int)
			for _, tri := range mesh.Triangles {
				for i := range tri {
					directed[Edge{tri[i], tri[(i+1)%3]}]++
				}
			}
			for e, count := range directed {
				require.Equal(t, 1, count, "directed edge %v", e)
				require.Equal(t, 1, directed[Edge{e[1], e[0]}], "edge %v has no opposite", e)
			}
		})
	}
}

func TestTetrahedronOrientation(t *testing.T) {
	pts := []r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}}
	for _, test := range []struct {
		name      string
		grad      r3.Vec
		offset    float64
		triangles int
	}{
		{name: "one negative", grad: r3.Vec{X: 1, Y: 1, Z: 1}, offset: -0.5, triangles: 1},
		{name: "three negative", grad: r3.Vec{X: -1, Y: -1, Z: -1}, offset: 0.5, triangles: 1},
		{name: "two negative", grad: r3.Vec{X: 1, Y: 1}, offset: -0.5, triangles: 2},
		{name: "two negative skewed", grad: r3.Vec{X: -2, Y: 1, Z: 3}, offset: -0.5, triangles: 2},
	} {
		t.Run(test.name, func(t *testing.T) {
			f := func(v r3.Vec) float64 { return r3.Dot(test.grad, v) + test.offset }
			for _, tet := range permutations(Tetrahedron{0, 1, 2, 3}) {
				g, err := NewGrid(pts, []Tetrahedron{tet})
				require.NoError(t, err)
				mesh := MakeMesh(g, NewFuncField(g, f), f)
				require.Len(t, mesh.Triangles, test.triangles, "tetrahedron %v", tet)
				for i := range mesh.Triangles {
					v := mesh.Triangle(i)
					n := r3.Cross(r3.Sub(v[1], v[0]), r3.Sub(v[2], v[0]))
					assert.Greater(t, r3.Dot(n, test.grad), 0.0, "tetrahedron %v triangle %d", tet, i)
				}
			}
		})
	}
}

func permutations(t Tetrahedron) (perms []Tetrahedron) {
	for a := 0; a < 4; a++ {
		for b := 0; b < 4; b++ {
			for c := 0; c < 4; c++ {
				d := 6 - a - b - c
				if a == b || a == c || b == c || d == a || d == b || d == c {
					continue
				}
				perms = append(perms, Tetrahedron{t[a], t[b], t[c], t[d]})
			}
		}
	}
	return perms
}

func TestMakeMeshNaNPanics(t *testing.T) {
	g := cubeGrid(1, 0.5)
	values := Sample(g, sphere)
	values[len(values)/2] = math.NaN()
	assert.Panics(t, func() { MakeMesh(g, values, sphere) })
}

func TestMakeMeshLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	g := cubeGrid(1.5, 0.25)
	mesh := MakeMesh(g, Sample(g, sphere), sphere, WithLogger(logger))
	require.NotEmpty(t, mesh.Triangles)
	assert.Contains(t, buf.String(), "mesh extracted")
	assert.NotContains(t, buf.String(), "degraded")

	// Classifying with a different field than the one root-found gives
	// edges without sign change.
	buf.Reset()
	shifted := func(v r3.Vec) float64 { return r3.Norm(v) - 0.5 }
	MakeMesh(g, Sample(g, sphere), shifted, WithLogger(logger))
	assert.Contains(t, buf.String(), "degraded")
}

func TestMeshSDF3(t *testing.T) {
	s := sphereSDF{r: 2}
	mesh := MeshSDF3(s, 40)
	require.NotEmpty(t, mesh.Triangles)
	for _, p := range mesh.Points {
		require.InDelta(t, 2, r3.Norm(p), 0.01)
	}
	assert.InEpsilon(t, 4*math.Pi*8/3, signedVolume(mesh), 0.03)
}
