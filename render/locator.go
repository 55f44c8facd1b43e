package render

import (
	"math"

	"github.com/soypat/isosurface"
	"github.com/soypat/isosurface/internal/d3"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ kdtree.Interface = kdPoints{}
	_ kdtree.Bounder   = kdPoints{}
)

// PointLocator finds the mesh point closest to a query point.
type PointLocator struct {
	tree *kdtree.Tree
}

// NewPointLocator builds a k-d tree over points. The index returned by
// Nearest is the index into points.
func NewPointLocator(points []r3.Vec) *PointLocator {
	kd := make(kdPoints, len(points))
	for i := range points {
		kd[i] = kdPoint{v: points[i], idx: isosurface.GIndex(i)}
	}
	return &PointLocator{tree: kdtree.New(kd, true)}
}

// Nearest returns the index of the point closest to q and its distance.
// It returns -1 and +Inf if the locator has no points.
func (pl *PointLocator) Nearest(q r3.Vec) (isosurface.GIndex, float64) {
	if pl.tree.Root == nil {
		return -1, math.Inf(1)
	}
	got, d2 := pl.tree.Nearest(kdPoint{v: q, idx: -1})
	return got.(kdPoint).idx, math.Sqrt(d2)
}

type kdPoint struct {
	v   r3.Vec
	idx isosurface.GIndex
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
func (a kdPoint) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a, b.(kdPoint), int(d))
}

// Dims returns the number of dimensions described in the Comparable.
func (a kdPoint) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between the receiver and
// the parameter.
func (a kdPoint) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.v, b.(kdPoint).v))
}

// c = a.dim - b.dim
func kdComp(a, b kdPoint, dim int) (c float64) {
	switch dim {
	case 0:
		c = a.v.X - b.v.X
	case 1:
		c = a.v.Y - b.v.Y
	case 2:
		c = a.v.Z - b.v.Z
	}
	return c
}

type kdPoints []kdPoint

func (k kdPoints) Index(i int) kdtree.Comparable { return k[i] }

// Len returns the length of the list.
func (k kdPoints) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k kdPoints) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: int(d), points: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k kdPoints) Slice(start, end int) kdtree.Interface {
	return k[start:end]
}

// Bounds returns the bounding box of the points.
func (k kdPoints) Bounds() *kdtree.Bounding {
	if len(k) == 0 {
		return nil
	}
	min, max := k[0].v, k[0].v
	for _, p := range k[1:] {
		min = d3.MinElem(min, p.v)
		max = d3.MaxElem(max, p.v)
	}
	return &kdtree.Bounding{
		Min: kdPoint{v: min, idx: -1},
		Max: kdPoint{v: max, idx: -1},
	}
}

type kdPlane struct {
	dim    int
	points kdPoints
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.points[i], p.points[j], p.dim) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}
func (p kdPlane) Len() int {
	return len(p.points)
}
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
