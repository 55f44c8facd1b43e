package d3

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Box is a 3d bounding box.
type Box r3.Box

// NewBox creates a 3d box with a given center and size.
// Negative components of size will be interpreted as zero.
func NewBox(center, size r3.Vec) Box {
	size = MaxElem(size, r3.Vec{})
	half := r3.Scale(0.5, size)
	return Box{Min: r3.Sub(center, half), Max: r3.Add(center, half)}
}

// Size returns the size of a 3d box.
func (a Box) Size() r3.Vec {
	return r3.Sub(a.Max, a.Min)
}

// Center returns the center of a 3d box.
func (a Box) Center() r3.Vec {
	return r3.Add(a.Min, r3.Scale(0.5, a.Size()))
}

// Volume returns the volume enclosed by the box.
func (a Box) Volume() float64 {
	sz := a.Size()
	return sz.X * sz.Y * sz.Z
}

// ScaleAboutCenter returns a new 3d box scaled about the center of a box.
func (a Box) ScaleAboutCenter(k float64) Box {
	return NewBox(a.Center(), r3.Scale(k, a.Size()))
}

// Include enlarges a 3d box to include a point.
func (a Box) Include(v r3.Vec) Box {
	return Box{
		Min: MinElem(a.Min, v),
		Max: MaxElem(a.Max, v),
	}
}

// Contains checks if the 3d box contains the given vector (considering bounds as inside).
func (a Box) Contains(v r3.Vec) bool {
	return a.Min.X <= v.X && a.Min.Y <= v.Y && a.Min.Z <= v.Z &&
		v.X <= a.Max.X && v.Y <= a.Max.Y && v.Z <= a.Max.Z
}

// Vertices returns the 8 box corner vertices. Vertex i has the maximum
// x component when bit 2 of i is set, y for bit 1 and z for bit 0.
func (a Box) Vertices() [8]r3.Vec {
	var v [8]r3.Vec
	for i := range v {
		v[i] = a.Min
		if i&4 != 0 {
			v[i].X = a.Max.X
		}
		if i&2 != 0 {
			v[i].Y = a.Max.Y
		}
		if i&1 != 0 {
			v[i].Z = a.Max.Z
		}
	}
	return v
}
