package isosurface

import "errors"

var (
	// ErrNoSignChange is returned by FindIntersection when the field has the
	// same sign at both ends of the segment. The midpoint is returned with it.
	ErrNoSignChange = errors.New("field does not change sign along segment")
	// ErrIndexOutOfRange is returned when a tetrahedron references a point
	// the grid does not have.
	ErrIndexOutOfRange = errors.New("grid index out of range")
	// ErrDegenerateTetrahedron is returned when a tetrahedron references the
	// same point more than once.
	ErrDegenerateTetrahedron = errors.New("tetrahedron vertices not distinct")
)
