package isosurface

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// maxBisections bounds the bisection loop. Halving a float64 interval this
// many times exhausts its exponent range, so the limit is only reached when
// precision is below what the coordinates can represent.
const maxBisections = 1100

// FindIntersection returns the point on segment p1-p2 where f crosses zero.
// f(p1) and f(p2) must have opposite signs or one of them be zero, in which
// case that endpoint is returned. Bisection stops once the bracket is not
// longer than precision or the field values at its ends differ by less than
// tiny, and the bracket midpoint is returned.
//
// If f has the same sign at both endpoints the segment midpoint is returned
// along with an error wrapping ErrNoSignChange.
func FindIntersection(p1, p2 r3.Vec, f Func, precision, tiny float64) (r3.Vec, error) {
	p, fa, fb, ok := bisect(p1, p2, f, precision, tiny)
	if !ok {
		return p, fmt.Errorf("%w: f(%v)=%g, f(%v)=%g", ErrNoSignChange, p1, fa, p2, fb)
	}
	return p, nil
}

// bisect is FindIntersection returning the field values at p1 and p2.
// ok is false when they do not bracket a zero.
func bisect(p1, p2 r3.Vec, f Func, precision, tiny float64) (p r3.Vec, f1, f2 float64, ok bool) {
	a, b := p1, p2
	fa, fb := f(a), f(b)
	f1, f2 = fa, fb
	if fa == 0 {
		return a, f1, f2, true
	}
	if fb == 0 {
		return b, f1, f2, true
	}
	// Signs are compared directly, the product of small values underflows.
	if math.Signbit(fa) == math.Signbit(fb) || math.IsNaN(fa) || math.IsNaN(fb) {
		return midpoint(a, b), f1, f2, false
	}
	if fa > fb {
		a, b = b, a
		fa, fb = fb, fa
	}
	// Invariant: fa < 0 < fb.
	for i := 0; i < maxBisections; i++ {
		if r3.Norm(r3.Sub(b, a)) <= precision || math.Abs(fa-fb) < tiny {
			break
		}
		c := midpoint(a, b)
		fc := f(c)
		switch {
		case fc == 0:
			return c, f1, f2, true
		case fc < 0:
			a, fa = c, fc
		default:
			b, fb = c, fc
		}
	}
	return midpoint(a, b), f1, f2, true
}

func midpoint(a, b r3.Vec) r3.Vec {
	return r3.Add(a, r3.Scale(0.5, r3.Sub(b, a)))
}
