package isosurface

import "gonum.org/v1/gonum/spatial/r3"

// EdgePoints finds and caches the surface crossing point of grid edges.
// Each distinct undirected edge is root-found at most once. EdgePoints is
// scoped to a single extraction and is not safe for concurrent use.
type EdgePoints struct {
	grid     *Grid
	f        Func
	points   []r3.Vec
	index    map[Edge]GIndex
	opts     options
	degraded int
}

// NewEdgePoints returns an empty crossing point cache over the edges of g.
func NewEdgePoints(g *Grid, f Func, opts ...Option) *EdgePoints {
	return newEdgePoints(g, f, newOptions(opts))
}

func newEdgePoints(g *Grid, f Func, o options) *EdgePoints {
	return &EdgePoints{
		grid:  g,
		f:     f,
		index: make(map[Edge]GIndex),
		opts:  o,
	}
}

// PointIndex returns the index of the crossing point along e, computing it
// on first use. The orientation of e does not matter.
func (ep *EdgePoints) PointIndex(e Edge) GIndex {
	e = e.Canonical()
	if i, ok := ep.index[e]; ok {
		return i
	}
	a, b := ep.grid.points[e[0]], ep.grid.points[e[1]]
	p, fa, fb, ok := bisect(a, b, ep.f, ep.opts.precision, ep.opts.tiny)
	if !ok {
		ep.degraded++
		ep.opts.logger.LogNoSignChange(e, fa, fb)
	}
	i := GIndex(len(ep.points))
	ep.index[e] = i
	ep.points = append(ep.points, p)
	return i
}

// Len returns the number of crossing points found so far.
func (ep *EdgePoints) Len() int { return len(ep.points) }

// Point returns crossing point i.
func (ep *EdgePoints) Point(i GIndex) r3.Vec { return ep.points[i] }

// Degraded returns how many edges had no sign change and were assigned
// their midpoint as crossing point.
func (ep *EdgePoints) Degraded() int { return ep.degraded }
