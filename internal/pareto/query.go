package pareto

import (
	"math"
	"slices"
	"sort"
)

// Query answers constrained best-response lookups against a frontier
// computed once at construction. It is read-only and safe for concurrent use.
type Query struct {
	xDir     Direction
	yDir     Direction
	size     int
	frontier []Point
}

// NewQuery validates xs and ys and precomputes their frontier. Unlike
// Frontier it rejects NaN and infinite coordinates up front.
func NewQuery(xs, ys []float64, xDir, yDir Direction) (*Query, error) {
	if err := checkShape(xs, ys); err != nil {
		return nil, err
	}
	if err := checkFinite("x", xs); err != nil {
		return nil, err
	}
	if err := checkFinite("y", ys); err != nil {
		return nil, err
	}
	frontier, err := Frontier(xs, ys, xDir, yDir)
	if err != nil {
		return nil, err
	}
	return &Query{xDir: xDir, yDir: yDir, size: len(xs), frontier: frontier}, nil
}

// NoResult reports whether v is the lookup sentinel for "no qualifying point".
func NoResult(v float64) bool {
	return math.IsNaN(v)
}

// LookupX returns the best y among points whose x is at least as good as x
// (p.x <= x when minimizing x). It returns NaN when no point qualifies.
func (q *Query) LookupX(x float64) float64 {
	p, ok := q.pointAtX(x)
	if !ok {
		return math.NaN()
	}
	return p.Y
}

// LookupY returns the best x among points whose y is at least as good as y
// (p.y >= y when maximizing y). It returns NaN when no point qualifies.
func (q *Query) LookupY(y float64) float64 {
	p, ok := q.pointAtY(y)
	if !ok {
		return math.NaN()
	}
	return p.X
}

// Frontier returns a copy of the precomputed frontier.
func (q *Query) Frontier() []Point {
	return slices.Clone(q.frontier)
}

// Len is the number of input points the query was built from.
func (q *Query) Len() int { return q.size }

func (q *Query) Directions() (x, y Direction) { return q.xDir, q.yDir }

// The frontier runs from best to worst x while y only improves, so points
// meeting an x budget form a prefix whose last element has the best y, and
// points meeting a y floor form a suffix whose first element has the best x.

func (q *Query) pointAtX(x float64) (Point, bool) {
	k := sort.Search(len(q.frontier), func(i int) bool {
		return !q.xDir.AtLeast(q.frontier[i].X, x)
	})
	if k == 0 {
		return Point{}, false
	}
	return q.frontier[k-1], true
}

func (q *Query) pointAtY(y float64) (Point, bool) {
	k := sort.Search(len(q.frontier), func(i int) bool {
		return q.yDir.AtLeast(q.frontier[i].Y, y)
	})
	if k == len(q.frontier) {
		return Point{}, false
	}
	return q.frontier[k], true
}
