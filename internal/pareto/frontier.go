package pareto

import (
	"cmp"
	"slices"
)

// Point is a coordinate pair tagged with its position in the input.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Index int     `json:"index"`
}

// Pair zips xs and ys into points carrying their input index.
func Pair(xs, ys []float64) ([]Point, error) {
	if err := checkShape(xs, ys); err != nil {
		return nil, err
	}
	points := make([]Point, len(xs))
	for i := range xs {
		points[i] = Point{X: xs[i], Y: ys[i], Index: i}
	}
	return points, nil
}

// Frontier returns the Pareto frontier of the points (xs[i], ys[i]), sorted
// by x from best to worst. Each returned point keeps its input index.
func Frontier(xs, ys []float64, xDir, yDir Direction) ([]Point, error) {
	points, err := Pair(xs, ys)
	if err != nil {
		return nil, err
	}
	return FrontierOf(points, xDir, yDir), nil
}

// FrontierIndices is Frontier but returns input indices only, so callers can
// join the frontier back to their own records.
func FrontierIndices(xs, ys []float64, xDir, yDir Direction) ([]int, error) {
	frontier, err := Frontier(xs, ys, xDir, yDir)
	if err != nil {
		return nil, err
	}
	indices := make([]int, len(frontier))
	for i, p := range frontier {
		indices[i] = p.Index
	}
	return indices, nil
}

// FrontierOf extracts the frontier from already paired points. The input
// slice is not modified.
//
// Points are ordered by x (best first), then y (best first), then index. The
// sweep keeps the first point of every run of equal x whose y is at least the
// running best; later points with the same x are never appended, even when
// they tie on y.
func FrontierOf(points []Point, xDir, yDir Direction) []Point {
	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(a, b Point) int {
		if c := compareBy(xDir, a.X, b.X); c != 0 {
			return c
		}
		if c := compareBy(yDir, a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})

	frontier := make([]Point, 0)
	bestY := yDir.Worst()
	lastX := xDir.Worst()
	for _, p := range sorted {
		if !yDir.AtLeast(p.Y, bestY) {
			continue
		}
		if p.X != lastX {
			frontier = append(frontier, p)
		}
		bestY = p.Y
		lastX = p.X
	}
	return frontier
}

// Dominates reports whether a is at least as good as b on both axes and
// strictly better on one.
func Dominates(a, b Point, xDir, yDir Direction) bool {
	if !xDir.AtLeast(a.X, b.X) || !yDir.AtLeast(a.Y, b.Y) {
		return false
	}
	return xDir.Better(a.X, b.X) || yDir.Better(a.Y, b.Y)
}

// compareBy orders better values first.
func compareBy(d Direction, a, b float64) int {
	if d == Maximize {
		return cmp.Compare(b, a)
	}
	return cmp.Compare(a, b)
}
