package render

import (
	"cmp"
	"slices"

	"github.com/MikeSquared-Agency/Frontier/internal/pareto"
)

// ConvexHull returns the vertices of the convex hull of points in
// counter-clockwise order, starting from the lowest-x point. Collinear and
// duplicate points are dropped. Fewer than three points come back unchanged.
func ConvexHull(points []pareto.Point) []pareto.Point {
	if len(points) < 3 {
		return slices.Clone(points)
	}
	sorted := slices.Clone(points)
	slices.SortFunc(sorted, func(a, b pareto.Point) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})

	hull := make([]pareto.Point, 0, 2*len(sorted))
	// lower chain
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// upper chain
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// the last point repeats the first
	return hull[:len(hull)-1]
}

// cross is the z component of (a->b) x (a->c); positive for a left turn.
func cross(a, b, c pareto.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
