package render

import (
	"fmt"
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/MikeSquared-Agency/Frontier/internal/pareto"
)

// Options configures how a frontier is turned into a drawable path.
type Options struct {
	XDirection    pareto.Direction
	YDirection    pareto.Direction
	Interpolation Interpolation

	// XLimit and YLimit bound the worst end of each axis; the path is closed
	// off against them. They default to the worst x and y in the data.
	XLimit *float64
	YLimit *float64

	Dots  bool
	Label string
	Color string
	Width float64
}

// DefaultOptions minimizes x, maximizes y and draws a pessimistic staircase.
func DefaultOptions() Options {
	return Options{
		XDirection:    pareto.DefaultXDirection,
		YDirection:    pareto.DefaultYDirection,
		Interpolation: Pessimistic,
	}
}

// Vertex is a corner of the drawn path.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Path is the polyline connecting a frontier, plus the frontier itself.
type Path struct {
	Vertices []Vertex       `json:"vertices"`
	Frontier []pareto.Point `json:"frontier"`
}

// BuildPath computes the frontier of (xs, ys) and the polyline that draws it.
// The polyline starts at (best x, YLimit), runs through the frontier and ends
// at (XLimit, best y), so it encloses the whole point cloud. An empty input
// yields an empty path and a warning.
func BuildPath(xs, ys []float64, opts Options, logger *slog.Logger) (*Path, error) {
	if opts.Interpolation == "" {
		opts.Interpolation = Pessimistic
	}
	if _, err := ParseInterpolation(string(opts.Interpolation)); err != nil {
		return nil, err
	}
	points, err := pareto.Pair(xs, ys)
	if err != nil {
		return nil, err
	}
	if opts.Interpolation == LinearConvex {
		points = ConvexHull(points)
		xs, ys = unzip(points)
	}

	frontier := pareto.FrontierOf(points, opts.XDirection, opts.YDirection)
	if len(frontier) == 0 {
		logger.Warn("empty frontier, nothing to draw")
		return &Path{Vertices: []Vertex{}, Frontier: frontier}, nil
	}

	bestX, worstX := extremes(xs, opts.XDirection)
	bestY, worstY := extremes(ys, opts.YDirection)

	xLimit := worstX
	if opts.XLimit != nil {
		xLimit = *opts.XLimit
		if opts.XDirection.Better(xLimit, worstX) {
			logger.Warn("data extends past x limit, those points will not show",
				"x_limit", xLimit, "worst_x", worstX)
		}
	}
	yLimit := worstY
	if opts.YLimit != nil {
		yLimit = *opts.YLimit
		if opts.YDirection.Better(yLimit, worstY) {
			logger.Warn("data extends past y limit, those points will not show",
				"y_limit", yLimit, "worst_y", worstY)
		}
	}

	corners := make([]Vertex, 0, len(frontier)+2)
	corners = append(corners, Vertex{X: bestX, Y: yLimit})
	for _, p := range frontier {
		corners = append(corners, Vertex{X: p.X, Y: p.Y})
	}
	corners = append(corners, Vertex{X: xLimit, Y: bestY})

	var vertices []Vertex
	switch opts.Interpolation {
	case Pessimistic:
		vertices = staircase(corners)
	default:
		vertices = slices.Compact(corners)
	}
	return &Path{Vertices: vertices, Frontier: frontier}, nil
}

// staircase steps horizontally first, so each segment only claims the y
// already reached.
func staircase(corners []Vertex) []Vertex {
	out := make([]Vertex, 0, 2*len(corners))
	out = append(out, corners[0])
	for i := 1; i < len(corners); i++ {
		prev, next := corners[i-1], corners[i]
		for _, v := range []Vertex{{X: next.X, Y: prev.Y}, next} {
			if v != out[len(out)-1] {
				out = append(out, v)
			}
		}
	}
	return out
}

// extremes returns the best and worst of vs under d. vs must not be empty.
func extremes(vs []float64, d pareto.Direction) (best, worst float64) {
	lo, hi := floats.Min(vs), floats.Max(vs)
	if d == pareto.Maximize {
		return hi, lo
	}
	return lo, hi
}

func unzip(points []pareto.Point) ([]float64, []float64) {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

func (v Vertex) String() string { return fmt.Sprintf("(%g, %g)", v.X, v.Y) }
