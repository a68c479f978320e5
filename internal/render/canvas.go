package render

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/MikeSquared-Agency/Frontier/internal/pareto"
)

// Format is an output image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

var ErrUnknownFormat = errors.New("unknown image format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return PNG, nil
	case PNG, SVG:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) ContentType() string {
	if f == SVG {
		return chart.ContentTypeSVG
	}
	return chart.ContentTypePNG
}

func (f Format) provider() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// Canvas collects series and renders them as one chart. Each plot gets its
// own Canvas; nothing is shared between them.
type Canvas struct {
	Title  string
	XLabel string
	YLabel string
	Width  int
	Height int

	series  []chart.Series
	xs, ys  []float64
	palette int
	logger  *slog.Logger
}

func NewCanvas(title, xLabel, yLabel string, width, height int, logger *slog.Logger) *Canvas {
	return &Canvas{
		Title:  title,
		XLabel: xLabel,
		YLabel: yLabel,
		Width:  width,
		Height: height,
		logger: logger,
	}
}

// Scatter adds the raw points as dots.
func (c *Canvas) Scatter(name string, xs, ys []float64, color string) error {
	if _, err := pareto.Pair(xs, ys); err != nil {
		return err
	}
	if len(xs) == 0 {
		return nil
	}
	col := c.color(color)
	c.add(chart.ContinuousSeries{
		Name: name,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    3,
			DotColor:    col.WithAlpha(160),
		},
		XValues: xs,
		YValues: ys,
	})
	return nil
}

// Frontier draws the frontier of (xs, ys) as a line, and its points as dots
// when opts.Dots is set.
func (c *Canvas) Frontier(xs, ys []float64, opts Options) (*Path, error) {
	path, err := BuildPath(xs, ys, opts, c.logger)
	if err != nil {
		return nil, err
	}
	if len(path.Vertices) == 0 {
		return path, nil
	}

	col := c.color(opts.Color)
	width := opts.Width
	if width == 0 {
		width = 2
	}
	px := make([]float64, len(path.Vertices))
	py := make([]float64, len(path.Vertices))
	for i, v := range path.Vertices {
		px[i], py[i] = v.X, v.Y
	}
	c.add(chart.ContinuousSeries{
		Name:    opts.Label,
		Style:   chart.Style{StrokeWidth: width, StrokeColor: col},
		XValues: px,
		YValues: py,
	})

	if opts.Dots {
		fx := make([]float64, len(path.Frontier))
		fy := make([]float64, len(path.Frontier))
		for i, p := range path.Frontier {
			fx[i], fy[i] = p.X, p.Y
		}
		c.add(chart.ContinuousSeries{
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
				DotColor:    col,
			},
			XValues: fx,
			YValues: fy,
		})
	}
	return path, nil
}

// Render writes the chart to w.
func (c *Canvas) Render(w io.Writer, f Format) error {
	if len(c.series) == 0 {
		return errors.New("nothing to render")
	}
	ch := chart.Chart{
		Title:      c.Title,
		Width:      c.Width,
		Height:     c.Height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: c.XLabel, Range: span(c.xs)},
		YAxis:      chart.YAxis{Name: c.YLabel, Range: span(c.ys)},
		Series:     c.series,
	}
	for _, s := range c.series {
		if s.GetName() != "" {
			ch.Elements = []chart.Renderable{chart.Legend(&ch)}
			break
		}
	}
	if err := ch.Render(f.provider(), w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func (c *Canvas) add(s chart.ContinuousSeries) {
	c.series = append(c.series, s)
	c.xs = append(c.xs, s.XValues...)
	c.ys = append(c.ys, s.YValues...)
}

// color parses a CSS colour, falling back to the next palette entry.
func (c *Canvas) color(s string) drawing.Color {
	if s != "" {
		if col := drawing.ParseColor(s); !col.IsZero() {
			return col
		}
		c.logger.Warn("unrecognised colour, using palette", "color", s)
	}
	col := chart.DefaultColors[c.palette%len(chart.DefaultColors)]
	c.palette++
	return col
}

// span is the padded data range; a degenerate range is widened so the chart
// still has an axis to draw.
func span(vs []float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	pad := (hi - lo) * 0.05
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
