// Command frontier-demo builds the frontier of a normalised log curve, prints
// lookups on an even grid and draws both to an image.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"

	"github.com/MikeSquared-Agency/Frontier/internal/config"
	"github.com/MikeSquared-Agency/Frontier/internal/pareto"
	"github.com/MikeSquared-Agency/Frontier/internal/render"
)

type sample struct {
	X, Y float64
}

func main() {
	n := flag.Int("points", 10, "number of curve samples")
	grid := flag.Int("grid", 15, "number of lookup values in [0, 1]")
	out := flag.String("out", "frontier.png", "output image (.png or .svg)")
	interp := flag.String("interpolation", "pessimistic", "pessimistic, linear or linear-convex")
	flag.Parse()

	logger := config.LoggingConfig{Level: "info", Format: "text"}.NewLogger(os.Stderr)

	if *n < 2 || *grid < 2 {
		logger.Error("points and grid must be at least 2")
		os.Exit(2)
	}
	interpolation, err := render.ParseInterpolation(*interp)
	if err != nil {
		logger.Error("bad interpolation", "error", err)
		os.Exit(2)
	}
	format, err := render.ParseFormat(strings.TrimPrefix(filepath.Ext(*out), "."))
	if err != nil {
		logger.Error("bad output file", "error", err)
		os.Exit(2)
	}

	xs := floats.Span(make([]float64, *n), 0.01, 1)
	ys := make([]float64, *n)
	for i, x := range xs {
		ys[i] = math.Log(x)
	}
	floats.AddConst(-floats.Min(ys), ys)
	floats.Scale(0.95/floats.Max(ys), ys)

	samples := make([]sample, *n)
	for i := range samples {
		samples[i] = sample{xs[i], ys[i]}
	}
	table, err := pareto.NewTable(samples,
		func(s sample) float64 { return s.X },
		func(s sample) float64 { return s.Y },
		pareto.DefaultXDirection, pareto.DefaultYDirection)
	if err != nil {
		logger.Error("failed to build frontier", "error", err)
		os.Exit(1)
	}

	// Lookups that found a point become marks on the plot.
	var yAtX, xAtY [2][]float64
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "val\tlookup_x\tlookup_y\t")
	for _, v := range floats.Span(make([]float64, *grid), 0, 1) {
		ly, lx := table.LookupX(v), table.LookupY(v)
		fmt.Fprintf(tw, "%.4f\t%.4f\t%.4f\t\n", v, ly, lx)
		if !pareto.NoResult(ly) {
			yAtX[0], yAtX[1] = append(yAtX[0], v), append(yAtX[1], ly)
		}
		if !pareto.NoResult(lx) {
			xAtY[0], xAtY[1] = append(xAtY[0], lx), append(xAtY[1], v)
		}
	}
	tw.Flush()

	canvas := render.NewCanvas("log curve", "x", "y", 800, 600, logger)
	opts := render.DefaultOptions()
	opts.Interpolation = interpolation
	opts.Label = "frontier"
	opts.Color = "#d62728"
	opts.Width = 4
	opts.Dots = true
	if _, err := canvas.Frontier(xs, ys, opts); err != nil {
		logger.Error("failed to draw frontier", "error", err)
		os.Exit(1)
	}
	if err := canvas.Scatter("lookup_x", yAtX[0], yAtX[1], "#1f77b4"); err != nil {
		logger.Error("failed to draw lookups", "error", err)
		os.Exit(1)
	}
	if err := canvas.Scatter("lookup_y", xAtY[0], xAtY[1], "#2ca02c"); err != nil {
		logger.Error("failed to draw lookups", "error", err)
		os.Exit(1)
	}

	f, err := os.Create(*out)
	if err != nil {
		logger.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := canvas.Render(f, format); err != nil {
		logger.Error("failed to render", "error", err)
		os.Exit(1)
	}
	logger.Info("plot written", "path", *out, "frontier_size", table.Query().Len())
}
