package render

import (
	"errors"
	"fmt"
	"strings"
)

// Interpolation controls how consecutive frontier points are connected.
type Interpolation string

const (
	// Pessimistic draws right-angle steps: between two frontier points only
	// the worse corner is claimed as achievable.
	Pessimistic Interpolation = "pessimistic"
	// Linear draws straight segments between frontier points.
	Linear Interpolation = "linear"
	// LinearConvex keeps only frontier points on the convex hull of the data
	// and joins them with straight segments.
	LinearConvex Interpolation = "linear-convex"
)

var ErrUnknownInterpolation = errors.New("unknown interpolation")

// ParseInterpolation maps a name to an Interpolation. Empty means Pessimistic.
func ParseInterpolation(s string) (Interpolation, error) {
	switch i := Interpolation(strings.ToLower(strings.TrimSpace(s))); i {
	case "":
		return Pessimistic, nil
	case Pessimistic, Linear, LinearConvex:
		return i, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownInterpolation, s)
}
