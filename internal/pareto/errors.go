package pareto

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrShapeMismatch is returned when the x and y sequences differ in length.
	ErrShapeMismatch = errors.New("x and y have different lengths")

	// ErrNonFiniteInput is returned by the query layer when a coordinate is NaN or infinite.
	ErrNonFiniteInput = errors.New("non-finite coordinate")
)

func checkShape(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: len(x)=%d, len(y)=%d", ErrShapeMismatch, len(xs), len(ys))
	}
	return nil
}

func checkFinite(axis string, vs []float64) error {
	for i, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s[%d]=%v", ErrNonFiniteInput, axis, i, v)
		}
	}
	return nil
}
