package pareto

import (
	"fmt"
	"math"
	"strings"
)

// Direction selects which end of an axis is better.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

// Defaults used by the query layer when callers don't pick directions:
// cheaper x and larger y are better.
const (
	DefaultXDirection = Minimize
	DefaultYDirection = Maximize
)

// directionRules is indexed by Direction.
var directionRules = [...]struct {
	name    string
	worst   float64
	atLeast func(a, b float64) bool
}{
	Minimize: {"minimize", math.Inf(1), func(a, b float64) bool { return a <= b }},
	Maximize: {"maximize", math.Inf(-1), func(a, b float64) bool { return a >= b }},
}

// DirectionOf maps a maximize flag to a Direction.
func DirectionOf(maximize bool) Direction {
	if maximize {
		return Maximize
	}
	return Minimize
}

// ParseDirection accepts "min", "minimize", "max" or "maximize".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "min", "minimize":
		return Minimize, nil
	case "max", "maximize":
		return Maximize, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) String() string {
	if d != Minimize && d != Maximize {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionRules[d].name
}

// AtLeast reports whether a is at least as good as b.
func (d Direction) AtLeast(a, b float64) bool {
	return directionRules[d].atLeast(a, b)
}

// Better reports whether a is strictly better than b.
func (d Direction) Better(a, b float64) bool {
	return a != b && d.AtLeast(a, b)
}

// Worst is the sentinel that every finite value beats.
func (d Direction) Worst() float64 {
	return directionRules[d].worst
}

// Best returns the better of a and b.
func (d Direction) Best(a, b float64) float64 {
	if d.AtLeast(a, b) {
		return a
	}
	return b
}
