// Package pareto extracts the Pareto frontier of a 2D point set and answers
// budget-constrained lookups against it.
//
// Each axis is either maximized or minimized. A point dominates another when
// it is at least as good on both axes and strictly better on one. Frontier
// sorts the points by x (best first) and sweeps them once, keeping a point
// whenever its y is at least the best y seen so far and its x is new. The
// result is a staircase: x strictly worsens along the frontier while y only
// improves.
//
// Query and Table validate their input once and then answer LookupX/LookupY
// by binary search over the frontier. A lookup with no qualifying point
// returns NaN; use NoResult to test for it.
package pareto
