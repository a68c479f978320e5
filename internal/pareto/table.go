package pareto

import "slices"

// Table pairs arbitrary records with a frontier over two of their columns,
// so lookups can hand back the record rather than just a coordinate.
type Table[R any] struct {
	rows  []R
	query *Query
}

// NewTable reads the x and y columns of rows and builds a Query over them.
func NewTable[R any](rows []R, x, y func(R) float64, xDir, yDir Direction) (*Table[R], error) {
	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = x(r)
		ys[i] = y(r)
	}
	q, err := NewQuery(xs, ys, xDir, yDir)
	if err != nil {
		return nil, err
	}
	return &Table[R]{rows: slices.Clone(rows), query: q}, nil
}

func (t *Table[R]) Query() *Query { return t.query }

// FrontierIndices returns the row positions on the frontier, best x first.
func (t *Table[R]) FrontierIndices() []int {
	indices := make([]int, len(t.query.frontier))
	for i, p := range t.query.frontier {
		indices[i] = p.Index
	}
	return indices
}

// FrontierRows returns the rows on the frontier, best x first.
func (t *Table[R]) FrontierRows() []R {
	out := make([]R, len(t.query.frontier))
	for i, p := range t.query.frontier {
		out[i] = t.rows[p.Index]
	}
	return out
}

func (t *Table[R]) LookupX(x float64) float64 { return t.query.LookupX(x) }

func (t *Table[R]) LookupY(y float64) float64 { return t.query.LookupY(y) }

// RowAtX returns the row answering LookupX(x).
func (t *Table[R]) RowAtX(x float64) (R, bool) {
	p, ok := t.query.pointAtX(x)
	if !ok {
		var zero R
		return zero, false
	}
	return t.rows[p.Index], true
}

// RowAtY returns the row answering LookupY(y).
func (t *Table[R]) RowAtY(y float64) (R, bool) {
	p, ok := t.query.pointAtY(y)
	if !ok {
		var zero R
		return zero, false
	}
	return t.rows[p.Index], true
}
