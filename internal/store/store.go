package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("dataset not found")

// Dataset is a named set of input points. Frontiers are never stored; they
// are recomputed from the points on every request.
type Dataset struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	XLabel     string      `json:"x_label,omitempty"`
	YLabel     string      `json:"y_label,omitempty"`
	PointCount int         `json:"point_count"`
	Points     []DataPoint `json:"points,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// DataPoint is one input row: its coordinates plus whatever else the caller
// wants to get back when the row lands on the frontier.
type DataPoint struct {
	X   float64                `json:"x"`
	Y   float64                `json:"y"`
	Row map[string]interface{} `json:"row,omitempty"`
}

// Columns splits the points into parallel x and y slices.
func (d *Dataset) Columns() (xs, ys []float64) {
	xs = make([]float64, len(d.Points))
	ys = make([]float64, len(d.Points))
	for i, p := range d.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

type DatasetFilter struct {
	Name   string
	Limit  int
	Offset int
}

type Store interface {
	CreateDataset(ctx context.Context, d *Dataset) error
	// GetDataset returns nil, nil when the dataset does not exist.
	GetDataset(ctx context.Context, id uuid.UUID) (*Dataset, error)
	// ListDatasets returns datasets newest first, without their points.
	ListDatasets(ctx context.Context, filter DatasetFilter) ([]*Dataset, error)
	DeleteDataset(ctx context.Context, id uuid.UUID) error
	Close() error
}
