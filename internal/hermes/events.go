package hermes

import "time"

type DatasetCreatedEvent struct {
	DatasetID  string    `json:"dataset_id"`
	Name       string    `json:"name"`
	PointCount int       `json:"point_count"`
	Timestamp  time.Time `json:"timestamp"`
}

type DatasetDeletedEvent struct {
	DatasetID string    `json:"dataset_id"`
	Timestamp time.Time `json:"timestamp"`
}

type FrontierComputedEvent struct {
	DatasetID    string    `json:"dataset_id,omitempty"`
	XDirection   string    `json:"x_direction"`
	YDirection   string    `json:"y_direction"`
	InputPoints  int       `json:"input_points"`
	FrontierSize int       `json:"frontier_size"`
	Indices      []int     `json:"indices"`
	DurationMs   float64   `json:"duration_ms"`
	Timestamp    time.Time `json:"timestamp"`
}
