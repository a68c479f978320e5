//go:build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		_, _ = s.pool.Exec(ctx, "TRUNCATE frontier_datasets CASCADE")
		s.Close()
	})

	return s
}

func TestCreateAndGetDataset(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	d := &Dataset{
		Name:   "integration",
		XLabel: "cost",
		YLabel: "quality",
		Points: []DataPoint{
			{X: 1, Y: 0.2, Row: map[string]interface{}{"run": "a"}},
			{X: 2, Y: 0.9},
			{X: 3, Y: 0.4, Row: map[string]interface{}{"run": "c", "seed": float64(3)}},
		},
	}
	require.NoError(t, s.CreateDataset(ctx, d))
	require.NotEqual(t, uuid.Nil, d.ID)
	require.False(t, d.CreatedAt.IsZero())

	got, err := s.GetDataset(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "integration", got.Name)
	assert.Equal(t, "cost", got.XLabel)
	assert.Equal(t, 3, got.PointCount)
	require.Len(t, got.Points, 3)
	assert.Equal(t, "a", got.Points[0].Row["run"])
	assert.Nil(t, got.Points[1].Row)
	assert.Equal(t, float64(3), got.Points[2].Row["seed"])

	xs, ys := got.Columns()
	assert.Equal(t, []float64{1, 2, 3}, xs)
	assert.Equal(t, []float64{0.2, 0.9, 0.4}, ys)
}

func TestGetDatasetNotFound(t *testing.T) {
	s := setupTestDB(t)
	got, err := s.GetDataset(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListAndDeleteDatasets(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"sweep-a", "sweep-b", "other"} {
		require.NoError(t, s.CreateDataset(ctx, &Dataset{Name: name, Points: []DataPoint{{X: 1, Y: 1}}}))
	}

	all, err := s.ListDatasets(ctx, DatasetFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	sweeps, err := s.ListDatasets(ctx, DatasetFilter{Name: "sweep", Limit: 10})
	require.NoError(t, err)
	require.Len(t, sweeps, 2)

	require.NoError(t, s.DeleteDataset(ctx, sweeps[0].ID))
	assert.ErrorIs(t, s.DeleteDataset(ctx, sweeps[0].ID), ErrNotFound)

	got, err := s.GetDataset(ctx, sweeps[0].ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
