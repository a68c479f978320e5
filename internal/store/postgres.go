package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS frontier_datasets (
	id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	name        text NOT NULL,
	x_label     text NOT NULL DEFAULT '',
	y_label     text NOT NULL DEFAULT '',
	point_count integer NOT NULL,
	created_at  timestamptz NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS frontier_points (
	dataset_id uuid NOT NULL REFERENCES frontier_datasets(id) ON DELETE CASCADE,
	idx        integer NOT NULL,
	x          double precision NOT NULL,
	y          double precision NOT NULL,
	attrs      jsonb,
	PRIMARY KEY (dataset_id, idx)
);
CREATE INDEX IF NOT EXISTS frontier_datasets_created_at_idx ON frontier_datasets (created_at DESC);`

// EnsureSchema creates the tables if they are missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

const datasetColumns = `id, name, x_label, y_label, point_count, created_at`

func (s *PostgresStore) CreateDataset(ctx context.Context, d *Dataset) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	d.PointCount = len(d.Points)
	err = tx.QueryRow(ctx, `
		INSERT INTO frontier_datasets (name, x_label, y_label, point_count)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		d.Name, d.XLabel, d.YLabel, d.PointCount,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert dataset: %w", err)
	}

	rows := make([][]interface{}, len(d.Points))
	for i, p := range d.Points {
		var attrs []byte
		if len(p.Row) > 0 {
			if attrs, err = json.Marshal(p.Row); err != nil {
				return fmt.Errorf("marshal row %d: %w", i, err)
			}
		}
		rows[i] = []interface{}{d.ID, i, p.X, p.Y, attrs}
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"frontier_points"},
		[]string{"dataset_id", "idx", "x", "y", "attrs"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy points: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) GetDataset(ctx context.Context, id uuid.UUID) (*Dataset, error) {
	d := &Dataset{}
	err := s.pool.QueryRow(ctx, `
		SELECT `+datasetColumns+`
		FROM frontier_datasets WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.XLabel, &d.YLabel, &d.PointCount, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT x, y, attrs FROM frontier_points
		WHERE dataset_id = $1 ORDER BY idx`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	d.Points = make([]DataPoint, 0, d.PointCount)
	for rows.Next() {
		var p DataPoint
		var attrs []byte
		if err := rows.Scan(&p.X, &p.Y, &attrs); err != nil {
			return nil, err
		}
		if attrs != nil {
			_ = json.Unmarshal(attrs, &p.Row)
		}
		d.Points = append(d.Points, p)
	}
	return d, rows.Err()
}

func (s *PostgresStore) ListDatasets(ctx context.Context, filter DatasetFilter) ([]*Dataset, error) {
	query := `SELECT ` + datasetColumns + ` FROM frontier_datasets WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Name != "" {
		n++
		query += fmt.Sprintf(" AND name ILIKE $%d", n)
		args = append(args, "%"+filter.Name+"%")
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Dataset
	for rows.Next() {
		d := &Dataset{}
		if err := rows.Scan(&d.ID, &d.Name, &d.XLabel, &d.YLabel, &d.PointCount, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeleteDataset(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM frontier_datasets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
