package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/giygas/medreview-api/interfaces"
	"github.com/giygas/medreview-api/logging"
	"github.com/giygas/medreview-api/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ interfaces.ReportStore = (*PostgresStore)(nil)

const schema = `
	CREATE TABLE IF NOT EXISTS assessments (
		id          UUID PRIMARY KEY,
		kind        TEXT NOT NULL,
		report_data TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// PostgresStore keeps assessments in the assessments table
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to databaseURL, checks the connection and makes
// sure the table exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &PostgresStore{pool: pool}
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logging.Info("Connected to assessment database")
	return store, nil
}

// EnsureSchema creates the assessments table if it is missing
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create assessments table: %w", err)
	}
	return nil
}

// Save inserts an assessment
func (s *PostgresStore) Save(ctx context.Context, a *models.Assessment) error {
	query := `
		INSERT INTO assessments (id, kind, report_data, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.pool.Exec(ctx, query, a.ID, string(a.Kind), a.ReportData, a.CreatedAt); err != nil {
		return fmt.Errorf("insert assessment %s: %w", a.ID, err)
	}
	return nil
}

// Get loads one assessment by id
func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*models.Assessment, error) {
	query := `
		SELECT id, kind, report_data, created_at
		FROM assessments
		WHERE id = $1
	`

	var a models.Assessment
	var kind string
	err := s.pool.QueryRow(ctx, query, id).Scan(&a.ID, &kind, &a.ReportData, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select assessment %s: %w", id, err)
	}

	a.Kind = models.Kind(kind)
	return &a, nil
}

// Count returns the number of stored assessments
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM assessments`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count assessments: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
