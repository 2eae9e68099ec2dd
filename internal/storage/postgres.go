package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"servicemap/internal/models"
)

const selectServices = `SELECT id::text, name, type, COALESCE(phone, ''), lat, lng, COALESCE(address, '')
FROM services
ORDER BY id`

// Querier is the subset of pgxpool.Pool used by PostgresSource.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads the dataset from the services table.
type PostgresSource struct {
	db Querier
}

func NewPostgresSource(db Querier) *PostgresSource {
	return &PostgresSource{db: db}
}

// OpenPostgres creates a pool for databaseURL and checks connectivity.
func OpenPostgres(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}
	return pool, nil
}

func (s *PostgresSource) Name() string { return "postgres:services" }

func (s *PostgresSource) Fetch(ctx context.Context) ([]models.ServiceRecord, error) {
	rows, err := s.db.Query(ctx, selectServices)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	records := []models.ServiceRecord{}
	for rows.Next() {
		var (
			rec models.ServiceRecord
			id  string
		)
		if err := rows.Scan(&id, &rec.Name, &rec.Type, &rec.Phone, &rec.Lat, &rec.Lng, &rec.Address); err != nil {
			return nil, fmt.Errorf("failed to scan service row: %w", err)
		}
		rec.ID = models.ID(id)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read service rows: %w", err)
	}
	return records, nil
}
