package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/onix-analytics/profiler-engine/pkg/dataset"
)

// PostgresSource loads tables from a Postgres database into datasets.
type PostgresSource struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresSource wraps an existing connection pool.
func NewPostgresSource(pool *pgxpool.Pool, logger *zap.Logger) *PostgresSource {
	return &PostgresSource{
		pool:   pool,
		logger: logger.Named("postgres-source"),
	}
}

// Connect creates a pooled Postgres connection from a connection string and
// verifies it with a ping.
func Connect(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// LoadTable reads up to limit rows of the named table in its natural order.
// The table name is quoted as an identifier, never interpolated as SQL.
func (s *PostgresSource) LoadTable(ctx context.Context, tableName string, limit int) (*dataset.Table, error) {
	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d", pgx.Identifier{tableName}.Sanitize(), limit)

	s.logger.Debug("loading table", zap.String("table", tableName), zap.Int("limit", limit))

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", tableName, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	cells := make([][]any, len(fields))
	count := 0
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", count, err)
		}
		for i, v := range values {
			cells[i] = append(cells[i], normalizeCell(v))
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", tableName, err)
	}

	columns := make([]dataset.Column, 0, len(fields))
	for i, fd := range fields {
		columns = append(columns, dataset.Column{Name: string(fd.Name), Cells: cells[i]})
	}

	s.logger.Info("table loaded",
		zap.String("table", tableName),
		zap.Int("rows", count),
		zap.Int("columns", len(columns)))

	return dataset.New(columns...)
}

// normalizeCell maps driver values onto the cell kinds the profiler
// understands. Exotic pg types (numeric, interval, arrays) degrade to their
// string form, which the profiler's numeric-string classification absorbs.
func normalizeCell(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(t)
	case time.Time, string, bool:
		return t
	}
	if dataset.IsNumeric(v) {
		return v
	}
	return fmt.Sprint(v)
}
