package ledger

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jonathan/job-assistant/internal/types"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

var pgColumns = []string{"row_index", "date", "company", "role", "platform", "status", "response", "interview_date", "notes"}

// PostgresStore keeps the ledger in a PostgreSQL table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects, verifies the connection and applies pending migrations.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Migrate applies the embedded goose migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(s.pool)
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run ledger migrations: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Load implements Store.
func (s *PostgresStore) Load(ctx context.Context) ([]types.ApplicationRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT date, company, role, platform, status, response, interview_date, notes
		 FROM applications ORDER BY row_index`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	records := []types.ApplicationRecord{}
	for rows.Next() {
		var rec types.ApplicationRecord
		var status string
		if err := rows.Scan(&rec.Date, &rec.Company, &rec.Position, &rec.Platform, &status,
			&rec.Response, &rec.InterviewDate, &rec.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		rec.Status = types.Status(status)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}
	return records, nil
}

// Save implements Store. Rows are replaced in one transaction.
func (s *PostgresStore) Save(ctx context.Context, records []types.ApplicationRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM applications`); err != nil {
		return fmt.Errorf("failed to clear applications: %w", err)
	}

	data := make([][]any, len(records))
	for i, rec := range records {
		data[i] = []any{i, rec.Date, rec.Company, rec.Position, rec.Platform, string(rec.Status),
			rec.Response, rec.InterviewDate, rec.Notes}
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"applications"}, pgColumns, pgx.CopyFromRows(data)); err != nil {
		return fmt.Errorf("failed to copy applications: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit applications: %w", err)
	}
	return nil
}
