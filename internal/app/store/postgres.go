package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// PostgresStore persists each collection as one jsonb row in a collections
// table, upserted wholesale per save. The whole-collection read/write contract
// is identical to the file backend's.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore initializes a new PostgreSQL connection pool, executes
// database migrations, and returns the store.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database DSN: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute
	config.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	if err := runMigrations(sqlDB); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// runMigrations applies all pending migrations from the embedded file system.
func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// Load reads the named collection row into dst. A collection without a row yet
// is initialized as an empty sequence.
func (s *PostgresStore) Load(ctx context.Context, name string, dst any) error {
	var raw []byte

	err := s.pool.QueryRow(ctx,
		`SELECT data FROM collections WHERE name = $1`, name,
	).Scan(&raw)

	if errors.Is(err, pgx.ErrNoRows) {
		if _, err := s.pool.Exec(ctx,
			`INSERT INTO collections (name, data) VALUES ($1, '[]'::jsonb)
			 ON CONFLICT (name) DO NOTHING`, name,
		); err != nil {
			return fmt.Errorf("failed to initialize collection %s: %w", name, err)
		}
		raw = []byte("[]")
	} else if err != nil {
		return fmt.Errorf("failed to read collection %s: %w", name, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("collection %s is corrupt: %w", name, err)
	}

	return nil
}

// Save replaces the named collection row with the given records.
func (s *PostgresStore) Save(ctx context.Context, name string, records any) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", name, err)
	}

	if _, err := s.pool.Exec(ctx,
		`INSERT INTO collections (name, data) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		name, raw,
	); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", name, err)
	}

	return nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
