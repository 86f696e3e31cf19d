package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/eos/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database abstracts the pgx pool methods used by the repository so that
// pgxmock can stand in during tests.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository is a geocode cache backed by a PostgreSQL table. It is
// the backend of choice when several service instances share one cache;
// row-level upserts replace the file backend's whole-file rewrite.
type PostgresRepository struct {
	db  Database
	log *slog.Logger
}

// NewPostgresRepository creates a new instance of PostgresRepository with the provided Database.
func NewPostgresRepository(db Database, log *slog.Logger) *PostgresRepository {
	return &PostgresRepository{db: db, log: log}
}

// NewDatabase connects to PostgreSQL and verifies the connection with a ping.
func NewDatabase(host, port, user, password, name string) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, password, host, port, name)

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

const lookupQuery = `
	SELECT latitude, longitude, display_name
	FROM geocode_cache
	WHERE city_key = $1;
`

const storeQuery = `
	INSERT INTO geocode_cache (city_key, latitude, longitude, display_name)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (city_key) DO UPDATE SET
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		display_name = EXCLUDED.display_name;
`

const schemaQuery = `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		city_key TEXT PRIMARY KEY,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		display_name TEXT NOT NULL DEFAULT ''
	);
`

// EnsureSchema creates the cache table if it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaQuery); err != nil {
		return fmt.Errorf("failed to create geocode cache table: %w", err)
	}

	return nil
}

// Lookup returns the cached record for key. Database errors degrade to a
// cache miss so the pipeline falls through to live resolution.
func (r *PostgresRepository) Lookup(ctx context.Context, key string) (models.LocationRecord, bool) {
	var record models.LocationRecord

	err := r.db.QueryRow(ctx, lookupQuery, key).
		Scan(&record.Latitude, &record.Longitude, &record.DisplayName)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.LocationRecord{}, false
	}
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to query geocode cache, treating as miss", "key", key, "error", err)
		return models.LocationRecord{}, false
	}

	return record, true
}

// Store upserts the record for key, best-effort. Failures are logged and
// swallowed per the cache contract.
func (r *PostgresRepository) Store(ctx context.Context, key string, record models.LocationRecord) {
	_, err := r.db.Exec(ctx, storeQuery, key, record.Latitude, record.Longitude, record.DisplayName)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to store geocode cache record", "key", key, "error", err)
	}
}
