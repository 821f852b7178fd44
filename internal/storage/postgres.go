package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"nomadix/internal/models"
	"nomadix/internal/storage/migrations"
)

// db is satisfied by *pgxpool.Pool and pgx.Tx, so tests can run inside a rolled back transaction.
type db interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

var recordColumns = []string{
	"store_key", "position", "id", "city", "country", "continent", "latitude", "longitude", "date", "is_synced",
}

// PostgresStore keeps one row per record, ordered by position within its key.
type PostgresStore struct {
	db   db
	pool *pgxpool.Pool
}

// NewPostgresStore connects to dsn and brings the schema up to date.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	if err := migrate(ctx, dsn); err != nil {
		return nil, fmt.Errorf("storage.NewPostgresStore: %w", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage.NewPostgresStore: open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage.NewPostgresStore: ping: %w", err)
	}
	return &PostgresStore{db: pool, pool: pool}, nil
}

func newPostgresStoreWithDB(conn db) *PostgresStore {
	return &PostgresStore{db: conn}
}

// goose needs database/sql, not a pgx pool
func migrate(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]models.LocationRecord, error) {
	const q = `
		SELECT id, city, country, continent, latitude, longitude, date, is_synced
		FROM location_records
		WHERE store_key = $1
		ORDER BY position`

	rows, err := p.db.Query(ctx, q, key)
	if err != nil {
		return nil, fmt.Errorf("storage.PostgresStore.Get: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.LocationRecord, error) {
		var r models.LocationRecord
		err := row.Scan(&r.ID, &r.City, &r.Country, &r.Continent, &r.Latitude, &r.Longitude, &r.Date, &r.IsSynced)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("storage.PostgresStore.Get: %w", err)
	}
	return records, nil
}

// Set replaces every row of the key in one transaction.
func (p *PostgresStore) Set(ctx context.Context, key string, records []models.LocationRecord) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("storage.PostgresStore.Set: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM location_records WHERE store_key = $1`, key); err != nil {
		return fmt.Errorf("storage.PostgresStore.Set: delete: %w", err)
	}

	_, err = tx.CopyFrom(ctx, pgx.Identifier{"location_records"}, recordColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{key, i, r.ID, r.City, r.Country, r.Continent, r.Latitude, r.Longitude, r.Date, r.IsSynced}, nil
		}))
	if err != nil {
		return fmt.Errorf("storage.PostgresStore.Set: copy: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("storage.PostgresStore.Set: commit: %w", err)
	}
	return nil
}

func (p *PostgresStore) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}
