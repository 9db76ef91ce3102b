package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresKV stores collections in a single two-column table. It exists for
// deployments that already run Postgres; the schema is created on open.
type PostgresKV struct {
	db *sql.DB
}

const createKVTable = `
CREATE TABLE IF NOT EXISTS sitedesk_kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

func NewPostgresKV(dsn string) (*PostgresKV, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.Exec(createKVTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &PostgresKV{db: db}, nil
}

func (p *PostgresKV) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := p.db.QueryRowContext(ctx, `SELECT value FROM sitedesk_kv WHERE key = $1`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", ErrMiss
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (p *PostgresKV) Set(ctx context.Context, key string, value string) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO sitedesk_kv (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	return err
}

func (p *PostgresKV) Remove(ctx context.Context, key string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM sitedesk_kv WHERE key = $1`, key)
	return err
}

func (p *PostgresKV) Close() error { return p.db.Close() }
