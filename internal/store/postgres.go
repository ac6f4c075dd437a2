package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

const schemaSQL = `CREATE TABLE IF NOT EXISTS clinic_stores (
	name       TEXT PRIMARY KEY,
	data       BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const (
	getSQL = `SELECT data FROM clinic_stores WHERE name = $1`
	putSQL = `INSERT INTO clinic_stores (name, data, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
)

// NewPostgresDB opens and pings a lib/pq connection.
func NewPostgresDB(cfg PostgresConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

type postgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore keeps every collection as one row of clinic_stores.
func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

// EnsureSchema creates the backing table when missing.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create clinic_stores: %w", err)
	}
	return nil
}

func (s *postgresStore) Get(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.db.GetContext(ctx, &data, getSQL, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoObject
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *postgresStore) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.db.ExecContext(ctx, putSQL, name, data)
	return err
}
