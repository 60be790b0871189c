package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const clientStorageSchema = `
CREATE TABLE IF NOT EXISTS client_storage (
	client_id  VARCHAR(64)  NOT NULL,
	item_key   VARCHAR(64)  NOT NULL,
	value      TEXT         NOT NULL,
	expires_at BIGINT,
	PRIMARY KEY (client_id, item_key)
)`

type storageRow struct {
	Value     string        `db:"value"`
	ExpiresAt sql.NullInt64 `db:"expires_at"`
}

// SQLStore keeps client state in a client_storage table. It works with
// SQLite and PostgreSQL. expires_at holds unix milliseconds, NULL for no
// expiry.
type SQLStore struct {
	DB  *sqlx.DB
	now func() time.Time
}

// NewSQLStore opens driverName ("sqlite3" or "postgres") and creates the
// table if needed
func NewSQLStore(driverName, dsn string) (*SQLStore, error) {
	db, err := sqlx.Connect(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed opening connection to %s: %w", driverName, err)
	}
	if driverName == "sqlite3" {
		// one writer keeps SQLite from returning SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}

	store := NewSQLStoreFromDB(db)
	if err := store.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("✅ Client storage connected (%s)", driverName)
	return store, nil
}

// NewSQLStoreFromDB wraps an existing connection
func NewSQLStoreFromDB(db *sqlx.DB) *SQLStore {
	return &SQLStore{DB: db, now: time.Now}
}

// Migrate creates the client_storage table
func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, clientStorageSchema); err != nil {
		return fmt.Errorf("failed creating schema resources: %w", err)
	}
	return nil
}

// Get returns the value for key or ErrNotFound
func (s *SQLStore) Get(ctx context.Context, clientID, key string) (string, error) {
	var row storageRow
	query := s.DB.Rebind(`SELECT value, expires_at FROM client_storage WHERE client_id = ? AND item_key = ?`)
	err := s.DB.GetContext(ctx, &row, query, clientID, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	if row.ExpiresAt.Valid && row.ExpiresAt.Int64 <= s.now().UnixMilli() {
		return "", ErrNotFound
	}
	return row.Value, nil
}

// Set upserts value under key
func (s *SQLStore) Set(ctx context.Context, clientID, key, value string, ttl time.Duration) error {
	var expiresAt sql.NullInt64
	if ttl > 0 {
		expiresAt = sql.NullInt64{Int64: s.now().Add(ttl).UnixMilli(), Valid: true}
	}

	query := s.DB.Rebind(`
		INSERT INTO client_storage (client_id, item_key, value, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (client_id, item_key) DO UPDATE
		SET value = excluded.value, expires_at = excluded.expires_at`)
	if _, err := s.DB.ExecContext(ctx, query, clientID, key, value, expiresAt); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes keys
func (s *SQLStore) Delete(ctx context.Context, clientID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM client_storage WHERE client_id = ? AND item_key IN (?)`, clientID, keys)
	if err != nil {
		return fmt.Errorf("failed to build delete: %w", err)
	}
	if _, err := s.DB.ExecContext(ctx, s.DB.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	return nil
}

// PurgeExpired deletes expired rows and returns how many were removed
func (s *SQLStore) PurgeExpired(ctx context.Context) (int64, error) {
	query := s.DB.Rebind(`DELETE FROM client_storage WHERE expires_at IS NOT NULL AND expires_at <= ?`)
	res, err := s.DB.ExecContext(ctx, query, s.now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired rows: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.DB.Close()
}

// Ping checks the database connection
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}
