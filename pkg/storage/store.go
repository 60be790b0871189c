// Package storage persists per-browser state: the session token and user
// record, the admin flag, cookie consent, the legal configuration and a few
// short-lived view values. Each browser is identified by a client id.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Keys stored per client
const (
	KeyToken           = "token"
	KeyUser            = "user"
	KeyAdmin           = "isAdmin"
	KeyCookiesAccepted = "cookiesAccepted"
	KeyLegalData       = "legalData"
	KeyCategories      = "categories"
	KeyBalance         = "balance"
)

// ErrNotFound is returned by Get when the key is absent or expired
var ErrNotFound = errors.New("storage: key not found")

// Store is a per-client key/value store. A zero ttl keeps the value until it
// is deleted.
type Store interface {
	Get(ctx context.Context, clientID, key string) (string, error)
	Set(ctx context.Context, clientID, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, clientID string, keys ...string) error
	Close() error
}

// Open creates the store for driver. dsn is the Redis URL for "redis" and
// the database DSN for "sqlite" and "postgres"; it is ignored for "memory".
func Open(driver, dsn string) (Store, error) {
	switch driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(dsn)
	case "sqlite", "sqlite3":
		return NewSQLStore("sqlite3", dsn)
	case "postgres":
		return NewSQLStore("postgres", dsn)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
