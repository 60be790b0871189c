package payout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jordanlanch/alug/pkg/storage"
	"github.com/shopspring/decimal"
)

// SnapshotStore remembers the available balance last shown to a browser.
// Payout requests are checked against it.
type SnapshotStore struct {
	store storage.Store
	ttl   time.Duration
}

// NewSnapshotStore creates a SnapshotStore whose entries expire after ttl
func NewSnapshotStore(store storage.Store, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{store: store, ttl: ttl}
}

// Save records the displayed available balance
func (s *SnapshotStore) Save(ctx context.Context, clientID string, available decimal.Decimal) error {
	return s.store.Set(ctx, clientID, storage.KeyBalance, available.String(), s.ttl)
}

// Load returns the displayed balance and whether one was recorded
func (s *SnapshotStore) Load(ctx context.Context, clientID string) (decimal.Decimal, bool, error) {
	raw, err := s.store.Get(ctx, clientID, storage.KeyBalance)
	if errors.Is(err, storage.ErrNotFound) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("corrupt balance snapshot: %w", err)
	}
	return d, true, nil
}
