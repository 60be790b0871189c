package legal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jordanlanch/alug/pkg/models"
	"github.com/jordanlanch/alug/pkg/storage"
)

const cookiesAcceptedValue = "true"

// ConfigStore keeps the legal configuration under the legalData key
type ConfigStore struct {
	store storage.Store
}

// NewConfigStore creates a ConfigStore over store
func NewConfigStore(store storage.Store) *ConfigStore {
	return &ConfigStore{store: store}
}

// Load returns the saved configuration. Missing or malformed data yields an
// empty configuration.
func (s *ConfigStore) Load(ctx context.Context, clientID string) (models.LegalConfig, error) {
	var cfg models.LegalConfig

	raw, err := s.store.Get(ctx, clientID, storage.KeyLegalData)
	if errors.Is(err, storage.ErrNotFound) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return models.LegalConfig{}, nil
	}
	return cfg, nil
}

// Save persists cfg as entered
func (s *ConfigStore) Save(ctx context.Context, clientID string, cfg models.LegalConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode legal config: %w", err)
	}
	return s.store.Set(ctx, clientID, storage.KeyLegalData, string(raw), 0)
}

// Consent tracks whether the cookie banner was accepted
type Consent struct {
	store storage.Store
}

// NewConsent creates a Consent over store
func NewConsent(store storage.Store) *Consent {
	return &Consent{store: store}
}

// State reports whether the banner should be shown
func (c *Consent) State(ctx context.Context, clientID string) (models.ConsentState, error) {
	val, err := c.store.Get(ctx, clientID, storage.KeyCookiesAccepted)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return models.ConsentState{}, err
	}
	return models.ConsentState{BannerVisible: val != cookiesAcceptedValue}, nil
}

// Accept records consent. Accepting again changes nothing.
func (c *Consent) Accept(ctx context.Context, clientID string) error {
	return c.store.Set(ctx, clientID, storage.KeyCookiesAccepted, cookiesAcceptedValue, 0)
}

// Decline hides the banner for the current view only; nothing is stored
func (c *Consent) Decline(_ context.Context, _ string) error {
	return nil
}
