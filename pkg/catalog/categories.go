package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jordanlanch/alug/pkg/storage"
)

// DefaultCategories seeds the category set of a new browser session
var DefaultCategories = []string{"Gaming", "Hosting & Server", "Marketing", "Software", "Hardware"}

var (
	ErrEmptyCategory     = errors.New("category name is empty")
	ErrDuplicateCategory = errors.New("category already exists")
)

// Categories is an ordered set of category names
type Categories struct {
	names []string
}

// NewCategories builds a set from names, dropping blanks and duplicates.
// A nil slice yields the defaults.
func NewCategories(names []string) *Categories {
	if names == nil {
		names = DefaultCategories
	}
	c := &Categories{names: make([]string, 0, len(names))}
	for _, n := range names {
		_ = c.Add(n)
	}
	return c
}

// Names returns a copy of the category names in insertion order
func (c *Categories) Names() []string {
	return slices.Clone(c.names)
}

// Add appends name unless it is blank or already present
func (c *Categories) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyCategory
	}
	if slices.Contains(c.names, name) {
		return ErrDuplicateCategory
	}
	c.names = append(c.names, name)
	return nil
}

// Remove deletes name and reports whether it was present
func (c *Categories) Remove(name string) bool {
	i := slices.Index(c.names, name)
	if i < 0 {
		return false
	}
	c.names = slices.Delete(c.names, i, i+1)
	return true
}

// CategoryStore keeps each browser's category set in client storage
type CategoryStore struct {
	store storage.Store
	ttl   time.Duration
}

// NewCategoryStore creates a CategoryStore whose entries expire after ttl
func NewCategoryStore(store storage.Store, ttl time.Duration) *CategoryStore {
	return &CategoryStore{store: store, ttl: ttl}
}

// Load returns the stored set, or the defaults when nothing usable is stored
func (s *CategoryStore) Load(ctx context.Context, clientID string) (*Categories, error) {
	raw, err := s.store.Get(ctx, clientID, storage.KeyCategories)
	if errors.Is(err, storage.ErrNotFound) {
		return NewCategories(nil), nil
	}
	if err != nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return NewCategories(nil), nil
	}
	if names == nil {
		names = []string{}
	}
	return NewCategories(names), nil
}

// Save persists the set
func (s *CategoryStore) Save(ctx context.Context, clientID string, c *Categories) error {
	raw, err := json.Marshal(c.names)
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}
	return s.store.Set(ctx, clientID, storage.KeyCategories, string(raw), s.ttl)
}
