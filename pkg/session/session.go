// Package session owns the browser session: the issued token, the user record
// and the admin flag. A Session is loaded once per request from client storage
// and is the only writer of those keys.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jordanlanch/alug/pkg/models"
	"github.com/jordanlanch/alug/pkg/storage"
)

// AdminGrant records how a session obtained admin rights
type AdminGrant string

const (
	GrantNone     AdminGrant = "none"
	GrantAccount  AdminGrant = "account"
	GrantPassword AdminGrant = "password"
)

const adminFlagValue = "true"

// Session is the per-browser login state
type Session struct {
	store    storage.Store
	clientID string

	token string
	user  *models.User
	grant AdminGrant
}

// Load reads the session for clientID. A malformed user record or an expired
// JWT discards the stored session and yields a logged-out one.
func Load(ctx context.Context, store storage.Store, clientID string) (*Session, error) {
	return load(ctx, store, clientID, time.Now())
}

func load(ctx context.Context, store storage.Store, clientID string, now time.Time) (*Session, error) {
	s := &Session{store: store, clientID: clientID, grant: GrantNone}

	token, err := get(ctx, store, clientID, storage.KeyToken)
	if err != nil {
		return nil, err
	}
	rawUser, err := get(ctx, store, clientID, storage.KeyUser)
	if err != nil {
		return nil, err
	}
	adminFlag, err := get(ctx, store, clientID, storage.KeyAdmin)
	if err != nil {
		return nil, err
	}

	if token != "" && rawUser != "" {
		var user models.User
		if err := json.Unmarshal([]byte(rawUser), &user); err != nil || tokenExpired(token, now) {
			if err := s.clear(ctx); err != nil {
				return nil, err
			}
			return s, nil
		}
		s.token = token
		s.user = &user
	}

	switch {
	case s.user != nil && s.user.IsAdmin:
		s.grant = GrantAccount
	case adminFlag == adminFlagValue:
		s.grant = GrantPassword
	}
	return s, nil
}

func get(ctx context.Context, store storage.Store, clientID, key string) (string, error) {
	val, err := store.Get(ctx, clientID, key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session %s: %w", key, err)
	}
	return val, nil
}

// tokenExpired reports whether token is a JWT whose exp claim has passed.
// Opaque tokens never expire here; the backend remains the authority.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

// ClientID returns the browser id the session belongs to
func (s *Session) ClientID() string { return s.clientID }

// Token returns the bearer token, empty when logged out
func (s *Session) Token() string { return s.token }

// User returns the logged-in user or nil
func (s *Session) User() *models.User { return s.user }

// Authenticated reports whether a user is logged in
func (s *Session) Authenticated() bool { return s.token != "" && s.user != nil }

// Grant returns how admin rights were obtained
func (s *Session) Grant() AdminGrant { return s.grant }

// IsAdmin reports whether the session has admin rights by either channel
func (s *Session) IsAdmin() bool { return s.grant != GrantNone }

// Login persists the token and user issued by the backend. An admin account
// also persists the admin flag.
func (s *Session) Login(ctx context.Context, res *models.AuthResponse) error {
	if res == nil || res.Token == "" || res.User == nil {
		return errors.New("incomplete auth response")
	}

	rawUser, err := json.Marshal(res.User)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.store.Set(ctx, s.clientID, storage.KeyToken, res.Token, 0); err != nil {
		return err
	}
	if err := s.store.Set(ctx, s.clientID, storage.KeyUser, string(rawUser), 0); err != nil {
		return err
	}

	s.token = res.Token
	s.user = res.User

	if res.User.IsAdmin {
		if err := s.store.Set(ctx, s.clientID, storage.KeyAdmin, adminFlagValue, 0); err != nil {
			return err
		}
		s.grant = GrantAccount
	}
	return nil
}

// Register persists a freshly registered account the same way as Login
func (s *Session) Register(ctx context.Context, res *models.AuthResponse) error {
	return s.Login(ctx, res)
}

// GrantAdminByPassword persists the admin flag after a correct admin password
func (s *Session) GrantAdminByPassword(ctx context.Context) error {
	if err := s.store.Set(ctx, s.clientID, storage.KeyAdmin, adminFlagValue, 0); err != nil {
		return err
	}
	if s.grant != GrantAccount {
		s.grant = GrantPassword
	}
	return nil
}

// Logout removes token, user and admin flag
func (s *Session) Logout(ctx context.Context) error {
	return s.clear(ctx)
}

func (s *Session) clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.clientID, storage.KeyToken, storage.KeyUser, storage.KeyAdmin); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.token = ""
	s.user = nil
	s.grant = GrantNone
	return nil
}

// State returns the JSON view of the session. views is filled by the caller.
func (s *Session) State() models.SessionState {
	return models.SessionState{
		Authenticated: s.Authenticated(),
		User:          s.user,
		IsAdmin:       s.IsAdmin(),
		AdminGrant:    string(s.grant),
		Views:         []string{},
	}
}
