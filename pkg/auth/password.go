package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrWrongAdminPassword is returned when the admin password does not match
var ErrWrongAdminPassword = errors.New("Falsches Admin-Passwort!")

// ErrAdminGateDisabled is returned when no admin password is configured
var ErrAdminGateDisabled = errors.New("admin password login is disabled")

// maxPasswordBytes is the longest input bcrypt compares in full
const maxPasswordBytes = 72

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a hashed password with a plain text password
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// AdminGate checks the shared admin password. Only the bcrypt hash is kept
// in memory.
type AdminGate struct {
	hash string
}

// NewAdminGate builds a gate from a precomputed bcrypt hash or, when hash is
// empty, from the plain password. Both empty yields a disabled gate.
func NewAdminGate(hash, password string) (*AdminGate, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("invalid admin password hash: %w", err)
		}
		return &AdminGate{hash: hash}, nil
	}
	if password == "" {
		return &AdminGate{}, nil
	}
	hashed, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &AdminGate{hash: hashed}, nil
}

// Enabled reports whether an admin password is configured
func (g *AdminGate) Enabled() bool {
	return g != nil && g.hash != ""
}

// Check verifies password. It never changes any state.
func (g *AdminGate) Check(password string) error {
	if !g.Enabled() {
		return ErrAdminGateDisabled
	}
	if password == "" || len(password) > maxPasswordBytes || !CheckPassword(g.hash, password) {
		return ErrWrongAdminPassword
	}
	return nil
}
