package auth

import (
	"strings"
	"testing"

	"github.com/jordanlanch/alug/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	password := "testpassword123"

	hashed, err := HashPassword(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hashed)
	assert.NotEqual(t, password, hashed)

	hashed2, err := HashPassword(password)
	require.NoError(t, err)
	assert.NotEqual(t, hashed, hashed2, "bcrypt salts each hash")

	assert.True(t, CheckPassword(hashed, password))
	assert.False(t, CheckPassword(hashed, "wrongpassword"))
}

func TestAdminGate(t *testing.T) {
	t.Run("Success - Plain password", func(t *testing.T) {
		gate, err := NewAdminGate("", "alug-admin")
		require.NoError(t, err)
		assert.True(t, gate.Enabled())
		assert.NoError(t, gate.Check("alug-admin"))
	})

	t.Run("Success - Precomputed hash", func(t *testing.T) {
		hash, err := HashPassword("s3cret")
		require.NoError(t, err)

		gate, err := NewAdminGate(hash, "ignored")
		require.NoError(t, err)
		assert.NoError(t, gate.Check("s3cret"))
		assert.ErrorIs(t, gate.Check("ignored"), ErrWrongAdminPassword)
	})

	t.Run("Error - Near misses are rejected", func(t *testing.T) {
		gate, err := NewAdminGate("", "alug-admin")
		require.NoError(t, err)

		for _, pw := range []string{"", "alug-admin ", "Alug-admin", "alug"} {
			assert.ErrorIs(t, gate.Check(pw), ErrWrongAdminPassword, pw)
		}
		assert.Equal(t, "Falsches Admin-Passwort!", gate.Check("x").Error())
	})

	t.Run("Error - Input longer than bcrypt compares", func(t *testing.T) {
		prefix := strings.Repeat("a", maxPasswordBytes)
		hash, err := bcrypt.GenerateFromPassword([]byte(prefix), bcrypt.MinCost)
		require.NoError(t, err)

		gate, err := NewAdminGate(string(hash), "")
		require.NoError(t, err)
		assert.NoError(t, gate.Check(prefix))
		assert.ErrorIs(t, gate.Check(prefix+"-anything"), ErrWrongAdminPassword)
	})

	t.Run("Error - Disabled gate", func(t *testing.T) {
		gate, err := NewAdminGate("", "")
		require.NoError(t, err)
		assert.False(t, gate.Enabled())
		assert.ErrorIs(t, gate.Check("anything"), ErrAdminGateDisabled)
	})

	t.Run("Error - Invalid hash", func(t *testing.T) {
		_, err := NewAdminGate("not-a-bcrypt-hash", "")
		assert.Error(t, err)
	})
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name    string
		req     models.RegisterRequest
		wantErr error
	}{
		{"Success - Complete form", models.RegisterRequest{Name: "Anna", Email: "a@example.com", Password: "pw", ConfirmPassword: "pw"}, nil},
		{"Error - Missing name", models.RegisterRequest{Email: "a@example.com", Password: "pw", ConfirmPassword: "pw"}, ErrFieldsMissing},
		{"Error - Blank email", models.RegisterRequest{Name: "Anna", Email: "   ", Password: "pw", ConfirmPassword: "pw"}, ErrFieldsMissing},
		{"Error - Missing password", models.RegisterRequest{Name: "Anna", Email: "a@example.com"}, ErrFieldsMissing},
		{"Error - Mismatch", models.RegisterRequest{Name: "Anna", Email: "a@example.com", Password: "a", ConfirmPassword: "b"}, ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			err := ValidateRegistration(&req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateLogin(t *testing.T) {
	assert.NoError(t, ValidateLogin(&models.LoginRequest{Email: "a@example.com", Password: "pw"}))
	assert.ErrorIs(t, ValidateLogin(&models.LoginRequest{Email: "a@example.com"}), ErrFieldsMissing)
}
