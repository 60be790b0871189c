package auth

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jordanlanch/alug/pkg/models"
)

// Form errors carry the banner text shown to the user
var (
	ErrFieldsMissing    = errors.New("Bitte fülle alle Felder aus!")
	ErrPasswordMismatch = errors.New("Passwörter stimmen nicht überein!")
)

var validate = validator.New()

// ValidateRegistration checks the registration form before any backend call
func ValidateRegistration(req *models.RegisterRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if err := validate.Struct(req); err != nil {
		return ErrFieldsMissing
	}
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

// ValidateLogin checks that email and password are present
func ValidateLogin(req *models.LoginRequest) error {
	req.Email = strings.TrimSpace(req.Email)

	if err := validate.Struct(req); err != nil {
		return ErrFieldsMissing
	}
	return nil
}
