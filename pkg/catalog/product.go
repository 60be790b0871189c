package catalog

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/jordanlanch/alug/pkg/models"
)

// MaxImageBytes is the largest accepted product image
const MaxImageBytes = 5 * 1024 * 1024

// DefaultProductType is used when the form leaves the type empty
const DefaultProductType = "product"

// Product form errors carry the banner text shown to the admin
var (
	ErrRequiredFields = errors.New("Bitte fülle alle Pflichtfelder aus")
	ErrImageTooLarge  = errors.New("Bild ist zu groß (max 5MB)")
	ErrInvalidImage   = errors.New("Ungültiges Bildformat")
)

var validate = validator.New()

// ValidateProduct checks the admin product form, applies defaults and derives
// PriceValue from the display price. The returned input is what gets sent to
// the backend.
func ValidateProduct(in models.ProductInput) (models.ProductInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Price = strings.TrimSpace(in.Price)
	in.CommissionValue = strings.TrimSpace(in.CommissionValue)
	in.Category = strings.TrimSpace(in.Category)

	if err := validate.Struct(in); err != nil {
		return in, ErrRequiredFields
	}

	if in.Type == "" {
		in.Type = DefaultProductType
	}
	if in.CommissionType == "" {
		in.CommissionType = models.CommissionPercentage
	}

	if in.ImageData != "" {
		if err := checkImage(in.ImageData); err != nil {
			return in, err
		}
	}

	in.PriceValue = ParsePrice(in.Price)
	return in, nil
}

// checkImage validates a data URL ("data:image/png;base64,...")
func checkImage(dataURL string) error {
	_, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(dataURL, "data:") {
		return ErrInvalidImage
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes+2 {
		return ErrImageTooLarge
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return ErrInvalidImage
	}
	if len(raw) > MaxImageBytes {
		return ErrImageTooLarge
	}
	if !strings.HasPrefix(mimetype.Detect(raw).String(), "image/") {
		return ErrInvalidImage
	}
	return nil
}
