// Package errors writes the storefront's banner envelopes. Every failure the
// user sees is an ErrorResponse that dismisses after five seconds; successes
// dismiss after three.
package errors

import (
	"log"
	"net/http"

	"github.com/jordanlanch/alug/pkg/backend"
	"github.com/jordanlanch/alug/pkg/models"
	"github.com/labstack/echo/v4"
)

// Fixed banner texts
const (
	MsgLoginRequired = "Bitte melde dich an!"
	MsgAdminRequired = "Keine Admin-Berechtigung"
	MsgNotFound      = "Nicht gefunden"
	MsgInternal      = "Ein interner Fehler ist aufgetreten"
)

// Banner writes an error banner with the given status, code and message
func Banner(c echo.Context, status int, code, message string, nav *models.Navigation) error {
	return c.JSON(status, models.ErrorResponse{
		Error:          code,
		Message:        message,
		DismissAfterMS: models.ErrorBannerMillis,
		Navigation:     nav,
	})
}

// ValidationError returns a form validation failure. The error text is the
// German banner message.
func ValidationError(c echo.Context, err error) error {
	log.Printf("[VALIDATION ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return Banner(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
}

// BackendError reports a failed backend call. With passThrough the backend's
// own message is shown when there is one; otherwise fallback is.
func BackendError(c echo.Context, err error, fallback string, passThrough bool) error {
	log.Printf("[BACKEND ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	status := http.StatusBadGateway
	message := fallback

	if apiErr, ok := backend.AsAPIError(err); ok {
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			status = apiErr.Status
		}
		if passThrough && apiErr.Message != "" {
			message = apiErr.Message
		}
	}

	return Banner(c, status, "backend_error", message, nil)
}

// InternalError returns a generic internal server error
func InternalError(c echo.Context, err error) error {
	log.Printf("[INTERNAL ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return Banner(c, http.StatusInternalServerError, "internal_error", MsgInternal, nil)
}

// UnauthorizedError asks the user to log in and opens the auth modal
func UnauthorizedError(c echo.Context, nav *models.Navigation) error {
	return Banner(c, http.StatusUnauthorized, "unauthorized", MsgLoginRequired, nav)
}

// ForbiddenError returns a forbidden error with message
func ForbiddenError(c echo.Context, message string) error {
	if message == "" {
		message = MsgAdminRequired
	}
	return Banner(c, http.StatusForbidden, "forbidden", message, nil)
}

// NotFoundError returns a generic not found error
func NotFoundError(c echo.Context, resource string) error {
	log.Printf("[NOT FOUND] Path: %s, Resource: %s", c.Request().URL.Path, resource)

	return Banner(c, http.StatusNotFound, "not_found", MsgNotFound, nil)
}

// Success writes a success banner carrying data
func Success(c echo.Context, status int, message string, data any, nav *models.Navigation) error {
	return c.JSON(status, models.SuccessResponse{
		Success:        true,
		Message:        message,
		DismissAfterMS: models.SuccessBannerMillis,
		Data:           data,
		Navigation:     nav,
	})
}
