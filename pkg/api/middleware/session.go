// Package middleware binds each request to a browser client and its session.
package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	apierrors "github.com/jordanlanch/alug/pkg/api/errors"
	"github.com/jordanlanch/alug/pkg/session"
	"github.com/jordanlanch/alug/pkg/storage"
	"github.com/jordanlanch/alug/pkg/views"
	"github.com/labstack/echo/v4"
)

// Context keys
const (
	clientIDKey = "client_id"
	sessionKey  = "session"
)

const clientCookieMaxAge = 365 * 24 * time.Hour

var errMissingClientID = errors.New("request has no client id")

// ClientID assigns every browser a random id kept in cookieName. The id
// partitions client storage the way one browser's local storage would.
func ClientID(cookieName string, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string
			if cookie, err := c.Cookie(cookieName); err == nil {
				if parsed, err := uuid.Parse(cookie.Value); err == nil {
					id = parsed.String()
				}
			}

			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     cookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(clientCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(clientIDKey, id)
			return next(c)
		}
	}
}

// LoadSession loads the session of the request's client. It must run after
// ClientID.
func LoadSession(store storage.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientID := GetClientID(c)
			if clientID == "" {
				return apierrors.InternalError(c, errMissingClientID)
			}

			sess, err := session.Load(c.Request().Context(), store, clientID)
			if err != nil {
				return apierrors.InternalError(c, err)
			}

			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// RequireLogin rejects logged-out sessions and opens the auth modal
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := GetSession(c)
			if sess == nil || !sess.Authenticated() {
				return apierrors.UnauthorizedError(c, views.Open(views.ModalUserAuth))
			}
			return next(c)
		}
	}
}

// RequireAdmin rejects sessions without admin rights from either channel
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := GetSession(c)
			if sess == nil || !sess.IsAdmin() {
				return apierrors.ForbiddenError(c, "")
			}
			return next(c)
		}
	}
}

// GetClientID returns the client id set by ClientID
func GetClientID(c echo.Context) string {
	id, _ := c.Get(clientIDKey).(string)
	return id
}

// GetSession returns the session set by LoadSession
func GetSession(c echo.Context) *session.Session {
	sess, _ := c.Get(sessionKey).(*session.Session)
	return sess
}
