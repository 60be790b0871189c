package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/jordanlanch/alug/pkg/api/errors"
	"github.com/jordanlanch/alug/pkg/auth"
	"github.com/jordanlanch/alug/pkg/models"
	"github.com/jordanlanch/alug/pkg/views"
	"github.com/labstack/echo/v4"
)

// Auth banner texts
const (
	MsgLoginSuccess     = "Erfolgreich angemeldet!"
	MsgLoginFailed      = "Login fehlgeschlagen"
	MsgRegisterSuccess  = "Erfolgreich registriert!"
	MsgRegisterFailed   = "Registrierung fehlgeschlagen"
	MsgLogoutSuccess    = "Erfolgreich abgemeldet"
	MsgAdminEnabled     = "Admin-Modus aktiviert! 🔓"
	MsgAdminGateDisable = "Admin-Login ist deaktiviert"
)

// AuthHandler handles login, registration, logout and the admin password
type AuthHandler struct {
	backend Backend
	gate    *auth.AdminGate
	metrics Recorder
}

// NewAuthHandler creates a new auth handler. gate may be disabled.
func NewAuthHandler(backend Backend, gate *auth.AdminGate, metrics Recorder) *AuthHandler {
	return &AuthHandler{
		backend: backend,
		gate:    gate,
		metrics: recorderOrNop(metrics),
	}
}

// Login godoc
// @Summary Log in
// @Description Authenticates against the backend and stores token and user in the session
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c)
	}
	if err := auth.ValidateLogin(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	ctx := c.Request().Context()
	res, err := h.backend.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.metrics.RecordLoginAttempt("user", false)
		return apierrors.BackendError(c, err, MsgLoginFailed, true)
	}
	if err := sess.Login(ctx, res); err != nil {
		h.metrics.RecordLoginAttempt("user", false)
		return apierrors.BackendError(c, err, MsgLoginFailed, false)
	}
	h.metrics.RecordLoginAttempt("user", true)

	return apierrors.Success(c, http.StatusOK, MsgLoginSuccess, stateOf(sess), views.Close(views.ModalUserAuth))
}

// Register godoc
// @Summary Register
// @Description Validates the form locally, registers with the backend and logs the new user in
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration form"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c)
	}

	// Checked before any backend call
	if err := auth.ValidateRegistration(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	ctx := c.Request().Context()
	res, err := h.backend.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return apierrors.BackendError(c, err, MsgRegisterFailed, true)
	}
	if err := sess.Register(ctx, res); err != nil {
		return apierrors.BackendError(c, err, MsgRegisterFailed, false)
	}
	h.metrics.RecordUserRegistered()

	return apierrors.Success(c, http.StatusCreated, MsgRegisterSuccess, stateOf(sess), views.Close(views.ModalUserAuth))
}

// Logout godoc
// @Summary Log out
// @Description Clears token, user and admin flag and returns to the shop
// @Tags Authentication
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}
	if err := sess.Logout(c.Request().Context()); err != nil {
		return apierrors.InternalError(c, err)
	}

	return apierrors.Success(c, http.StatusOK, MsgLogoutSuccess, stateOf(sess), views.Navigate(views.Shop, nil))
}

// AdminLogin godoc
// @Summary Enter admin mode by password
// @Description Grants admin rights to this browser when the shared admin password matches
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.AdminLoginRequest true "Admin password"
// @Success 200 {object} models.SuccessResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/admin [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req models.AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c)
	}

	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	if err := h.gate.Check(req.Password); err != nil {
		h.metrics.RecordLoginAttempt("admin", false)
		if errors.Is(err, auth.ErrAdminGateDisabled) {
			return apierrors.ForbiddenError(c, MsgAdminGateDisable)
		}
		return apierrors.Banner(c, http.StatusUnauthorized, "wrong_admin_password", err.Error(), nil)
	}

	if err := sess.GrantAdminByPassword(c.Request().Context()); err != nil {
		return apierrors.InternalError(c, err)
	}
	h.metrics.RecordLoginAttempt("admin", true)

	return apierrors.Success(c, http.StatusOK, MsgAdminEnabled, stateOf(sess),
		views.Navigate(views.Shop, nil, views.ModalAdminLogin))
}
