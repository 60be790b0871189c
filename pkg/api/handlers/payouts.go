package handlers

import (
	"context"
	"net/http"
	"strconv"

	apierrors "github.com/jordanlanch/alug/pkg/api/errors"
	"github.com/jordanlanch/alug/pkg/backend"
	"github.com/jordanlanch/alug/pkg/logger"
	"github.com/jordanlanch/alug/pkg/models"
	"github.com/jordanlanch/alug/pkg/payout"
	"github.com/jordanlanch/alug/pkg/session"
	"github.com/jordanlanch/alug/pkg/views"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Payout banner texts
const (
	MsgPayoutRequested     = "Auszahlung beantragt!"
	MsgPayoutFailed        = "Fehler bei Auszahlung"
	MsgStatusUpdated       = "Status aktualisiert"
	MsgStatusUpdateFailed  = "Fehler beim Aktualisieren"
	MsgInvalidPayoutStatus = "Ungültiger Status"
)

// PayoutHandler handles payout requests and admin status changes
type PayoutHandler struct {
	backend  Backend
	balances *payout.SnapshotStore
	log      logger.Logger
	metrics  Recorder
}

// NewPayoutHandler creates a new payout handler
func NewPayoutHandler(backend Backend, balances *payout.SnapshotStore, log logger.Logger, metrics Recorder) *PayoutHandler {
	return &PayoutHandler{
		backend:  backend,
		balances: balances,
		log:      log,
		metrics:  recorderOrNop(metrics),
	}
}

// RequestPayout godoc
// @Summary Request a payout
// @Description Validates amount and details against the balance last shown on the dashboard, then submits
// @Tags Payouts
// @Accept json
// @Produce json
// @Param request body models.PayoutForm true "Payout form"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /payouts [post]
func (h *PayoutHandler) RequestPayout(c echo.Context) error {
	var req models.PayoutForm
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c)
	}

	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	ctx := c.Request().Context()
	available, err := h.displayedBalance(ctx, sess)
	if err != nil {
		h.metrics.RecordPayoutRequest("failed")
		return apierrors.BackendError(c, err, MsgPayoutFailed, false)
	}

	form, err := payout.Validate(req, available)
	if err != nil {
		h.metrics.RecordPayoutRequest("rejected_validation")
		return apierrors.ValidationError(c, err)
	}

	if err := h.backend.RequestPayout(ctx, sess.Token(), form); err != nil {
		h.metrics.RecordPayoutRequest("failed")
		return apierrors.BackendError(c, err, MsgPayoutFailed, false)
	}
	h.metrics.RecordPayoutRequest("submitted")

	return apierrors.Success(c, http.StatusCreated, MsgPayoutRequested, h.refresh(ctx, sess),
		views.Close(views.ModalPayoutRequest))
}

// displayedBalance returns the balance the dashboard last showed. Without a
// snapshot the backend is asked directly.
func (h *PayoutHandler) displayedBalance(ctx context.Context, sess *session.Session) (decimal.Decimal, error) {
	available, ok, err := h.balances.Load(ctx, sess.ClientID())
	if err != nil {
		h.log.Warn("balance snapshot unavailable", "error", err)
	}
	if ok {
		return available, nil
	}

	bal, err := h.backend.Balance(ctx, sess.Token())
	if err != nil {
		return decimal.Zero, err
	}
	if err := h.balances.Save(ctx, sess.ClientID(), bal.Available); err != nil {
		h.log.Warn("failed to store balance snapshot", "error", err)
	}
	return bal.Available, nil
}

type payoutRefresh struct {
	Balance          *models.Balance        `json:"balance,omitempty"`
	CanRequestPayout bool                   `json:"can_request_payout"`
	Payouts          []models.PayoutRequest `json:"payouts"`
}

// refresh reloads balance and payout history after a request. Failures leave
// the section empty.
func (h *PayoutHandler) refresh(ctx context.Context, sess *session.Session) payoutRefresh {
	var (
		g       errgroup.Group
		balance backend.Result[*models.Balance]
		history backend.Result[[]models.PayoutRequest]
	)
	g.Go(func() error {
		balance = backend.Fetch(ctx, func(ctx context.Context) (*models.Balance, error) {
			return h.backend.Balance(ctx, sess.Token())
		})
		return nil
	})
	g.Go(func() error {
		history = backend.Fetch(ctx, func(ctx context.Context) ([]models.PayoutRequest, error) {
			return h.backend.MyPayouts(ctx, sess.Token())
		})
		return nil
	})
	_ = g.Wait()

	out := payoutRefresh{Payouts: payout.WithLabels(history.Or([]models.PayoutRequest{}))}
	if !history.OK() {
		h.log.Error("payouts error", "error", history.Err)
	}
	if bal := balance.Or(nil); bal != nil {
		out.Balance = bal
		out.CanRequestPayout = payout.CanRequest(*bal)
		if err := h.balances.Save(ctx, sess.ClientID(), bal.Available); err != nil {
			h.log.Warn("failed to store balance snapshot", "error", err)
		}
	} else {
		h.log.Error("balance error", "error", balance.Err)
	}
	return out
}

// UpdatePayoutStatus godoc
// @Summary Change a payout's status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Payout ID"
// @Param request body models.PayoutStatusUpdate true "New status"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/payouts/{id} [put]
func (h *PayoutHandler) UpdatePayoutStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return invalidRequest(c)
	}

	var req models.PayoutStatusUpdate
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c)
	}
	if !payout.ValidStatus(req.Status) {
		return apierrors.Banner(c, http.StatusBadRequest, "validation_error", MsgInvalidPayoutStatus, nil)
	}

	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	if err := h.backend.UpdatePayoutStatus(c.Request().Context(), sess.Token(), id, req.Status); err != nil {
		return apierrors.BackendError(c, err, MsgStatusUpdateFailed, false)
	}

	return apierrors.Success(c, http.StatusOK, MsgStatusUpdated, nil, nil)
}
