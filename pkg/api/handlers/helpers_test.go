package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jordanlanch/alug/pkg/api/middleware"
	"github.com/jordanlanch/alug/pkg/backend"
	"github.com/jordanlanch/alug/pkg/models"
	"github.com/jordanlanch/alug/pkg/storage"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testCookie = "alug_client"

var errBackendDown = errors.New("connection refused")

// fakeBackend serves canned data and records which operations were called
type fakeBackend struct {
	mu    sync.Mutex
	calls map[string]int
	errs  map[string]error

	auth     *models.AuthResponse
	products []models.Product
	links    []models.AffiliateLink
	balance  *models.Balance
	payouts  []models.PayoutRequest

	payoutForm   models.PayoutForm
	statusUpdate models.PayoutStatus
	created      models.ProductInput
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: map[string]int{}, errs: map[string]error{}}
}

func (f *fakeBackend) called(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.errs[op]
}

func (f *fakeBackend) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeBackend) Login(_ context.Context, _, _ string) (*models.AuthResponse, error) {
	if err := f.called("login"); err != nil {
		return nil, err
	}
	return f.auth, nil
}

func (f *fakeBackend) Register(_ context.Context, _, _, _ string) (*models.AuthResponse, error) {
	if err := f.called("register"); err != nil {
		return nil, err
	}
	return f.auth, nil
}

func (f *fakeBackend) ListProducts(_ context.Context, _ string) ([]models.Product, error) {
	if err := f.called("products.list"); err != nil {
		return nil, err
	}
	return f.products, nil
}

func (f *fakeBackend) CreateProduct(_ context.Context, _ string, input models.ProductInput) (*models.Product, error) {
	if err := f.called("products.create"); err != nil {
		return nil, err
	}
	f.created = input
	return &models.Product{ID: 99, Name: input.Name}, nil
}

func (f *fakeBackend) DeleteProduct(_ context.Context, _ string, _ int) error {
	return f.called("products.delete")
}

func (f *fakeBackend) GenerateLink(_ context.Context, _ string, productID int) (*models.AffiliateLink, error) {
	if err := f.called("affiliate.generate"); err != nil {
		return nil, err
	}
	link := models.AffiliateLink{ID: len(f.links) + 1, ProductID: productID, LinkCode: "new00001"}
	f.links = append(f.links, link)
	return &link, nil
}

func (f *fakeBackend) MyLinks(_ context.Context, _ string) ([]models.AffiliateLink, error) {
	if err := f.called("affiliate.my_links"); err != nil {
		return nil, err
	}
	return f.links, nil
}

func (f *fakeBackend) Balance(_ context.Context, _ string) (*models.Balance, error) {
	if err := f.called("payouts.balance"); err != nil {
		return nil, err
	}
	return f.balance, nil
}

func (f *fakeBackend) MyPayouts(_ context.Context, _ string) ([]models.PayoutRequest, error) {
	if err := f.called("payouts.mine"); err != nil {
		return nil, err
	}
	return f.payouts, nil
}

func (f *fakeBackend) RequestPayout(_ context.Context, _ string, form models.PayoutForm) error {
	if err := f.called("payouts.request"); err != nil {
		return err
	}
	f.payoutForm = form
	return nil
}

func (f *fakeBackend) UpdatePayoutStatus(_ context.Context, _ string, _ int, status models.PayoutStatus) error {
	if err := f.called("admin.update_payout"); err != nil {
		return err
	}
	f.statusUpdate = status
	return nil
}

// testEnv is an echo instance with the client and session middleware over
// an in-memory store, seen from one browser
type testEnv struct {
	e        *echo.Echo
	store    *storage.MemoryStore
	backend  *fakeBackend
	clientID string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := storage.NewMemoryStore()
	e := echo.New()
	e.Use(middleware.ClientID(testCookie, false), middleware.LoadSession(store))
	return &testEnv{
		e:        e,
		store:    store,
		backend:  newFakeBackend(),
		clientID: uuid.NewString(),
	}
}

// do sends a request from the env's browser
func (env *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.AddCookie(&http.Cookie{Name: testCookie, Value: env.clientID})
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

// login stores a session for the env's browser
func (env *testEnv) login(t *testing.T, admin bool) {
	t.Helper()
	user, err := json.Marshal(models.User{ID: 7, Name: "Anna", Email: "anna@example.com", IsAdmin: admin})
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, env.store.Set(ctx, env.clientID, storage.KeyToken, "tok-1", 0))
	require.NoError(t, env.store.Set(ctx, env.clientID, storage.KeyUser, string(user), 0))
	if admin {
		require.NoError(t, env.store.Set(ctx, env.clientID, storage.KeyAdmin, "true", 0))
	}
}

func (env *testEnv) stored(t *testing.T, key string) (string, bool) {
	t.Helper()
	v, err := env.store.Get(context.Background(), env.clientID, key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", false
	}
	require.NoError(t, err)
	return v, true
}

func parseError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func parseSuccess(t *testing.T, rec *httptest.ResponseRecorder) models.SuccessResponse {
	t.Helper()
	var body models.SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func apiError(status int, message string) error {
	return &backend.APIError{Operation: "test", Status: status, Message: message}
}

func (f *fakeBackend) MyStats(_ context.Context, _ string) (*models.MyStats, error) {
	if err := f.called("analytics.my_stats"); err != nil {
		return nil, err
	}
	return &models.MyStats{TotalClicks: "10", TotalConversions: "2"}, nil
}

func (f *fakeBackend) DailyStats(_ context.Context, _ string) ([]models.DailyStat, error) {
	if err := f.called("analytics.daily"); err != nil {
		return nil, err
	}
	return []models.DailyStat{{Date: "2024-10-18", Clicks: "4", Conversions: "1"}}, nil
}

func (f *fakeBackend) ProductStats(_ context.Context, _ string) ([]models.ProductStat, error) {
	if err := f.called("analytics.products"); err != nil {
		return nil, err
	}
	return []models.ProductStat{{Name: "Gaming Headset Pro X", Revenue: "1234.5", Conversions: "3"}}, nil
}

func (f *fakeBackend) TopMarketers(_ context.Context, _ string) ([]models.TopMarketer, error) {
	if err := f.called("leaderboard.marketers"); err != nil {
		return nil, err
	}
	return []models.TopMarketer{{ID: 1, Name: "Anna"}}, nil
}

func (f *fakeBackend) TopProducts(_ context.Context, _ string) ([]models.TopProduct, error) {
	if err := f.called("leaderboard.products"); err != nil {
		return nil, err
	}
	return []models.TopProduct{{ID: 2, Name: "VPS"}}, nil
}

func (f *fakeBackend) AllUsers(_ context.Context, _ string) ([]models.AdminUser, error) {
	if err := f.called("admin.users"); err != nil {
		return nil, err
	}
	return []models.AdminUser{{ID: 1, Name: "Anna"}}, nil
}

func (f *fakeBackend) AllConversions(_ context.Context, _ string) ([]models.Conversion, error) {
	if err := f.called("admin.conversions"); err != nil {
		return nil, err
	}
	return []models.Conversion{}, nil
}

func (f *fakeBackend) AllPayouts(_ context.Context, _ string) ([]models.PayoutRequest, error) {
	if err := f.called("admin.payouts"); err != nil {
		return nil, err
	}
	return f.payouts, nil
}

func (f *fakeBackend) AdminStats(_ context.Context, _ string) (*models.AdminStats, error) {
	if err := f.called("admin.stats"); err != nil {
		return nil, err
	}
	return &models.AdminStats{TotalUsers: "1"}, nil
}

func (f *fakeBackend) TrackClick(_ context.Context, _ string) error {
	return f.called("affiliate.click")
}

func (f *fakeBackend) ResolveLink(_ context.Context, code string) (*models.LinkResolution, error) {
	if err := f.called("affiliate.resolve"); err != nil {
		return nil, err
	}
	for _, l := range f.links {
		if l.LinkCode == code {
			return &models.LinkResolution{ProductURL: "https://shop.example.com/p/" + code}, nil
		}
	}
	return &models.LinkResolution{}, nil
}
