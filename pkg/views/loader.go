package views

import (
	"context"
	"fmt"

	"github.com/jordanlanch/alug/pkg/affiliate"
	"github.com/jordanlanch/alug/pkg/backend"
	"github.com/jordanlanch/alug/pkg/catalog"
	"github.com/jordanlanch/alug/pkg/logger"
	"github.com/jordanlanch/alug/pkg/models"
	"github.com/jordanlanch/alug/pkg/payout"
	"github.com/jordanlanch/alug/pkg/session"
	"golang.org/x/sync/errgroup"
)

// Banner messages for view loads that surface failures
const (
	MsgProductsFailed = "Fehler beim Laden der Produkte"
	MsgAdminFailed    = "Fehler beim Laden der Admin-Daten"
)

// Backend is the part of the backend client the views read from
type Backend interface {
	ListProducts(ctx context.Context, token string) ([]models.Product, error)
	MyStats(ctx context.Context, token string) (*models.MyStats, error)
	MyLinks(ctx context.Context, token string) ([]models.AffiliateLink, error)
	Balance(ctx context.Context, token string) (*models.Balance, error)
	MyPayouts(ctx context.Context, token string) ([]models.PayoutRequest, error)
	TopMarketers(ctx context.Context, token string) ([]models.TopMarketer, error)
	TopProducts(ctx context.Context, token string) ([]models.TopProduct, error)
	AllUsers(ctx context.Context, token string) ([]models.AdminUser, error)
	AllConversions(ctx context.Context, token string) ([]models.Conversion, error)
	AllPayouts(ctx context.Context, token string) ([]models.PayoutRequest, error)
	AdminStats(ctx context.Context, token string) (*models.AdminStats, error)
}

// LoadError is a view load failure the user should see as a banner
type LoadError struct {
	View    View
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.View, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// DashboardData holds the dashboard sections
type DashboardData struct {
	Stats            models.MyStats         `json:"stats"`
	ConversionRate   float64                `json:"conversion_rate"`
	Links            []models.LinkView      `json:"links"`
	Balance          models.Balance         `json:"balance"`
	CanRequestPayout bool                   `json:"can_request_payout"`
	Payouts          []models.PayoutRequest `json:"payouts"`
}

// LeaderboardData holds the rankings
type LeaderboardData struct {
	TopMarketers []models.TopMarketer `json:"top_marketers"`
	TopProducts  []models.TopProduct  `json:"top_products"`
}

// AdminData holds the admin panel tables
type AdminData struct {
	Users       []models.AdminUser     `json:"users"`
	Conversions []models.Conversion    `json:"conversions"`
	Payouts     []models.PayoutRequest `json:"payouts"`
	Stats       models.AdminStats      `json:"stats"`
}

// Screen is the data for one view entry. Only the entered view's section is set.
type Screen struct {
	View        View             `json:"view"`
	Products    []models.Product `json:"products,omitempty"`
	Categories  []string         `json:"categories,omitempty"`
	Dashboard   *DashboardData   `json:"dashboard,omitempty"`
	Leaderboard *LeaderboardData `json:"leaderboard,omitempty"`
	Admin       *AdminData       `json:"admin,omitempty"`
}

// Loader fetches view data. Every entry re-fetches; nothing is cached
// between transitions.
type Loader struct {
	backend    Backend
	categories *catalog.CategoryStore
	balances   *payout.SnapshotStore
	origin     string
	log        logger.Logger
}

// NewLoader creates a Loader. origin is the public URL affiliate links are
// built on.
func NewLoader(b Backend, categories *catalog.CategoryStore, balances *payout.SnapshotStore, origin string, log logger.Logger) *Loader {
	return &Loader{
		backend:    b,
		categories: categories,
		balances:   balances,
		origin:     origin,
		log:        log,
	}
}

// Enter loads the data view v depends on. Gating errors are returned as is;
// failures the user must see come back as *LoadError.
func (l *Loader) Enter(ctx context.Context, sess *session.Session, v View) (*Screen, error) {
	if err := Authorize(sess, v); err != nil {
		return nil, err
	}

	switch v {
	case Shop:
		return l.shop(ctx, sess)
	case Dashboard:
		return l.dashboard(ctx, sess)
	case Leaderboard:
		return l.leaderboard(ctx, sess)
	case Admin:
		return l.admin(ctx, sess)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownView, v)
}

func (l *Loader) shop(ctx context.Context, sess *session.Session) (*Screen, error) {
	products, err := l.backend.ListProducts(ctx, sess.Token())
	if err != nil {
		return nil, &LoadError{View: Shop, Message: MsgProductsFailed, Err: err}
	}

	cats, err := l.categories.Load(ctx, sess.ClientID())
	if err != nil {
		return nil, err
	}

	return &Screen{
		View:       Shop,
		Products:   catalog.Apply(products, catalog.Query{}),
		Categories: cats.Names(),
	}, nil
}

// dashboard loads its four sections concurrently. Each failure is logged and
// leaves that section empty.
func (l *Loader) dashboard(ctx context.Context, sess *session.Session) (*Screen, error) {
	token := sess.Token()

	var (
		stats   backend.Result[*models.MyStats]
		links   backend.Result[[]models.AffiliateLink]
		balance backend.Result[*models.Balance]
		payouts backend.Result[[]models.PayoutRequest]
	)

	var g errgroup.Group
	g.Go(func() error {
		stats = backend.Fetch(ctx, func(ctx context.Context) (*models.MyStats, error) {
			return l.backend.MyStats(ctx, token)
		})
		return nil
	})
	g.Go(func() error {
		links = backend.Fetch(ctx, func(ctx context.Context) ([]models.AffiliateLink, error) {
			return l.backend.MyLinks(ctx, token)
		})
		return nil
	})
	g.Go(func() error {
		balance = backend.Fetch(ctx, func(ctx context.Context) (*models.Balance, error) {
			return l.backend.Balance(ctx, token)
		})
		return nil
	})
	g.Go(func() error {
		payouts = backend.Fetch(ctx, func(ctx context.Context) ([]models.PayoutRequest, error) {
			return l.backend.MyPayouts(ctx, token)
		})
		return nil
	})
	_ = g.Wait()

	l.logFailure("my stats", stats.Err)
	l.logFailure("my links", links.Err)
	l.logFailure("balance", balance.Err)
	l.logFailure("my payouts", payouts.Err)

	data := &DashboardData{
		Links:   affiliate.Views(l.origin, links.Or(nil)),
		Payouts: payout.WithLabels(payouts.Or(nil)),
	}
	if s := stats.Or(nil); s != nil {
		data.Stats = *s
		data.ConversionRate = s.ConversionRate()
	}
	if b := balance.Or(nil); b != nil {
		data.Balance = *b
		data.CanRequestPayout = payout.CanRequest(*b)
		if err := l.balances.Save(ctx, sess.ClientID(), b.Available); err != nil {
			l.log.Error("failed to store balance snapshot", "error", err)
		}
	}

	return &Screen{View: Dashboard, Dashboard: data}, nil
}

func (l *Loader) leaderboard(ctx context.Context, sess *session.Session) (*Screen, error) {
	token := sess.Token()

	var (
		marketers backend.Result[[]models.TopMarketer]
		products  backend.Result[[]models.TopProduct]
	)

	var g errgroup.Group
	g.Go(func() error {
		marketers = backend.Fetch(ctx, func(ctx context.Context) ([]models.TopMarketer, error) {
			return l.backend.TopMarketers(ctx, token)
		})
		return nil
	})
	g.Go(func() error {
		products = backend.Fetch(ctx, func(ctx context.Context) ([]models.TopProduct, error) {
			return l.backend.TopProducts(ctx, token)
		})
		return nil
	})
	_ = g.Wait()

	l.logFailure("top marketers", marketers.Err)
	l.logFailure("top products", products.Err)

	return &Screen{View: Leaderboard, Leaderboard: &LeaderboardData{
		TopMarketers: marketers.Or([]models.TopMarketer{}),
		TopProducts:  products.Or([]models.TopProduct{}),
	}}, nil
}

// admin loads all four tables or none. The first failure cancels the
// remaining calls.
func (l *Loader) admin(ctx context.Context, sess *session.Session) (*Screen, error) {
	token := sess.Token()
	data := &AdminData{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Users, err = l.backend.AllUsers(gctx, token)
		return err
	})
	g.Go(func() (err error) {
		data.Conversions, err = l.backend.AllConversions(gctx, token)
		return err
	})
	g.Go(func() (err error) {
		data.Payouts, err = l.backend.AllPayouts(gctx, token)
		return err
	})
	g.Go(func() error {
		stats, err := l.backend.AdminStats(gctx, token)
		if err != nil {
			return err
		}
		if stats != nil {
			data.Stats = *stats
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, &LoadError{View: Admin, Message: MsgAdminFailed, Err: err}
	}

	data.Payouts = payout.WithLabels(data.Payouts)
	if data.Users == nil {
		data.Users = []models.AdminUser{}
	}
	if data.Conversions == nil {
		data.Conversions = []models.Conversion{}
	}
	return &Screen{View: Admin, Admin: data}, nil
}

func (l *Loader) logFailure(section string, err error) {
	if err != nil {
		l.log.Error("background load failed", "section", section, "error", err)
	}
}
