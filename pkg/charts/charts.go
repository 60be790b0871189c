// Package charts prepares the dashboard chart series: daily clicks and
// conversions, and the top products by revenue.
package charts

import (
	"context"
	"time"

	"github.com/jordanlanch/alug/pkg/logger"
	"github.com/jordanlanch/alug/pkg/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MaxProducts is the number of products shown in the revenue chart
const MaxProducts = 5

// MaxNameRunes is the longest product name shown before truncation
const MaxNameRunes = 15

// StatsSource is the part of the backend client the widgets read from
type StatsSource interface {
	DailyStats(ctx context.Context, token string) ([]models.DailyStat, error)
	ProductStats(ctx context.Context, token string) ([]models.ProductStat, error)
}

// DailyPoint is one day in the clicks and conversions chart
type DailyPoint struct {
	Date        string `json:"date"`
	Label       string `json:"date_label"`
	Clicks      int    `json:"clicks"`
	Conversions int    `json:"conversions"`
}

// DailySeries is the daily chart state
type DailySeries struct {
	Loading bool         `json:"loading"`
	Points  []DailyPoint `json:"points"`
}

// ProductPoint is one bar in the revenue chart
type ProductPoint struct {
	Name         string  `json:"name"`
	Revenue      float64 `json:"revenue"`
	RevenueLabel string  `json:"revenue_label"`
	Conversions  int     `json:"conversions"`
}

// ProductSeries is the product chart state
type ProductSeries struct {
	Loading bool           `json:"loading"`
	Points  []ProductPoint `json:"points"`
}

// Widgets loads both chart series. Failures are logged and produce an empty
// series, never an error.
type Widgets struct {
	source StatsSource
	log    logger.Logger
}

// NewWidgets creates the chart widgets
func NewWidgets(source StatsSource, log logger.Logger) *Widgets {
	return &Widgets{source: source, log: log}
}

// Daily loads the daily series
func (w *Widgets) Daily(ctx context.Context, token string) DailySeries {
	stats, err := w.source.DailyStats(ctx, token)
	if err != nil {
		w.log.Error("daily stats error", "error", err)
		return DailySeries{Points: []DailyPoint{}}
	}

	points := make([]DailyPoint, 0, len(stats))
	for _, s := range stats {
		points = append(points, DailyPoint{
			Date:        s.Date,
			Label:       DateLabel(s.Date),
			Clicks:      s.Clicks.Int(),
			Conversions: s.Conversions.Int(),
		})
	}
	return DailySeries{Points: points}
}

// Products loads the top products series
func (w *Widgets) Products(ctx context.Context, token string) ProductSeries {
	stats, err := w.source.ProductStats(ctx, token)
	if err != nil {
		w.log.Error("product stats error", "error", err)
		return ProductSeries{Points: []ProductPoint{}}
	}

	if len(stats) > MaxProducts {
		stats = stats[:MaxProducts]
	}

	p := message.NewPrinter(language.German)
	points := make([]ProductPoint, 0, len(stats))
	for _, s := range stats {
		revenue := s.Revenue.Float()
		points = append(points, ProductPoint{
			Name:         TruncateName(s.Name),
			Revenue:      revenue,
			RevenueLabel: p.Sprintf("%.2f€", revenue),
			Conversions:  s.Conversions.Int(),
		})
	}
	return ProductSeries{Points: points}
}

// TruncateName shortens names longer than MaxNameRunes to that many runes
// followed by "..."
func TruncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= MaxNameRunes {
		return name
	}
	return string(runes[:MaxNameRunes]) + "..."
}

var germanMonths = [...]string{
	"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni",
	"Juli", "Aug.", "Sept.", "Okt.", "Nov.", "Dez.",
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// DateLabel renders a backend date as a German short date such as
// "18. Okt.". Unparseable input is returned unchanged.
func DateLabel(date string) string {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, date)
		if err == nil {
			return germanShortDate(t)
		}
	}
	return date
}

func germanShortDate(t time.Time) string {
	return message.NewPrinter(language.German).Sprintf("%d. %s", t.Day(), germanMonths[t.Month()-1])
}
