package affiliate

import (
	"context"
	"html/template"
	"io"
	"time"

	"github.com/jordanlanch/alug/pkg/logger"
	"github.com/jordanlanch/alug/pkg/models"
)

// Redirect outcomes, also used as metric labels
const (
	OutcomeDestination   = "destination"
	OutcomeNoDestination = "no_destination"
	OutcomeError         = "error"
)

// Fallback is where visitors land when a link cannot be followed
const Fallback = "/"

// Texts shown on the redirect page
const (
	NotFoundText = "Link nicht gefunden"
	FallbackText = "Weiterleitung zur Startseite..."
)

// LinkResolver is the part of the backend client the redirector needs
type LinkResolver interface {
	TrackClick(ctx context.Context, linkCode string) error
	ResolveLink(ctx context.Context, linkCode string) (*models.LinkResolution, error)
}

// Outcome is the result of following an affiliate link
type Outcome struct {
	Kind        string
	Destination string
	Error       string
	Fallback    string
	Delay       time.Duration
}

// Redirector records clicks and resolves link codes
type Redirector struct {
	backend            LinkResolver
	log                logger.Logger
	noDestinationDelay time.Duration
	errorDelay         time.Duration
}

// NewRedirector creates a Redirector with the fallback delays for a missing
// destination and for a failed lookup
func NewRedirector(backend LinkResolver, log logger.Logger, noDestinationDelay, errorDelay time.Duration) *Redirector {
	return &Redirector{
		backend:            backend,
		log:                log,
		noDestinationDelay: noDestinationDelay,
		errorDelay:         errorDelay,
	}
}

// Resolve records a click for code and looks up its destination. A failed
// click is logged and does not stop the redirect.
func (r *Redirector) Resolve(ctx context.Context, code string) Outcome {
	if err := r.backend.TrackClick(ctx, code); err != nil {
		r.log.Warn("failed to track click", "link_code", code, "error", err)
	}

	res, err := r.backend.ResolveLink(ctx, code)
	if err != nil {
		r.log.Warn("failed to resolve affiliate link", "link_code", code, "error", err)
		return Outcome{Kind: OutcomeError, Error: NotFoundText, Fallback: Fallback, Delay: r.errorDelay}
	}
	if res == nil || res.ProductURL == "" {
		return Outcome{Kind: OutcomeNoDestination, Error: NotFoundText, Fallback: Fallback, Delay: r.noDestinationDelay}
	}
	return Outcome{Kind: OutcomeDestination, Destination: res.ProductURL}
}

var redirectPage = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="{{.Seconds}};url={{.Fallback}}">
<title>{{.Title}}</title>
</head>
<body style="min-height:100vh;background:#111827;display:flex;align-items:center;justify-content:center;font-family:sans-serif">
<div style="text-align:center">
<div style="color:#ef4444;font-size:3.75rem">⚠️</div>
<p style="color:#fff;font-size:1.25rem">{{.Title}}</p>
<p style="color:#9ca3af">{{.Subtitle}}</p>
</div>
</body>
</html>
`))

// RenderFallback writes the error page that sends the visitor to the
// fallback after the outcome's delay
func RenderFallback(w io.Writer, o Outcome) error {
	return redirectPage.Execute(w, struct {
		Seconds  int
		Fallback string
		Title    string
		Subtitle string
	}{
		Seconds:  int(o.Delay.Round(time.Second) / time.Second),
		Fallback: o.Fallback,
		Title:    o.Error,
		Subtitle: FallbackText,
	})
}
