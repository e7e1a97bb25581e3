package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"flashysurf/internal/crypto"
	"flashysurf/internal/domain"
)

// ErrNoSinks is returned when an event is tracked with nowhere to send it.
var ErrNoSinks = errors.New("analytics: no event sinks configured")

var _ domain.AnalyticsService = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithExtensionHost changes the URL substring that marks extension links.
func WithExtensionHost(host string) Option {
	return func(s *Service) {
		if host != "" {
			s.extensionHost = host
		}
	}
}

// WithSalt keys visitor ids.
func WithSalt(salt string) Option {
	return func(s *Service) { s.salt = salt }
}

// WithClock replaces time.Now for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger for delivery failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// Service builds events from visits and fans them out to sinks.
type Service struct {
	sinks         []domain.EventSink
	extensionHost string
	salt          string
	now           func() time.Time
	newID         func() string
	log           *slog.Logger
}

func New(sinks []domain.EventSink, opts ...Option) *Service {
	s := &Service{
		sinks:         sinks,
		extensionHost: domain.DefaultExtensionHost,
		now:           time.Now,
		newID:         func() string { return uuid.NewString() },
		log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExtensionHost returns the substring IsExtensionLink looks for.
func (s *Service) ExtensionHost() string { return s.extensionHost }

// IsExtensionLink reports whether href points at the extension store.
func (s *Service) IsExtensionLink(href string) bool {
	return IsExtensionLink(href, s.extensionHost)
}

// IsExtensionLink reports whether href contains host.
func IsExtensionLink(href, host string) bool {
	return host != "" && strings.Contains(href, host)
}

// PageLoad tracks a visit to the website.
func (s *Service) PageLoad(ctx context.Context, v domain.Visit) (domain.Event, error) {
	ev, err := s.event(domain.EventVisitWebsite, v)
	if err != nil {
		return domain.Event{}, err
	}
	return ev, s.deliver(ctx, ev)
}

// LinkClick tracks a click on href. Only extension links are tracked; for any
// other link it returns false and sends nothing.
func (s *Service) LinkClick(ctx context.Context, v domain.Visit, href string) (domain.Event, bool, error) {
	if !s.IsExtensionLink(href) {
		return domain.Event{}, false, nil
	}
	ev, err := s.event(domain.EventVisitExtensionPage, v)
	if err != nil {
		return domain.Event{}, false, err
	}
	return ev, true, s.deliver(ctx, ev)
}

func (s *Service) event(name domain.EventName, v domain.Visit) (domain.Event, error) {
	utm, err := UTMFromURL(v.PageURL)
	if err != nil {
		return domain.Event{}, err
	}
	return domain.Event{
		InsertID:   s.newID(),
		Name:       name,
		DistinctID: crypto.VisitorID(s.salt, v.RemoteAddr, v.UserAgent),
		PageURL:    v.PageURL,
		Time:       s.now().UTC(),
		Properties: utm,
	}, nil
}

// deliver sends ev to every sink. Failures are logged and joined; they never
// stop delivery to the remaining sinks.
func (s *Service) deliver(ctx context.Context, ev domain.Event) error {
	if len(s.sinks) == 0 {
		return ErrNoSinks
	}
	var errs []error
	for i, sink := range s.sinks {
		if err := sink.TrackEvent(ctx, ev); err != nil {
			s.log.Warn("event delivery failed",
				"event", ev.Name.String(), "sink", fmt.Sprintf("%T", sink), "index", i, "error", err)
			errs = append(errs, err)
		}
	}
	s.log.Debug("event tracked", "event", ev.Name.String(), "insert_id", ev.InsertID)
	return errors.Join(errs...)
}
