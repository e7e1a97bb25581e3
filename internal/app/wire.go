package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"flashysurf/internal/crypto"
	"flashysurf/internal/domain"
	"flashysurf/internal/relay"
	analyticssvc "flashysurf/internal/services/analytics"
	sitemapsvc "flashysurf/internal/services/sitemap"
	"flashysurf/internal/store"
)

// Wire bundles the services and sinks built from a Config.
type Wire struct {
	Config    *Config
	Sitemap   *sitemapsvc.Service
	Analytics *analyticssvc.Service
	// Events is the first sink that can replay events, or nil.
	Events domain.EventStore
	Sinks  []domain.EventSink
	Log    *slog.Logger

	closers []func()
}

// NewWire constructs the dependency graph from cfg. The Postgres sink
// connects eagerly so a bad DSN fails here rather than on the first event.
func NewWire(ctx context.Context, cfg *Config, log *slog.Logger) (*Wire, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &Wire{Config: cfg, Log: log}

	w.Sitemap = sitemapsvc.New(sitemapsvc.Options{
		Root:        cfg.Site.Root,
		BaseURL:     cfg.Site.BaseURL,
		Exclude:     cfg.Site.Exclude,
		SelfPath:    cfg.Sitemap.Output,
		ChangeFreq:  cfg.Sitemap.ChangeFreq,
		Priority:    cfg.Sitemap.Priority,
		Concurrency: cfg.Sitemap.Concurrency,
		Logger:      log,
	})

	if err := w.buildSinks(ctx); err != nil {
		w.Close()
		return nil, err
	}

	salt := cfg.Analytics.VisitorSalt
	if salt == "" {
		var err error
		if salt, err = crypto.NewSalt(); err != nil {
			w.Close()
			return nil, fmt.Errorf("generate visitor salt: %w", err)
		}
		log.Warn("analytics.visitor_salt not set, visitor ids will change on restart")
	}
	w.Analytics = analyticssvc.New(w.Sinks,
		analyticssvc.WithExtensionHost(cfg.Analytics.ExtensionHost),
		analyticssvc.WithSalt(salt),
		analyticssvc.WithLogger(log),
	)
	return w, nil
}

func (w *Wire) buildSinks(ctx context.Context) error {
	a := w.Config.Analytics

	if a.EventsFile != "" {
		fs := store.NewEventFileStore(a.EventsFile)
		w.addSink(fs)
		w.Log.Debug("event sink enabled", "sink", "file", "path", a.EventsFile)
	}

	if a.PostgresDSN != "" {
		pg, err := store.OpenPostgresEventStore(ctx, a.PostgresDSN, store.WithLogger(w.Log))
		if err != nil {
			return err
		}
		w.closers = append(w.closers, pg.Close)
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}
		w.addSink(pg)
		w.Log.Debug("event sink enabled", "sink", "postgres")
	}

	if a.Mixpanel.Token != "" {
		mp, err := relay.NewMixpanel(a.Mixpanel.Endpoint, a.Mixpanel.Token)
		if err != nil {
			return err
		}
		w.addSink(mp)
		w.Log.Debug("event sink enabled", "sink", "mixpanel", "endpoint", mp.Endpoint)
	}
	return nil
}

func (w *Wire) addSink(s domain.EventSink) {
	w.Sinks = append(w.Sinks, s)
	if es, ok := s.(domain.EventStore); ok && w.Events == nil {
		w.Events = es
	}
}

// ErrNoEventStore is returned when no configured sink can list events.
var ErrNoEventStore = errors.New("app: no event store configured (set analytics.events_file or analytics.postgres_dsn)")

// EventStore returns the sink used to replay events.
func (w *Wire) EventStore() (domain.EventStore, error) {
	if w.Events == nil {
		return nil, ErrNoEventStore
	}
	return w.Events, nil
}

// Close releases connections held by sinks.
func (w *Wire) Close() {
	for i := len(w.closers) - 1; i >= 0; i-- {
		w.closers[i]()
	}
	w.closers = nil
}
