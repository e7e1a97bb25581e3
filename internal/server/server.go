package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"flashysurf/internal/domain"
	"flashysurf/internal/services/analytics"
	"flashysurf/internal/services/sitemap"
)

// Event types accepted by POST /events.
const (
	TypePageLoad  = "page_load"
	TypeLinkClick = "link_click"
)

// maxEventBody bounds POST /events payloads.
const maxEventBody = 16 << 10

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EventRequest is the body of POST /events.
type EventRequest struct {
	Type    string `json:"type"`
	PageURL string `json:"page_url"`
	Href    string `json:"href,omitempty"`
}

// EventResponse is the reply to POST /events.
type EventResponse struct {
	Tracked bool          `json:"tracked"`
	Event   *domain.Event `json:"event,omitempty"`
}

// Option configures a Server.
type Option func(*options)

type options struct {
	hidden  func(name string) bool
	private []string
}

// WithHidden keeps any path with a segment for which hidden reports true
// out of the static file tree. Dot-files are always hidden.
func WithHidden(hidden func(name string) bool) Option {
	return func(o *options) { o.hidden = hidden }
}

// WithPrivateFiles keeps the given files out of the static file tree even
// when they sit under the site root.
func WithPrivateFiles(paths ...string) Option {
	return func(o *options) { o.private = append(o.private, paths...) }
}

type Server struct {
	sitemap   *sitemap.Cache
	analytics domain.AnalyticsService
	files     http.Handler
	log       *slog.Logger
}

func New(cache *sitemap.Cache, svc domain.AnalyticsService, root string, log *slog.Logger, opts ...Option) *Server {
	if log == nil {
		log = slog.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		sitemap:   cache,
		analytics: svc,
		files:     http.FileServer(newSiteFS(root, o.hidden, o.private)),
		log:       log,
	}
}

// Handler returns the routed, access-logged handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sitemap.xml", s.handleSitemap)
	mux.HandleFunc("POST /events", s.handleEvent)
	mux.Handle("GET /", s.files)
	return accessLog(s.log, mux)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info("site server listening", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("site server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	doc, built, err := s.sitemap.Bytes(r.Context())
	if err != nil {
		s.log.Error("generate sitemap", "error", err)
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", sitemap.ContentType)
	http.ServeContent(w, r, "sitemap.xml", built, bytes.NewReader(doc))
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid event body")
		return
	}
	visit := domain.Visit{
		PageURL:    req.PageURL,
		RemoteAddr: r.RemoteAddr,
		UserAgent:  r.UserAgent(),
	}
	if req.PageURL == "" {
		if visit.PageURL = r.Referer(); visit.PageURL == "" {
			writeError(w, http.StatusBadRequest, "page_url required")
			return
		}
	}

	var (
		ev      domain.Event
		tracked bool
		err     error
	)
	switch req.Type {
	case TypePageLoad:
		ev, err = s.analytics.PageLoad(r.Context(), visit)
		tracked = err == nil || ev.InsertID != ""
	case TypeLinkClick:
		ev, tracked, err = s.analytics.LinkClick(r.Context(), visit, req.Href)
	default:
		writeError(w, http.StatusBadRequest, "unknown event type")
		return
	}

	switch {
	case errors.Is(err, analytics.ErrNoSinks):
		writeError(w, http.StatusServiceUnavailable, "event tracking disabled")
		return
	case err != nil && !tracked:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		// Delivery failures are already logged per sink; the visitor is
		// never made to wait on them.
		s.log.Debug("event partially delivered", "event", ev.Name.String(), "error", err)
	}

	resp := EventResponse{Tracked: tracked}
	if tracked {
		resp.Event = &ev
	}
	writeJSON(w, http.StatusAccepted, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
