package server

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stagecue/cueboard/internal/metrics"
	"github.com/stagecue/cueboard/internal/store"
)

const (
	// revisionHeader carries the revision of the rendered fragment so
	// long-poll clients can baseline their next request on it.
	revisionHeader = "Cue-Revision"

	// fragmentWriteTimeout is the maximum time allowed for writing a
	// fragment to a long-poll response. Must be <= shutdown timeout to
	// ensure clean shutdown.
	fragmentWriteTimeout = 5 * time.Second

	// defaultTitle is used when no custom title is configured.
	defaultTitle = "Cueboard"
)

// Server handles HTTP requests for the cueboard pages and control surface.
//
// Server provides:
//   - GET /: the director (controller) page
//   - GET /view: the passive viewer page
//   - GET /cue: the current-state fragment, long-polling with ?rev=N
//   - PUT /cue/letter, PUT /cue/digit, DELETE /cue: mutations
//   - GET /cue/ws: websocket push of the fragment on every change
//   - GET /metrics, GET /healthz: operational endpoints
//
// The server is designed for graceful shutdown via context cancellation.
type Server struct {
	store       store.Store
	port        int
	title       string
	waitTimeout time.Duration
	logger      *slog.Logger
	assets      fs.FS
	tmpl        *template.Template
	httpServer  *http.Server
}

// New creates a new HTTP [Server].
//
// Parameters:
//   - st: the signal store
//   - port: TCP port to listen on
//   - assets: embedded filesystem containing page templates and static files
//   - title: page title (defaults to "Cueboard" if empty)
//   - waitTimeout: how long a long-poll request may stay suspended
//   - logger: logger for server events
//
// The server is not started until [Server.Start] is called.
func New(st store.Store, port int, assets fs.FS, title string, waitTimeout time.Duration, logger *slog.Logger) (*Server, error) {
	if title == "" {
		title = defaultTitle
	}

	tmpl, err := template.ParseFS(assets, "assets/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	if err := metrics.Register(nil); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	return &Server{
		store:       st,
		port:        port,
		title:       title,
		waitTimeout: waitTimeout,
		logger:      logger,
		assets:      assets,
		tmpl:        tmpl,
	}, nil
}

// Handler returns the server's routing tree. Exposed so tests can drive the
// server through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.instrument)

	r.Get("/", s.handleController)
	r.Get("/view", s.handleViewer)
	r.Get("/cue", s.handleCue)
	r.Put("/cue/letter", s.handleSetLetter)
	r.Put("/cue/digit", s.handleAppendDigit)
	r.Delete("/cue", s.handleClear)
	r.Get("/cue/ws", s.handleSocket)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", s.staticHandler()))

	return r
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after confirming the server
// is listening. The server runs until the context is cancelled, at which
// point it initiates a graceful shutdown with a 5-second timeout.
//
// Returns an error if the server fails to bind to the configured port.
func (s *Server) Start(ctx context.Context) error {
	// create listener first to verify port availability synchronously
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}

	s.httpServer = &http.Server{
		Handler: s.Handler(),
		// BaseContext derives all request contexts from the server context.
		// When ctx is cancelled, all request contexts are also cancelled,
		// which releases suspended long-poll waiters and websocket loops.
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server error", "error", err)
		}
	}()

	// shutdown on context cancellation
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	return nil
}

// staticHandler serves the stylesheet and any other static files from the
// embedded assets directory.
func (s *Server) staticHandler() http.Handler {
	sub, err := fs.Sub(s.assets, "assets")
	if err != nil {
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(sub))
}

// pageData is the template context for pages and fragments.
type pageData struct {
	Title    string
	Signal   store.Signal
	Revision store.Revision
	Letters  []string
	Digits   []string
}

func (s *Server) pageData(sig store.Signal, rev store.Revision) pageData {
	return pageData{
		Title:    s.title,
		Signal:   sig,
		Revision: rev,
		Letters:  strings.Split(store.Letters, ""),
		Digits:   strings.Split("0123456789", ""),
	}
}

// renderFragment renders the current-state fragment to bytes.
func (s *Server) renderFragment(sig store.Signal, rev store.Revision) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "fragment.html", s.pageData(sig, rev)); err != nil {
		return nil, fmt.Errorf("failed to render fragment: %w", err)
	}
	return buf.Bytes(), nil
}

// writeFragment writes the rendered fragment with the revision header.
//
// A write deadline bounds the write so a slow or disconnected long-poll
// client cannot pin the handler past shutdown.
func (s *Server) writeFragment(w http.ResponseWriter, sig store.Signal, rev store.Revision) {
	frag, err := s.renderFragment(sig, rev)
	if err != nil {
		s.logger.Error("failed to render fragment", "error", err)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}

	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Now().Add(fragmentWriteTimeout)); err != nil {
		// deadline not supported by the underlying connection, continue without
		s.logger.Debug("write deadlines not supported", "error", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set(revisionHeader, strconv.FormatUint(uint64(rev), 10))
	if _, err := w.Write(frag); err != nil {
		s.logger.Debug("failed to write fragment", "error", err)
	}
}

// renderPage writes a full page template.
func (s *Server) renderPage(w http.ResponseWriter, name string) {
	sig, rev := s.store.Get()

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, s.pageData(sig, rev)); err != nil {
		s.logger.Error("failed to render page", "template", name, "error", err)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Debug("failed to write page", "template", name, "error", err)
	}
}
