// Package web serves the browser front end: the theme picker, the theme
// table with its card modal, study sessions and settings, rendered on the
// server and updated in place with htmx.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"

	"github.com/conorfennell/kotoba/internal/catalog"
	"github.com/conorfennell/kotoba/internal/deck"
	"github.com/conorfennell/kotoba/internal/progress"
	"github.com/conorfennell/kotoba/internal/study"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

// Options configures a Server.
type Options struct {
	Catalog  *catalog.Holder
	Progress *progress.Repository
	// Builder defaults to a deck builder reading from Progress.
	Builder *deck.Builder
	// MediaDir, when set, is served under /media/ for relative audio paths.
	MediaDir       string
	CORSOrigins    []string
	SwipeThreshold float64
}

// Server holds the dependencies for the HTTP server. Every handler that
// reads or writes study state runs under mu, so the progress store sees
// one writer at a time.
type Server struct {
	mu             sync.Mutex
	catalog        *catalog.Holder
	progress       *progress.Repository
	builder        *deck.Builder
	clients        map[string]*client
	swipeThreshold float64
	mediaDir       string
	corsOrigins    []string

	router    *http.ServeMux
	templates *template.Template
}

// NewServer creates and configures a new server.
func NewServer(opts Options) (*Server, error) {
	if opts.Catalog == nil || opts.Progress == nil {
		return nil, fmt.Errorf("web: catalog and progress are required")
	}

	tpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	builder := opts.Builder
	if builder == nil {
		builder = deck.NewBuilder(opts.Progress)
	}
	threshold := opts.SwipeThreshold
	if threshold <= 0 {
		threshold = study.DefaultSwipeThreshold
	}

	s := &Server{
		catalog:        opts.Catalog,
		progress:       opts.Progress,
		builder:        builder,
		clients:        make(map[string]*client),
		swipeThreshold: threshold,
		mediaDir:       opts.MediaDir,
		corsOrigins:    opts.CORSOrigins,
		router:         http.NewServeMux(),
		templates:      tpl,
	}
	if err := s.routes(); err != nil {
		return nil, err
	}
	return s, nil
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() error {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to create sub-filesystem for static assets: %w", err)
	}
	fileServer := http.FileServer(http.FS(staticFS))

	s.router.Handle("GET /static/", http.StripPrefix("/static/", fileServer))
	s.router.HandleFunc("GET /sw.js", s.handleServiceWorker(staticFS))
	if s.mediaDir != "" {
		s.router.Handle("GET /media/", http.StripPrefix("/media/", http.FileServer(http.Dir(s.mediaDir))))
	}

	s.router.HandleFunc("GET /{$}", s.locked(s.handleIndex()))
	s.router.HandleFunc("GET /themes", s.locked(s.handlePicker()))
	s.router.HandleFunc("GET /themes/{key}", s.locked(s.handleTheme()))

	// Card detail modal
	s.router.HandleFunc("GET /cards/{id}", s.locked(s.handleOpenCard()))
	s.router.HandleFunc("DELETE /cards/{id}", s.locked(s.handleCloseCard()))
	s.router.HandleFunc("POST /cards/{id}/{action}", s.locked(s.handleCardAction()))

	// Study session
	s.router.HandleFunc("POST /themes/{key}/study", s.locked(s.handleStartStudy()))
	s.router.HandleFunc("GET /study", s.locked(s.handleGetStudy()))
	s.router.HandleFunc("POST /study/action/{action}", s.locked(s.handleStudyAction()))
	s.router.HandleFunc("POST /study/decide", s.locked(s.handleStudyDecide()))
	s.router.HandleFunc("POST /study/swipe", s.locked(s.handleStudySwipe()))
	s.router.HandleFunc("DELETE /audio", s.locked(s.handleAudioEnded()))
	s.router.HandleFunc("POST /audio/{id}", s.locked(s.handlePlayCard()))

	s.router.HandleFunc("GET /settings", s.locked(s.handleGetSettings()))
	s.router.HandleFunc("POST /settings", s.locked(s.handlePostSettings()))

	s.router.Handle("/api/", s.apiHandler())
	return nil
}

// locked serialises a handler with every other state-touching handler.
func (s *Server) locked(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		h(w, r)
	}
}

// handleServiceWorker serves the offline cache worker from the site root
// so its scope covers every page.
func (s *Server) handleServiceWorker(staticFS fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFileFS(w, r, staticFS, "sw.js")
	}
}

// render executes a named template into a buffer so a failure can still
// become a 500.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("Failed to render template", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// isPartial reports whether the request came from htmx and wants a fragment.
func isPartial(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// redirect sends the browser to target, through htmx when it asked.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if isPartial(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
