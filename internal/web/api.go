package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rs/cors"

	"github.com/conorfennell/kotoba/internal/domain"
)

type apiTheme struct {
	domain.Theme
	Today  int                   `json:"today"`
	Counts map[domain.Status]int `json:"counts"`
}

type apiDeck struct {
	Theme    string          `json:"theme"`
	Settings domain.Settings `json:"settings"`
	Cards    []domain.Card   `json:"cards"`
}

// apiHandler serves the read-only JSON API. Without configured origins
// it is same-origin only.
func (s *Server) apiHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/themes", s.locked(s.handleAPIThemes()))
	mux.HandleFunc("GET /api/themes/{key}/deck", s.locked(s.handleAPIDeck()))
	mux.HandleFunc("GET /api/today", s.locked(s.handleAPIToday()))
	mux.HandleFunc("GET /api/settings", s.locked(s.handleAPISettings()))

	if len(s.corsOrigins) == 0 {
		return mux
	}
	c := cors.New(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet},
	})
	return c.Handler(mux)
}

func (s *Server) handleAPIThemes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat := s.catalog.Get()
		themes := cat.Search(r.URL.Query().Get("q"))
		out := make([]apiTheme, 0, len(themes))
		for _, t := range themes {
			out = append(out, apiTheme{
				Theme:  t,
				Today:  s.progress.TodayCount(t.Key),
				Counts: s.progress.StatusCounts(cat.CardsInTheme(t.Key)),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// handleAPIDeck previews the deck a study session would start with. It
// does not start a session.
func (s *Server) handleAPIDeck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.PathValue("key")
		cat := s.catalog.Get()
		if _, ok := cat.Theme(key); !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "theme not found"})
			return
		}
		settings := s.progress.Settings()
		writeJSON(w, http.StatusOK, apiDeck{
			Theme:    key,
			Settings: settings,
			Cards:    s.builder.Build(cat.Cards(), key, settings),
		})
	}
}

func (s *Server) handleAPIToday() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.progress.Today()
		if err != nil {
			slog.Error("Error reading today's stats", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read stats"})
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func (s *Server) handleAPISettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.progress.Settings())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
