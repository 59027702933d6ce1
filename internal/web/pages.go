package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/conorfennell/kotoba/internal/catalog"
	"github.com/conorfennell/kotoba/internal/domain"
)

type pickerPage struct {
	Query  string
	Recent []domain.Theme
	All    []domain.Theme
}

type tab struct {
	Status domain.Status
	Count  int
	Active bool
}

type row struct {
	Card   domain.Card
	Status domain.Status
}

type themePage struct {
	Theme      domain.Theme
	Tab        domain.Status
	Tabs       []tab
	Rows       []row
	TodayCount int
	TodayTotal int
	Settings   domain.Settings
}

type settingsPage struct {
	Settings    domain.Settings
	FilterModes []domain.FilterMode
	MinDeck     int
	MaxDeck     int
	MinCooldown int
	MaxCooldown int
	Saved       bool
	Return      string
}

// handleIndex reopens the last theme when it still exists, and shows the
// picker otherwise.
func (s *Server) handleIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.clientFor(w, r)
		if last := s.progress.LastTheme(); last != "" {
			if _, ok := s.catalog.Get().Theme(last); ok {
				http.Redirect(w, r, themePath(last), http.StatusSeeOther)
				return
			}
		}
		s.render(w, "picker", s.picker(""))
	}
}

// handlePicker renders the theme picker. Searches from the page only
// replace the theme lists.
func (s *Server) handlePicker() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.clientFor(w, r)
		data := s.picker(r.URL.Query().Get("q"))
		if isPartial(r) {
			s.render(w, "theme_lists", data)
			return
		}
		s.render(w, "picker", data)
	}
}

func (s *Server) picker(query string) pickerPage {
	cat := s.catalog.Get()
	recent := cat.Lookup(s.progress.RecentThemes())
	return pickerPage{
		Query:  query,
		Recent: catalog.FilterThemes(recent, query),
		All:    cat.Search(query),
	}
}

// handleTheme opens a theme: it becomes the last and most recent theme,
// and its cards are listed under the selected status tab.
func (s *Server) handleTheme() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.clientFor(w, r)
		key := r.PathValue("key")
		cat := s.catalog.Get()
		theme, ok := cat.Theme(key)
		if !ok {
			http.NotFound(w, r)
			return
		}

		current := domain.StatusUnknown
		if v := r.URL.Query().Get("tab"); v != "" {
			st, err := domain.ParseStatus(v)
			if err != nil {
				http.Error(w, "Invalid status tab", http.StatusBadRequest)
				return
			}
			current = st
		}

		if err := s.progress.OpenTheme(key); err != nil {
			slog.Error("Error recording opened theme", "theme", key, "error", err)
		}

		cards := cat.CardsInTheme(key)
		counts := s.progress.StatusCounts(cards)
		data := themePage{
			Theme:      theme,
			Tab:        current,
			TodayCount: s.progress.TodayCount(key),
			TodayTotal: s.progress.TodayTotal(),
			Settings:   s.progress.Settings(),
		}
		for _, st := range domain.Statuses {
			data.Tabs = append(data.Tabs, tab{Status: st, Count: counts[st], Active: st == current})
		}
		for _, c := range cards {
			if st := s.progress.Status(c.ID); st == current {
				data.Rows = append(data.Rows, row{Card: c, Status: st})
			}
		}

		if isPartial(r) {
			s.render(w, "theme_table", data)
			return
		}
		s.render(w, "theme", data)
	}
}

func (s *Server) handleGetSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.clientFor(w, r)
		s.render(w, "settings", s.settingsPage(s.progress.Settings(), false, r.URL.Query().Get("return")))
	}
}

// handlePostSettings saves the form. Out-of-range numbers are clamped and
// fields that do not parse keep their stored value.
func (s *Server) handlePostSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.clientFor(w, r)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}

		settings := s.progress.Settings()
		if n, err := strconv.Atoi(r.PostFormValue("deck_size")); err == nil {
			settings.DeckSize = n
		}
		if n, err := strconv.Atoi(r.PostFormValue("cooldown_days")); err == nil {
			settings.CooldownDays = n
		}
		if f, err := domain.ParseFilterMode(r.PostFormValue("filter")); err == nil {
			settings.Filter = f
		}

		saved, err := s.progress.SaveSettings(settings)
		if err != nil {
			slog.Error("Error saving settings", "error", err)
			http.Error(w, "Failed to save settings", http.StatusInternalServerError)
			return
		}
		slog.Debug("Settings saved", "deck_size", saved.DeckSize, "cooldown_days", saved.CooldownDays, "filter", saved.Filter)

		data := s.settingsPage(saved, true, r.PostFormValue("return"))
		if isPartial(r) {
			s.render(w, "settings_form", data)
			return
		}
		s.render(w, "settings", data)
	}
}

func (s *Server) settingsPage(settings domain.Settings, saved bool, ret string) settingsPage {
	if _, ok := s.catalog.Get().Theme(ret); !ok {
		ret = ""
	}
	return settingsPage{
		Settings:    settings,
		FilterModes: domain.FilterModes,
		MinDeck:     domain.MinDeckSize,
		MaxDeck:     domain.MaxDeckSize,
		MinCooldown: domain.MinCooldownDays,
		MaxCooldown: domain.MaxCooldownDays,
		Saved:       saved,
		Return:      ret,
	}
}

func themePath(key string) string {
	return "/themes/" + url.PathEscape(key)
}
