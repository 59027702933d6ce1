package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/conorfennell/kotoba/internal/domain"
	"github.com/conorfennell/kotoba/internal/study"
)

type studyView struct {
	ThemeKey   string
	ThemeName  string
	Position   int
	Total      int
	Exhausted  bool
	Card       domain.Card
	Face       string
	CanDecide  bool
	Statuses   []domain.Status
	TodayCount int
	Threshold  float64
	Audio      playback
	Decided    domain.Status
	Error      string
}

// handleStartStudy builds a fresh deck for the theme and starts a session.
func (s *Server) handleStartStudy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cl := s.clientFor(w, r)
		key := r.PathValue("key")
		cat := s.catalog.Get()
		if _, ok := cat.Theme(key); !ok {
			http.NotFound(w, r)
			return
		}

		settings := s.progress.Settings()
		deck := s.builder.Build(cat.Cards(), key, settings)
		sess := study.NewSession(key, deck, s.progress)
		sess.SetSwipeThreshold(s.swipeThreshold)

		cl.audio.Stop()
		cl.modal = nil
		cl.session = sess
		slog.Info("Study session started", "theme", key, "cards", len(deck), "filter", settings.Filter)
		redirect(w, r, "/study")
	}
}

func (s *Server) handleGetStudy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cl := s.clientFor(w, r)
		if cl.session == nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		s.render(w, "study", s.studyView(cl.session))
	}
}

// handleStudyAction moves the current card between its front and back,
// and plays its audio.
func (s *Server) handleStudyAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cl := s.clientFor(w, r)
		sess := cl.session
		if sess == nil {
			redirect(w, r, "/")
			return
		}

		card, ok := sess.Current()
		var audio playback
		switch r.PathValue("action") {
		case "native":
			sess.ChooseNative()
		case "audio":
			if sess.ChooseAudio() {
				audio = s.requestAudio(cl, card, true)
			}
		case "show-native":
			sess.ShowNative()
		case "tap":
			sess.Tap()
		case "play":
			if ok {
				audio = s.requestAudio(cl, card, true)
			}
		default:
			http.NotFound(w, r)
			return
		}
		v := s.studyView(sess)
		v.Audio = audio
		s.render(w, "study_card", v)
	}
}

// handleStudyDecide records one of the three decision buttons.
func (s *Server) handleStudyDecide() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cl := s.clientFor(w, r)
		sess := cl.session
		if sess == nil {
			redirect(w, r, "/")
			return
		}
		st, err := domain.ParseStatus(r.PostFormValue("status"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		v, err := s.decide(cl, func() (domain.Status, bool, error) {
			return st, true, sess.Decide(st)
		})
		if err != nil {
			http.Error(w, "Failed to record decision", http.StatusInternalServerError)
			return
		}
		s.render(w, "study_card", v)
	}
}

// handleStudySwipe turns a released drag into a decision. Drags below the
// threshold change nothing and the card springs back.
func (s *Server) handleStudySwipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cl := s.clientFor(w, r)
		sess := cl.session
		if sess == nil {
			redirect(w, r, "/")
			return
		}
		dx, errX := strconv.ParseFloat(r.PostFormValue("dx"), 64)
		dy, errY := strconv.ParseFloat(r.PostFormValue("dy"), 64)
		if errX != nil || errY != nil {
			http.Error(w, "Invalid swipe", http.StatusBadRequest)
			return
		}

		v, err := s.decide(cl, func() (domain.Status, bool, error) {
			return sess.Swipe(dx, dy)
		})
		if err != nil {
			http.Error(w, "Failed to record decision", http.StatusInternalServerError)
			return
		}
		s.render(w, "study_card", v)
	}
}

// decide runs a decision against the client's session. Gating errors are
// shown on the card; storage errors are returned.
func (s *Server) decide(cl *client, fn func() (domain.Status, bool, error)) (studyView, error) {
	sess := cl.session
	st, decided, err := fn()
	switch {
	case errors.Is(err, study.ErrDecisionNotAllowed), errors.Is(err, study.ErrDeckExhausted):
		v := s.studyView(sess)
		v.Error = err.Error()
		return v, nil
	case err != nil:
		slog.Error("Error recording decision", "theme", sess.ThemeKey(), "error", err)
		return studyView{}, err
	}

	v := s.studyView(sess)
	if decided {
		cl.audio.Stop()
		v.Audio = silence
		v.Decided = st
		if sess.Exhausted() {
			slog.Info("Study session finished", "theme", sess.ThemeKey(), "today", v.TodayCount)
		}
	}
	return v, nil
}

func (s *Server) handleAudioEnded() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cl := s.clientFor(w, r)
		cl.audio.Stop()
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) studyView(sess *study.Session) studyView {
	pos, total := sess.Position()
	v := studyView{
		ThemeKey:   sess.ThemeKey(),
		ThemeName:  s.catalog.Get().ThemeName(sess.ThemeKey()),
		Position:   pos,
		Total:      total,
		Exhausted:  sess.Exhausted(),
		CanDecide:  sess.CanDecide(),
		Statuses:   domain.Statuses,
		TodayCount: s.progress.TodayCount(sess.ThemeKey()),
		Threshold:  s.swipeThreshold,
	}
	if card, ok := sess.Current(); ok {
		v.Card = card
		v.Face = sess.Presenter().Face().String()
	}
	return v
}
