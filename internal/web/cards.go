package web

import (
	"log/slog"
	"net/http"

	"github.com/conorfennell/kotoba/internal/domain"
	"github.com/conorfennell/kotoba/internal/study"
)

type cardView struct {
	Card      domain.Card
	ThemeName string
	Status    domain.Status
	Statuses  []domain.Status
	Face      string
	Audio     playback
}

// handleOpenCard opens the card modal on the start choice.
func (s *Server) handleOpenCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cl := s.clientFor(w, r)
		card, ok := s.catalog.Get().Card(r.PathValue("id"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		cl.modal = &modal{cardID: card.ID}
		s.render(w, "modal", s.cardView(cl, card, playback{}))
	}
}

func (s *Server) handleCloseCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cl := s.clientFor(w, r)
		cl.modal = nil
		cl.audio.Stop()
		s.render(w, "audio", silence)
	}
}

// handleCardAction drives the modal's presenter, plays audio, and sets the
// card's status from the status buttons.
func (s *Server) handleCardAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cl := s.clientFor(w, r)
		card, ok := s.catalog.Get().Card(r.PathValue("id"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		if cl.modal == nil || cl.modal.cardID != card.ID {
			cl.modal = &modal{cardID: card.ID}
		}
		p := &cl.modal.presenter

		var audio playback
		switch r.PathValue("action") {
		case "native":
			p.ChooseNative()
		case "audio":
			if p.ChooseAudio() {
				audio = s.requestAudio(cl, card, true)
			}
		case "show-native":
			p.ShowNative()
		case "tap":
			p.Tap()
		case "play":
			audio = s.requestAudio(cl, card, true)
		case "status":
			st, err := domain.ParseStatus(r.PostFormValue("status"))
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if err := s.progress.SetStatus(card.ID, st); err != nil {
				slog.Error("Error setting card status", "card", card.ID, "error", err)
				http.Error(w, "Failed to save status", http.StatusInternalServerError)
				return
			}
			w.Header().Set("HX-Trigger", "status-changed")
		default:
			http.NotFound(w, r)
			return
		}
		s.render(w, "modal", s.cardView(cl, card, audio))
	}
}

// handlePlayCard plays a card's audio from the theme table without
// opening the modal.
func (s *Server) handlePlayCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cl := s.clientFor(w, r)
		card, ok := s.catalog.Get().Card(r.PathValue("id"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		s.render(w, "audio", s.requestAudio(cl, card, true))
	}
}

func (s *Server) cardView(cl *client, card domain.Card, audio playback) cardView {
	var face study.Face
	if cl.modal != nil {
		face = cl.modal.presenter.Face()
	}
	return cardView{
		Card:      card,
		ThemeName: s.catalog.Get().ThemeName(card.ThemeKey),
		Status:    s.progress.Status(card.ID),
		Statuses:  domain.Statuses,
		Face:      face.String(),
		Audio:     audio,
	}
}
