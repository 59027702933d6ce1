package web

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/conorfennell/kotoba/internal/audio"
	"github.com/conorfennell/kotoba/internal/domain"
	"github.com/conorfennell/kotoba/internal/study"
)

const clientCookie = "kotoba_client"

// client is the per-browser state: the open card modal, the running study
// session and the audio the page should be playing.
type client struct {
	session *study.Session
	modal   *modal
	player  *audio.BrowserPlayer
	audio   *audio.Controller
}

type modal struct {
	cardID    string
	presenter study.Presenter
}

func newClient() *client {
	player := &audio.BrowserPlayer{}
	return &client{
		player: player,
		audio:  audio.NewController(player),
	}
}

// clientFor returns the state for the browser's cookie, issuing a new id
// when the cookie is missing or unknown.
func (s *Server) clientFor(w http.ResponseWriter, r *http.Request) *client {
	if c, err := r.Cookie(clientCookie); err == nil {
		if cl, ok := s.clients[c.Value]; ok {
			return cl
		}
		if _, err := uuid.Parse(c.Value); err == nil {
			cl := newClient()
			s.clients[c.Value] = cl
			return cl
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     clientCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	cl := newClient()
	s.clients[id] = cl
	return cl
}

// playback is an update to the page's audio player. The zero value
// leaves the player alone; a set playback with no URL silences it.
type playback struct {
	Set   bool
	URL   string
	Error string
}

var silence = playback{Set: true}

// requestAudio asks the client's controller to play card and returns what
// the page should do about it.
func (s *Server) requestAudio(cl *client, card domain.Card, explicit bool) playback {
	result, err := cl.audio.Request(card, explicit)
	switch {
	case err != nil:
		return playback{Set: true, Error: err.Error()}
	case result == audio.Started:
		return playback{Set: true, URL: s.mediaURL(cl.player.Current())}
	case result == audio.Stopped:
		return silence
	}
	return playback{}
}

// mediaURL maps an audio reference to something the browser can fetch.
// Absolute URLs and rooted paths pass through; relative paths are served
// from the media directory.
func (s *Server) mediaURL(ref string) string {
	if ref == "" {
		return ""
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return ref
	}
	if strings.HasPrefix(ref, "/") || s.mediaDir == "" {
		return ref
	}
	return "/media/" + strings.TrimPrefix(path.Clean("/"+ref), "/")
}
