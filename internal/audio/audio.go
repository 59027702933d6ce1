// Package audio controls playback of card audio. Only one card plays at a
// time, and asking again for the card that is playing stops it.
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/conorfennell/kotoba/internal/domain"
)

var (
	// ErrNoAudio is returned when playback is requested for a card without audio.
	ErrNoAudio = errors.New("card has no audio")

	// ErrPlayback is returned when the player fails to start.
	ErrPlayback = errors.New("audio playback failed")
)

// Player plays one audio reference at a time.
type Player interface {
	Play(url string) error
	Stop()
	Playing() bool
}

// Result describes what a playback request did.
type Result int

const (
	// Skipped means nothing was played.
	Skipped Result = iota
	// Started means the card's audio began playing.
	Started
	// Stopped means the card was already playing and has been stopped.
	Stopped
)

// Controller routes playback requests to a Player.
type Controller struct {
	mu         sync.Mutex
	player     Player
	nowPlaying string
}

// NewController returns a Controller driving player.
func NewController(player Player) *Controller {
	return &Controller{player: player}
}

// Request plays the card's audio. An explicit request comes from the
// learner pressing play; anything else, such as auto-play on entering a
// card, is speculative and never reports an error.
func (c *Controller) Request(card domain.Card, explicit bool) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !card.HasAudio() {
		if explicit {
			return Skipped, fmt.Errorf("%w: %s", ErrNoAudio, card.ID)
		}
		return Skipped, nil
	}

	if c.nowPlaying == card.ID && c.player.Playing() {
		c.player.Stop()
		c.nowPlaying = ""
		return Stopped, nil
	}

	c.player.Stop()
	c.nowPlaying = card.ID
	if err := c.player.Play(card.AudioURL); err != nil {
		c.nowPlaying = ""
		if explicit {
			return Skipped, fmt.Errorf("%w: %w", ErrPlayback, err)
		}
		slog.Debug("Speculative audio playback failed", "card", card.ID, "error", err)
		return Skipped, nil
	}
	return Started, nil
}

// Stop halts any playback.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.player.Stop()
	c.nowPlaying = ""
}

// NowPlaying returns the id of the card playing, or "".
func (c *Controller) NowPlaying() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.nowPlaying != "" && !c.player.Playing() {
		c.nowPlaying = ""
	}
	return c.nowPlaying
}
