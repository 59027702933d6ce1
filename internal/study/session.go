package study

import (
	"errors"
	"fmt"

	"github.com/conorfennell/kotoba/internal/domain"
)

var (
	// ErrDecisionNotAllowed is returned when a decision is made before the
	// learner has chosen how to start the card.
	ErrDecisionNotAllowed = errors.New("choose native text or audio before deciding")

	// ErrDeckExhausted is returned when a decision is made after the last card.
	ErrDeckExhausted = errors.New("deck exhausted")
)

// Recorder persists the outcome of a decision.
type Recorder interface {
	RecordDecision(themeKey string) error
	SetStatus(cardID string, status domain.Status) error
}

// Session steps through a deck.
type Session struct {
	themeKey  string
	deck      []domain.Card
	index     int
	presenter Presenter
	recorder  Recorder
	threshold float64
}

// NewSession starts a session over deck for the theme.
func NewSession(themeKey string, deck []domain.Card, recorder Recorder) *Session {
	return &Session{
		themeKey:  themeKey,
		deck:      deck,
		recorder:  recorder,
		threshold: DefaultSwipeThreshold,
	}
}

// SetSwipeThreshold changes the drag distance a swipe must exceed.
func (s *Session) SetSwipeThreshold(px float64) {
	if px > 0 {
		s.threshold = px
	}
}

// ThemeKey returns the theme the deck was built for.
func (s *Session) ThemeKey() string {
	return s.themeKey
}

// Current returns the card being studied.
func (s *Session) Current() (domain.Card, bool) {
	if s.Exhausted() {
		return domain.Card{}, false
	}
	return s.deck[s.index], true
}

// Exhausted reports whether every card has been decided.
func (s *Session) Exhausted() bool {
	return s.index >= len(s.deck)
}

// Position returns the 1-based position of the current card and the deck
// size. An exhausted session reports the deck size as its position; an
// empty deck reports 0 / 0.
func (s *Session) Position() (current, total int) {
	total = len(s.deck)
	return min(s.index+1, total), total
}

// Presenter exposes the current card's front/back state.
func (s *Session) Presenter() *Presenter {
	return &s.presenter
}

// ChooseNative starts the current card from its native text.
func (s *Session) ChooseNative() bool {
	return !s.Exhausted() && s.presenter.ChooseNative()
}

// ChooseAudio starts the current card from its audio.
func (s *Session) ChooseAudio() bool {
	return !s.Exhausted() && s.presenter.ChooseAudio()
}

// ShowNative switches an audio start to the native text.
func (s *Session) ShowNative() bool {
	return !s.Exhausted() && s.presenter.ShowNative()
}

// Tap handles a tap on the current card.
func (s *Session) Tap() bool {
	return !s.Exhausted() && s.presenter.Tap()
}

// CanDecide reports whether a decision would be accepted now.
func (s *Session) CanDecide() bool {
	return !s.Exhausted() && s.presenter.Presented()
}

// Decide records status for the current card and moves to the next one.
// Today's counter for the theme is bumped before the status is written.
func (s *Session) Decide(status domain.Status) error {
	card, ok := s.Current()
	if !ok {
		return ErrDeckExhausted
	}
	if !s.presenter.Presented() {
		return ErrDecisionNotAllowed
	}
	if _, err := domain.ParseStatus(string(status)); err != nil {
		return err
	}

	if err := s.recorder.RecordDecision(card.ThemeKey); err != nil {
		return fmt.Errorf("failed to record decision for card %s: %w", card.ID, err)
	}
	if err := s.recorder.SetStatus(card.ID, status); err != nil {
		return fmt.Errorf("failed to set status for card %s: %w", card.ID, err)
	}

	s.index++
	s.presenter.Reset()
	return nil
}

// Swipe turns a released drag into a decision. It reports false, with no
// state change, when the drag stayed under every threshold or decisions
// are not yet allowed.
func (s *Session) Swipe(dx, dy float64) (domain.Status, bool, error) {
	if !s.CanDecide() {
		return "", false, nil
	}
	status, ok := ClassifySwipe(dx, dy, s.threshold)
	if !ok {
		return "", false, nil
	}
	if err := s.Decide(status); err != nil {
		return status, false, err
	}
	return status, true, nil
}
