// Package deck selects and orders the cards for one study session.
package deck

import (
	"math/rand/v2"

	"github.com/conorfennell/kotoba/internal/domain"
)

// StatusSource reports a card's recorded status.
type StatusSource interface {
	Status(cardID string) domain.Status
}

// CooldownSource reports whether a card is withheld after being marked known.
type CooldownSource interface {
	IsCoolingDown(cardID string, cooldownDays int) bool
}

// Builder produces study decks.
type Builder struct {
	Status   StatusSource
	Cooldown CooldownSource
	// Rand shuffles each status bucket. A nil Rand uses the global source.
	Rand *rand.Rand
}

// NewBuilder returns a Builder reading from src, which usually is a
// *progress.Repository.
func NewBuilder(src interface {
	StatusSource
	CooldownSource
}) *Builder {
	return &Builder{Status: src, Cooldown: src}
}

// Build returns the deck for themeKey: the theme's cards that pass the
// filter and are not cooling down, with every unknown card before every
// ambiguous card before every known card, each group shuffled, capped at
// the deck size.
func (b *Builder) Build(cards []domain.Card, themeKey string, s domain.Settings) []domain.Card {
	buckets := make(map[domain.Status][]domain.Card, len(domain.Statuses))
	for _, c := range cards {
		if c.ThemeKey != themeKey {
			continue
		}
		st := b.Status.Status(c.ID)
		if !s.Filter.Keep(st) {
			continue
		}
		if b.Cooldown.IsCoolingDown(c.ID, s.CooldownDays) {
			continue
		}
		buckets[st] = append(buckets[st], c)
	}

	deck := make([]domain.Card, 0, s.DeckSize)
	for _, st := range domain.Statuses {
		bucket := buckets[st]
		b.shuffle(bucket)
		deck = append(deck, bucket...)
	}

	if len(deck) > s.DeckSize {
		deck = deck[:max(s.DeckSize, 0)]
	}
	return deck
}

func (b *Builder) shuffle(cards []domain.Card) {
	swap := func(i, j int) { cards[i], cards[j] = cards[j], cards[i] }
	if b.Rand != nil {
		b.Rand.Shuffle(len(cards), swap)
		return
	}
	rand.Shuffle(len(cards), swap)
}
