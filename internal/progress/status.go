package progress

import (
	"fmt"
	"time"

	"github.com/conorfennell/kotoba/internal/domain"
	"github.com/conorfennell/kotoba/internal/storage"
)

func (r *Repository) loadStatuses() map[string]domain.Status {
	m := map[string]domain.Status{}
	if !storage.GetJSON(r.kv, KeyStatus, &m) || m == nil {
		return map[string]domain.Status{}
	}
	return m
}

// Statuses returns every recorded status keyed by card id. Entries holding
// an unrecognised status are dropped.
func (r *Repository) Statuses() map[string]domain.Status {
	m := r.loadStatuses()
	for id, st := range m {
		if _, err := domain.ParseStatus(string(st)); err != nil {
			delete(m, id)
		}
	}
	return m
}

// Status returns the card's recorded status, or unknown when none is recorded.
func (r *Repository) Status(cardID string) domain.Status {
	st, ok := r.loadStatuses()[cardID]
	if !ok {
		return domain.StatusUnknown
	}
	if _, err := domain.ParseStatus(string(st)); err != nil {
		return domain.StatusUnknown
	}
	return st
}

// SetStatus records the card's status. Marking a card known stamps its
// known-at time with now; any other status clears it.
func (r *Repository) SetStatus(cardID string, status domain.Status) error {
	if _, err := domain.ParseStatus(string(status)); err != nil {
		return err
	}

	m := r.loadStatuses()
	m[cardID] = status
	if err := storage.SetJSON(r.kv, KeyStatus, m); err != nil {
		return fmt.Errorf("failed to save status for card %s: %w", cardID, err)
	}

	if status == domain.StatusKnown {
		return r.setKnownAt(cardID, r.now())
	}
	return r.clearKnownAt(cardID)
}

// StatusCounts tallies the statuses of the given cards.
func (r *Repository) StatusCounts(cards []domain.Card) map[domain.Status]int {
	m := r.Statuses()
	counts := make(map[domain.Status]int, len(domain.Statuses))
	for _, c := range cards {
		st, ok := m[c.ID]
		if !ok {
			st = domain.StatusUnknown
		}
		counts[st]++
	}
	return counts
}

func (r *Repository) setKnownAt(cardID string, at time.Time) error {
	m := r.loadKnownAt()
	m[cardID] = at.UnixMilli()
	if err := storage.SetJSON(r.kv, KeyKnownAt, m); err != nil {
		return fmt.Errorf("failed to save known-at for card %s: %w", cardID, err)
	}
	return nil
}

func (r *Repository) clearKnownAt(cardID string) error {
	m := r.loadKnownAt()
	if _, ok := m[cardID]; !ok {
		return nil
	}
	delete(m, cardID)
	if err := storage.SetJSON(r.kv, KeyKnownAt, m); err != nil {
		return fmt.Errorf("failed to clear known-at for card %s: %w", cardID, err)
	}
	return nil
}
