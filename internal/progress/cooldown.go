package progress

import (
	"time"

	"github.com/conorfennell/kotoba/internal/storage"
)

const day = 24 * time.Hour

func (r *Repository) loadKnownAt() map[string]int64 {
	m := map[string]int64{}
	if !storage.GetJSON(r.kv, KeyKnownAt, &m) || m == nil {
		return map[string]int64{}
	}
	return m
}

// KnownAt returns when the card was last marked known, if it is recorded.
func (r *Repository) KnownAt(cardID string) (time.Time, bool) {
	ms, ok := r.loadKnownAt()[cardID]
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// IsCoolingDown reports whether the card was marked known less than
// cooldownDays ago. Cards without a known-at stamp are never cooling down.
func (r *Repository) IsCoolingDown(cardID string, cooldownDays int) bool {
	if cooldownDays <= 0 {
		return false
	}
	knownAt, ok := r.KnownAt(cardID)
	if !ok {
		return false
	}
	return r.now().Sub(knownAt) < time.Duration(cooldownDays)*day
}
