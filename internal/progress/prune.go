package progress

import (
	"fmt"

	"github.com/conorfennell/kotoba/internal/storage"
)

// Orphans returns the ids that have a recorded status or known-at stamp but
// do not satisfy valid.
func (r *Repository) Orphans(valid func(cardID string) bool) []string {
	seen := map[string]bool{}
	var orphans []string
	collect := func(id string) {
		if !valid(id) && !seen[id] {
			seen[id] = true
			orphans = append(orphans, id)
		}
	}
	for id := range r.loadStatuses() {
		collect(id)
	}
	for id := range r.loadKnownAt() {
		collect(id)
	}
	return orphans
}

// Prune removes status and known-at entries whose ids do not satisfy
// valid, and returns how many distinct ids were removed.
func (r *Repository) Prune(valid func(cardID string) bool) (int, error) {
	orphans := r.Orphans(valid)
	if len(orphans) == 0 {
		return 0, nil
	}

	statuses := r.loadStatuses()
	knownAt := r.loadKnownAt()
	for _, id := range orphans {
		delete(statuses, id)
		delete(knownAt, id)
	}
	if err := storage.SetJSON(r.kv, KeyStatus, statuses); err != nil {
		return 0, fmt.Errorf("failed to prune statuses: %w", err)
	}
	if err := storage.SetJSON(r.kv, KeyKnownAt, knownAt); err != nil {
		return 0, fmt.Errorf("failed to prune known-at stamps: %w", err)
	}
	return len(orphans), nil
}
