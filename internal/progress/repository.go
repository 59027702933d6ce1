// Package progress persists a learner's per-card status, known-at
// timestamps, daily decision counts, study settings and theme history.
package progress

import (
	"time"

	"github.com/conorfennell/kotoba/internal/storage"
)

// Store keys. Absent keys always fall back to a documented default.
const (
	KeyStatus       = "cardapp_status_v1"        // {"<id>": "known"|"ambiguous"|"unknown"}
	KeyLastTheme    = "cardapp_last_theme_v1"    // "theme01"
	KeyRecentThemes = "cardapp_recent_themes_v1" // ["theme01", ...]
	KeyDeckSize     = "cardapp_deck_size_v1"     // "10"
	KeyCooldownDays = "cardapp_cooldown_days_v1" // "3"
	KeyFilterMode   = "cardapp_filter_mode_v1"   // "unknown-or-ambiguous"
	KeyKnownAt      = "cardapp_known_at_v1"      // {"<id>": <unix millis>}
	KeyTodayStats   = "cardapp_today_stats_v1"   // {"date": "2025-02-20", "total": 3, "perTheme": {...}}
)

// Repository is the typed view over the key-value store.
type Repository struct {
	kv  storage.KV
	now func() time.Time
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock replaces the wall clock used for known-at timestamps, cooldown
// checks and the daily rollover.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// New returns a Repository reading and writing through kv.
func New(kv storage.KV, opts ...Option) *Repository {
	r := &Repository{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
