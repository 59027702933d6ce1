package progress

import (
	"fmt"
	"strconv"

	"github.com/conorfennell/kotoba/internal/domain"
)

// Settings returns the stored study settings. Absent or unparsable values
// fall back to their defaults and out-of-range values are clamped.
func (r *Repository) Settings() domain.Settings {
	s := domain.DefaultSettings()
	if n, ok := r.intScalar(KeyDeckSize); ok {
		s.DeckSize = n
	}
	if n, ok := r.intScalar(KeyCooldownDays); ok {
		s.CooldownDays = n
	}
	if v, ok, _ := r.kv.Get(KeyFilterMode); ok {
		if f, err := domain.ParseFilterMode(v); err == nil {
			s.Filter = f
		}
	}
	return s.Clamp()
}

// SaveSettings clamps and persists the settings, returning what was stored.
func (r *Repository) SaveSettings(s domain.Settings) (domain.Settings, error) {
	s = s.Clamp()
	if err := r.kv.Set(KeyDeckSize, strconv.Itoa(s.DeckSize)); err != nil {
		return s, fmt.Errorf("failed to save deck size: %w", err)
	}
	if err := r.kv.Set(KeyCooldownDays, strconv.Itoa(s.CooldownDays)); err != nil {
		return s, fmt.Errorf("failed to save cooldown days: %w", err)
	}
	if err := r.kv.Set(KeyFilterMode, string(s.Filter)); err != nil {
		return s, fmt.Errorf("failed to save filter mode: %w", err)
	}
	return s, nil
}

func (r *Repository) intScalar(key string) (int, bool) {
	v, ok, err := r.kv.Get(key)
	if err != nil || !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
