package progress

import (
	"fmt"

	"github.com/conorfennell/kotoba/internal/storage"
)

// MaxRecentThemes caps the recent-themes list.
const MaxRecentThemes = 6

// RecentThemes returns the most recently opened theme keys, newest first.
func (r *Repository) RecentThemes() []string {
	var keys []string
	if !storage.GetJSON(r.kv, KeyRecentThemes, &keys) {
		return nil
	}
	return keys
}

// PushRecent moves themeKey to the front of the recent list.
func (r *Repository) PushRecent(themeKey string) error {
	keys := []string{themeKey}
	for _, k := range r.RecentThemes() {
		if k != themeKey {
			keys = append(keys, k)
		}
	}
	if len(keys) > MaxRecentThemes {
		keys = keys[:MaxRecentThemes]
	}
	if err := storage.SetJSON(r.kv, KeyRecentThemes, keys); err != nil {
		return fmt.Errorf("failed to save recent themes: %w", err)
	}
	return nil
}

// LastTheme returns the last opened theme key, or "" if none.
func (r *Repository) LastTheme() string {
	v, ok, err := r.kv.Get(KeyLastTheme)
	if err != nil || !ok {
		return ""
	}
	return v
}

// OpenTheme records themeKey as the last opened theme and pushes it onto
// the recent list.
func (r *Repository) OpenTheme(themeKey string) error {
	if err := r.kv.Set(KeyLastTheme, themeKey); err != nil {
		return fmt.Errorf("failed to save last theme: %w", err)
	}
	return r.PushRecent(themeKey)
}
