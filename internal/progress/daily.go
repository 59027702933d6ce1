package progress

import (
	"fmt"

	"github.com/conorfennell/kotoba/internal/domain"
	"github.com/conorfennell/kotoba/internal/storage"
)

// Today returns today's decision counts. A stored record for any other
// day is discarded, and a fresh one for today is persisted in its place.
func (r *Repository) Today() (domain.DailyStats, error) {
	today := domain.DayKey(r.now())

	var stats domain.DailyStats
	if storage.GetJSON(r.kv, KeyTodayStats, &stats) && stats.Date == today {
		if stats.PerTheme == nil {
			stats.PerTheme = map[string]int{}
		}
		return stats, nil
	}

	stats = domain.NewDailyStats(today)
	if err := storage.SetJSON(r.kv, KeyTodayStats, stats); err != nil {
		return stats, fmt.Errorf("failed to reset daily stats: %w", err)
	}
	return stats, nil
}

// RecordDecision counts one study decision for the theme.
func (r *Repository) RecordDecision(themeKey string) error {
	stats, err := r.Today()
	if err != nil {
		return err
	}
	stats.Total++
	stats.PerTheme[themeKey]++
	if err := storage.SetJSON(r.kv, KeyTodayStats, stats); err != nil {
		return fmt.Errorf("failed to record decision for theme %s: %w", themeKey, err)
	}
	return nil
}

// TodayCount returns how many decisions were made today for the theme.
func (r *Repository) TodayCount(themeKey string) int {
	stats, _ := r.Today()
	return stats.PerTheme[themeKey]
}

// TodayTotal returns how many decisions were made today across all themes.
func (r *Repository) TodayTotal() int {
	stats, _ := r.Today()
	return stats.Total
}
