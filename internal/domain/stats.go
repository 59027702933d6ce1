package domain

import "time"

// DailyStats counts decisions made on a single local calendar day.
type DailyStats struct {
	Date     string         `json:"date"` // "2025-02-20"
	Total    int            `json:"total"`
	PerTheme map[string]int `json:"perTheme"`
}

// NewDailyStats returns an empty record for the given day key.
func NewDailyStats(date string) DailyStats {
	return DailyStats{Date: date, PerTheme: map[string]int{}}
}

// DayKey returns the local calendar day of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Local().Format(time.DateOnly)
}
