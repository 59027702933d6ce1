package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilterModeKeep(t *testing.T) {
	testCases := []struct {
		filter FilterMode
		keep   map[Status]bool
	}{
		{FilterUnknown, map[Status]bool{StatusUnknown: true, StatusAmbiguous: false, StatusKnown: false}},
		{FilterAmbiguous, map[Status]bool{StatusUnknown: false, StatusAmbiguous: true, StatusKnown: false}},
		{FilterUnknownOrAmbiguous, map[Status]bool{StatusUnknown: true, StatusAmbiguous: true, StatusKnown: false}},
		{FilterAll, map[Status]bool{StatusUnknown: true, StatusAmbiguous: true, StatusKnown: true}},
	}

	for _, tc := range testCases {
		t.Run(string(tc.filter), func(t *testing.T) {
			for status, want := range tc.keep {
				assert.Equal(t, want, tc.filter.Keep(status), "status %s", status)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("ambiguous")
	assert.NoError(t, err)
	assert.Equal(t, StatusAmbiguous, s)

	_, err = ParseStatus("forgotten")
	assert.True(t, errors.Is(err, ErrUnknownStatus))
}

func TestParseFilterMode(t *testing.T) {
	f, err := ParseFilterMode("all")
	assert.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	_, err = ParseFilterMode("")
	assert.True(t, errors.Is(err, ErrUnknownFilter))
}

func TestSettingsClamp(t *testing.T) {
	testCases := []struct {
		name     string
		in       Settings
		expected Settings
	}{
		{
			name:     "in range is unchanged",
			in:       Settings{DeckSize: 20, CooldownDays: 0, Filter: FilterAll},
			expected: Settings{DeckSize: 20, CooldownDays: 0, Filter: FilterAll},
		},
		{
			name:     "below bounds",
			in:       Settings{DeckSize: 0, CooldownDays: -4, Filter: FilterUnknown},
			expected: Settings{DeckSize: MinDeckSize, CooldownDays: MinCooldownDays, Filter: FilterUnknown},
		},
		{
			name:     "above bounds",
			in:       Settings{DeckSize: 500, CooldownDays: 365, Filter: FilterAmbiguous},
			expected: Settings{DeckSize: MaxDeckSize, CooldownDays: MaxCooldownDays, Filter: FilterAmbiguous},
		},
		{
			name:     "bad filter falls back",
			in:       Settings{DeckSize: 10, CooldownDays: 3, Filter: "everything"},
			expected: Settings{DeckSize: 10, CooldownDays: 3, Filter: DefaultFilter},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.in.Clamp())
		})
	}
}

func TestDayKey(t *testing.T) {
	day := time.Date(2025, time.February, 3, 23, 59, 0, 0, time.Local)
	assert.Equal(t, "2025-02-03", DayKey(day))
}
