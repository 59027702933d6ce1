package domain

// Bounds for user-editable study settings.
const (
	MinDeckSize = 1
	MaxDeckSize = 50

	MinCooldownDays = 0
	MaxCooldownDays = 30

	DefaultDeckSize     = 10
	DefaultCooldownDays = 3
	DefaultFilter       = FilterUnknownOrAmbiguous
)

// Settings holds the user's study preferences.
type Settings struct {
	DeckSize     int        `json:"deckSize"`
	CooldownDays int        `json:"cooldownDays"`
	Filter       FilterMode `json:"filter"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() Settings {
	return Settings{
		DeckSize:     DefaultDeckSize,
		CooldownDays: DefaultCooldownDays,
		Filter:       DefaultFilter,
	}
}

// Clamp pulls out-of-range values to the nearest bound and replaces an
// unrecognised filter with the default.
func (s Settings) Clamp() Settings {
	s.DeckSize = clamp(s.DeckSize, MinDeckSize, MaxDeckSize)
	s.CooldownDays = clamp(s.CooldownDays, MinCooldownDays, MaxCooldownDays)
	if _, err := ParseFilterMode(string(s.Filter)); err != nil {
		s.Filter = DefaultFilter
	}
	return s
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
