package domain

// Card is a single sentence card: a native-language prompt and its
// target-language answer, grouped under a theme.
type Card struct {
	ID            string `json:"id"`
	ThemeKey      string `json:"themeKey" validate:"required"`
	ThemeName     string `json:"themeName"`
	Native        string `json:"jp" validate:"required"`
	Target        string `json:"en" validate:"required"`
	Transcription string `json:"ipa"`
	AudioURL      string `json:"audioUrl,omitempty"`
}

// HasAudio reports whether the card carries an audio reference.
func (c Card) HasAudio() bool {
	return c.AudioURL != ""
}

// Theme is a derived grouping of cards sharing a theme key.
type Theme struct {
	Key   string `json:"themeKey"`
	Name  string `json:"themeName"`
	Count int    `json:"count"`
}
