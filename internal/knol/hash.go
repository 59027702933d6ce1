package knol

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/conorfennell/kotoba/internal/domain"
)

// Normalize concatenates the card's identifying content after cleaning each part.
// It trims whitespace, lowercases, and normalizes line endings for each field
// before joining them. Transcription and audio are left out so that fixing a
// typo in either keeps the card's identity and its recorded progress.
func Normalize(card domain.Card) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.TrimSpace(p)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return p
	}

	k := normalizePart(card.ThemeKey)
	n := normalizePart(card.Native)
	t := normalizePart(card.Target)

	// Joined with a newline so that adjacent fields cannot run together.
	return strings.Join([]string{k, n, t}, "\n")
}

// Hash takes a card, normalizes it, and returns its SHA-256 hash as a hex string.
func Hash(card domain.Card) string {
	normalized := Normalize(card)
	hashBytes := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", hashBytes)
}

// ID returns the card's own identifier, or a short content hash when the
// source record did not carry one.
func ID(card domain.Card) string {
	if id := strings.TrimSpace(card.ID); id != "" {
		return id
	}
	return "h-" + Hash(card)[:16]
}
