package knol

import (
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/conorfennell/kotoba/internal/domain"
)

func TestNormalize(t *testing.T) {
	card := domain.Card{
		ThemeKey: "Food",
		Native:   "  りんごが好きです。 \r\n",
		Target:   "I Like Apples.",
	}
	expected := "food\nりんごが好きです。\ni like apples."
	normalized := Normalize(card)

	if normalized != expected {
		t.Errorf("Expected normalized string to be '%s', but got '%s'", expected, normalized)
	}
}

func TestHash(t *testing.T) {
	t.Run("generates correct hash", func(t *testing.T) {
		card := domain.Card{ThemeKey: "K", Native: "N", Target: "T"}
		expectedHash := fmt.Sprintf("%x", sha256.Sum256([]byte("k\nn\nt")))
		hash := Hash(card)

		if hash != expectedHash {
			t.Errorf("Expected hash '%s', but got '%s'", expectedHash, hash)
		}
	})

	t.Run("ignores transcription and audio", func(t *testing.T) {
		card1 := domain.Card{ThemeKey: "food", Native: "水", Target: "Water", Transcription: "/ˈwɔːtər/"}
		card2 := domain.Card{ThemeKey: "food", Native: "水", Target: "Water", AudioURL: "audio/water.mp3"}
		if Hash(card1) != Hash(card2) {
			t.Error("Expected transcription and audio to be excluded from the hash")
		}
	})

	t.Run("normalization produces same hash", func(t *testing.T) {
		card1 := domain.Card{ThemeKey: "food", Native: " 水 ", Target: "water"}
		card2 := domain.Card{ThemeKey: "FOOD", Native: "水", Target: "Water"}
		if Hash(card1) != Hash(card2) {
			t.Error("Expected hashes to be the same after normalization, but they were different.")
		}
	})

	t.Run("different themes have different hashes", func(t *testing.T) {
		card1 := domain.Card{ThemeKey: "food", Native: "水", Target: "water"}
		card2 := domain.Card{ThemeKey: "drink", Native: "水", Target: "water"}
		if Hash(card1) == Hash(card2) {
			t.Error("Expected hashes for different themes to be different")
		}
	})
}

func TestID(t *testing.T) {
	t.Run("keeps explicit id", func(t *testing.T) {
		card := domain.Card{ID: " food-001 ", Native: "水"}
		if got := ID(card); got != "food-001" {
			t.Errorf("Expected ID 'food-001', but got '%s'", got)
		}
	})

	t.Run("derives id from content", func(t *testing.T) {
		card := domain.Card{ThemeKey: "food", Native: "水", Target: "water"}
		got := ID(card)
		if got != "h-"+Hash(card)[:16] {
			t.Errorf("Expected derived ID, but got '%s'", got)
		}
		if got != ID(card) {
			t.Error("Expected derived ID to be stable")
		}
	})
}
