package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/conorfennell/kotoba/internal/audio"
	"github.com/conorfennell/kotoba/internal/domain"
	"github.com/conorfennell/kotoba/internal/progress"
	"github.com/conorfennell/kotoba/internal/storage"
	"github.com/conorfennell/kotoba/internal/study"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	playing string
	plays   []string
}

func (f *fakePlayer) Play(url string) error {
	f.playing = url
	f.plays = append(f.plays, url)
	return nil
}

func (f *fakePlayer) Stop()         { f.playing = "" }
func (f *fakePlayer) Playing() bool { return f.playing != "" }

var deck = []domain.Card{
	{ID: "c1", ThemeKey: "food", Native: "お腹が空いた", Target: "I'm hungry.", Transcription: "aɪm ˈhʌŋɡri", AudioURL: "c1.mp3"},
	{ID: "c2", ThemeKey: "food", Native: "おいしい", Target: "It's delicious."},
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(t *testing.T, ctl *audio.Controller) (Model, *progress.Repository) {
	t.Helper()
	repo := progress.New(storage.NewMemory())
	sess := study.NewSession("food", deck, repo)
	return New(sess, "食べ物", repo, ctl), repo
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestDecisionNeedsStartMode(t *testing.T) {
	m, repo := newModel(t, nil)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Contains(t, m.View(), "choose native text or audio before deciding")
	assert.Equal(t, 0, repo.TodayTotal())

	m = press(t, m, runes("1"))
	assert.Contains(t, m.View(), "お腹が空いた")

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Contains(t, m.View(), "I'm hungry.")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, domain.StatusKnown, repo.Status("c1"))
	assert.Equal(t, 1, repo.TodayCount("food"))
	assert.Contains(t, m.View(), "2 / 2")
	assert.Contains(t, m.View(), "今日 1 枚")
}

func TestKeyBindings(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want domain.Status
	}{
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, domain.StatusKnown},
		{"l", runes("l"), domain.StatusKnown},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, domain.StatusUnknown},
		{"h", runes("h"), domain.StatusUnknown},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, domain.StatusAmbiguous},
		{"k", runes("k"), domain.StatusAmbiguous},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, repo := newModel(t, nil)
			require.NoError(t, repo.SetStatus("c1", domain.StatusAmbiguous))

			m = press(t, m, runes("1"), tt.key)
			assert.Equal(t, tt.want, repo.Status("c1"))
			assert.Equal(t, 1, repo.TodayTotal())
		})
	}
}

func TestAudioKeys(t *testing.T) {
	player := &fakePlayer{}
	m, _ := newModel(t, audio.NewController(player))

	m = press(t, m, runes("2"))
	assert.Equal(t, []string{"c1.mp3"}, player.plays)
	assert.Contains(t, m.View(), "音声でスタート")

	m = press(t, m, runes("a"))
	assert.False(t, player.Playing(), "replaying the playing card stops it")
	assert.Contains(t, m.View(), "audio stopped")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "お腹が空いた", "tap on the audio front shows the native text")

	m = press(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, player.Playing(), "a decision stops playback")

	m = press(t, m, runes("2"))
	assert.Contains(t, m.View(), "card has no audio")
}

func TestAudioNotConfigured(t *testing.T) {
	m, _ := newModel(t, nil)
	m = press(t, m, runes("a"))
	assert.Contains(t, m.View(), "audio playback is not configured")
}

func TestExhaustedAndQuit(t *testing.T) {
	m, repo := newModel(t, nil)
	m = press(t, m,
		runes("1"), tea.KeyMsg{Type: tea.KeyLeft},
		runes("1"), tea.KeyMsg{Type: tea.KeyUp},
	)
	assert.Contains(t, m.View(), "このテーマのカードは終わり！")
	assert.Equal(t, 2, repo.TodayCount("food"))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Contains(t, m.View(), "deck exhausted")
	assert.Equal(t, 2, repo.TodayCount("food"))

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, strings.TrimSpace(next.View()) == "")
}
