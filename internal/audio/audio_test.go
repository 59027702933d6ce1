package audio

import (
	"errors"
	"testing"

	"github.com/conorfennell/kotoba/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	playing string
	played  []string
	stops   int
	failOn  string
}

func (f *fakePlayer) Play(url string) error {
	if url == f.failOn {
		return errors.New("unsupported format")
	}
	f.playing = url
	f.played = append(f.played, url)
	return nil
}

func (f *fakePlayer) Stop() {
	f.stops++
	f.playing = ""
}

func (f *fakePlayer) Playing() bool { return f.playing != "" }

var (
	cardA  = domain.Card{ID: "a", AudioURL: "audio/a.mp3"}
	cardB  = domain.Card{ID: "b", AudioURL: "audio/b.mp3"}
	silent = domain.Card{ID: "s"}
	broken = domain.Card{ID: "x", AudioURL: "audio/x.wma"}
)

func TestControllerToggleAndSwitch(t *testing.T) {
	p := &fakePlayer{}
	c := NewController(p)

	res, err := c.Request(cardA, true)
	require.NoError(t, err)
	assert.Equal(t, Started, res)
	assert.Equal(t, "a", c.NowPlaying())

	res, err = c.Request(cardB, true)
	require.NoError(t, err)
	assert.Equal(t, Started, res, "a different card replaces the current one")
	assert.Equal(t, "audio/b.mp3", p.playing)

	res, err = c.Request(cardB, true)
	require.NoError(t, err)
	assert.Equal(t, Stopped, res, "the same card toggles off")
	assert.Equal(t, "", c.NowPlaying())
	assert.False(t, p.Playing())

	res, err = c.Request(cardB, true)
	require.NoError(t, err)
	assert.Equal(t, Started, res, "after stopping, the same card plays again")
}

func TestControllerFinishedPlaybackRestarts(t *testing.T) {
	p := &fakePlayer{}
	c := NewController(p)

	_, err := c.Request(cardA, true)
	require.NoError(t, err)
	p.playing = "" // playback ended on its own

	res, err := c.Request(cardA, true)
	require.NoError(t, err)
	assert.Equal(t, Started, res)
}

func TestControllerErrorsOnlyWhenExplicit(t *testing.T) {
	p := &fakePlayer{failOn: broken.AudioURL}
	c := NewController(p)

	_, err := c.Request(silent, true)
	assert.True(t, errors.Is(err, ErrNoAudio))

	res, err := c.Request(silent, false)
	assert.NoError(t, err)
	assert.Equal(t, Skipped, res)

	_, err = c.Request(broken, true)
	assert.True(t, errors.Is(err, ErrPlayback))

	res, err = c.Request(broken, false)
	assert.NoError(t, err)
	assert.Equal(t, Skipped, res)
	assert.Equal(t, "", c.NowPlaying())
}

func TestBrowserPlayer(t *testing.T) {
	p := &BrowserPlayer{}
	c := NewController(p)

	_, err := c.Request(cardA, true)
	require.NoError(t, err)
	assert.Equal(t, "audio/a.mp3", p.Current())

	res, _ := c.Request(cardA, true)
	assert.Equal(t, Stopped, res)
	assert.Equal(t, "", p.Current())
}

func TestCommandPlayerResolve(t *testing.T) {
	p, err := NewCommandPlayer([]string{"ffplay", "-nodisp"}, "/data/cards")
	require.NoError(t, err)

	assert.Equal(t, "/data/cards/audio/a.mp3", p.resolve("audio/a.mp3"))
	assert.Equal(t, "/tmp/a.mp3", p.resolve("/tmp/a.mp3"))
	assert.Equal(t, "https://example.com/a.mp3", p.resolve("https://example.com/a.mp3"))

	_, err = NewCommandPlayer(nil, "")
	assert.Error(t, err)
}

func TestCommandPlayerMissingBinary(t *testing.T) {
	p, err := NewCommandPlayer([]string{"kotoba-no-such-player"}, "")
	require.NoError(t, err)
	assert.Error(t, p.Play("a.mp3"))
	assert.False(t, p.Playing())
	p.Stop()
}
