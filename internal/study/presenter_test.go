package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresenterTransitions(t *testing.T) {
	t.Run("tap does nothing before a start choice", func(t *testing.T) {
		var p Presenter
		assert.False(t, p.Tap())
		assert.Equal(t, FaceChoose, p.Face())
		assert.False(t, p.Presented())
	})

	t.Run("native start flips between front and back", func(t *testing.T) {
		var p Presenter
		assert.True(t, p.ChooseNative())
		assert.Equal(t, FaceNative, p.Face())

		assert.True(t, p.Tap())
		assert.Equal(t, FaceBack, p.Face())
		assert.True(t, p.Revealed())

		assert.True(t, p.Tap())
		assert.Equal(t, FaceNative, p.Face())
		assert.False(t, p.Revealed())
	})

	t.Run("audio start never jumps straight to the back", func(t *testing.T) {
		var p Presenter
		assert.True(t, p.ChooseAudio())
		assert.Equal(t, FaceAudio, p.Face())

		assert.True(t, p.Tap())
		assert.Equal(t, FaceNative, p.Face(), "tapping an audio front shows the native text")

		assert.True(t, p.Tap())
		assert.Equal(t, FaceBack, p.Face())
	})

	t.Run("show native from audio", func(t *testing.T) {
		var p Presenter
		assert.False(t, p.ShowNative())
		p.ChooseAudio()
		assert.True(t, p.ShowNative())
		assert.Equal(t, ModeNative, p.Mode())
		assert.False(t, p.ShowNative())
	})

	t.Run("start choice only applies once", func(t *testing.T) {
		var p Presenter
		p.ChooseNative()
		assert.False(t, p.ChooseAudio())
		assert.Equal(t, ModeNative, p.Mode())
	})

	t.Run("reset", func(t *testing.T) {
		var p Presenter
		p.ChooseNative()
		p.Tap()
		p.Reset()
		assert.Equal(t, ModeStart, p.Mode())
		assert.False(t, p.Revealed())
	})
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "start", ModeStart.String())
	assert.Equal(t, "native", ModeNative.String())
	assert.Equal(t, "audio", ModeAudio.String())
}

func TestFaceString(t *testing.T) {
	var p Presenter
	assert.Equal(t, "choose", p.Face().String())
	p.ChooseAudio()
	assert.Equal(t, "audio", p.Face().String())
	p.Tap()
	assert.Equal(t, "native", p.Face().String())
	p.Tap()
	assert.Equal(t, "back", p.Face().String())
}
