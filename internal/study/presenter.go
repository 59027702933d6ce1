// Package study runs a study session: one card at a time, a front/back
// reveal, and a three-way decision per card.
package study

// Mode is how the front of a card is being presented.
type Mode int

const (
	// ModeStart asks the learner to choose native text or audio first.
	ModeStart Mode = iota
	// ModeNative shows the native-language prompt.
	ModeNative
	// ModeAudio offers audio playback with the native text hidden.
	ModeAudio
)

func (m Mode) String() string {
	switch m {
	case ModeStart:
		return "start"
	case ModeNative:
		return "native"
	case ModeAudio:
		return "audio"
	}
	return "unknown"
}

// Face names what the learner currently sees.
type Face int

const (
	FaceChoose Face = iota
	FaceNative
	FaceAudio
	FaceBack
)

func (f Face) String() string {
	switch f {
	case FaceChoose:
		return "choose"
	case FaceNative:
		return "native"
	case FaceAudio:
		return "audio"
	case FaceBack:
		return "back"
	}
	return "unknown"
}

// Presenter is the front/back state of a single card.
//
//	start --native--> native --tap--> back --tap--> native
//	start --audio---> audio  --tap or show native--> native
type Presenter struct {
	mode     Mode
	revealed bool
}

// Mode returns the front presentation mode.
func (p *Presenter) Mode() Mode {
	return p.mode
}

// Revealed reports whether the back of the card is showing.
func (p *Presenter) Revealed() bool {
	return p.revealed
}

// Presented reports whether a start mode has been chosen.
func (p *Presenter) Presented() bool {
	return p.mode != ModeStart
}

// Face returns what the learner currently sees.
func (p *Presenter) Face() Face {
	switch {
	case p.revealed:
		return FaceBack
	case p.mode == ModeNative:
		return FaceNative
	case p.mode == ModeAudio:
		return FaceAudio
	}
	return FaceChoose
}

// ChooseNative starts the card from its native text. It only applies
// while a start mode is still being chosen.
func (p *Presenter) ChooseNative() bool {
	if p.mode != ModeStart || p.revealed {
		return false
	}
	p.mode = ModeNative
	return true
}

// ChooseAudio starts the card from its audio. The caller plays the audio
// when this returns true.
func (p *Presenter) ChooseAudio() bool {
	if p.mode != ModeStart || p.revealed {
		return false
	}
	p.mode = ModeAudio
	return true
}

// ShowNative switches an audio start to the native text.
func (p *Presenter) ShowNative() bool {
	if p.mode != ModeAudio || p.revealed {
		return false
	}
	p.mode = ModeNative
	return true
}

// Tap handles a tap on the card surface. It does nothing before a start
// mode is chosen, turns an audio front into the native front rather than
// revealing the back, and otherwise flips between native front and back.
func (p *Presenter) Tap() bool {
	switch {
	case p.mode == ModeStart:
		return false
	case p.mode == ModeAudio && !p.revealed:
		p.mode = ModeNative
	case p.revealed:
		p.revealed = false
		p.mode = ModeNative
	default:
		p.revealed = true
	}
	return true
}

// Reset returns to the start choice with the back hidden.
func (p *Presenter) Reset() {
	p.mode = ModeStart
	p.revealed = false
}
