// Package tui runs a study session in the terminal.
package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/conorfennell/kotoba/internal/audio"
	"github.com/conorfennell/kotoba/internal/domain"
	"github.com/conorfennell/kotoba/internal/study"
)

// TodayCounter reports how many decisions were made today for a theme.
type TodayCounter interface {
	TodayCount(themeKey string) int
}

// Model is the bubbletea model for one study session.
type Model struct {
	session   *study.Session
	themeName string
	today     TodayCounter
	audio     *audio.Controller

	notice  string
	err     error
	decided domain.Status
	quit    bool
}

// New returns a model over sess. A nil audio controller disables playback.
func New(sess *study.Session, themeName string, today TodayCounter, ctl *audio.Controller) Model {
	return Model{
		session:   sess,
		themeName: themeName,
		today:     today,
		audio:     ctl,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.notice = ""
	m.err = nil

	switch keyMsg.String() {
	case "q", "esc", "ctrl+c":
		m.stopAudio()
		m.quit = true
		return m, tea.Quit
	case "1":
		m.session.ChooseNative()
	case "2":
		if m.session.ChooseAudio() {
			m.play()
		}
	case " ", "enter":
		m.session.Tap()
	case "a":
		m.play()
	case "right", "l":
		m.decide(domain.StatusKnown)
	case "left", "h":
		m.decide(domain.StatusUnknown)
	case "up", "k":
		m.decide(domain.StatusAmbiguous)
	}
	return m, nil
}

func (m *Model) decide(st domain.Status) {
	err := m.session.Decide(st)
	switch {
	case errors.Is(err, study.ErrDecisionNotAllowed), errors.Is(err, study.ErrDeckExhausted):
		m.notice = err.Error()
	case err != nil:
		m.err = err
	default:
		m.stopAudio()
		m.decided = st
	}
}

// play handles a key press, so failures are always reported.
func (m *Model) play() {
	card, ok := m.session.Current()
	if !ok {
		return
	}
	if m.audio == nil {
		m.notice = "audio playback is not configured"
		return
	}
	result, err := m.audio.Request(card, true)
	switch {
	case err != nil:
		m.err = err
	case result == audio.Stopped:
		m.notice = "audio stopped"
	}
}

func (m *Model) stopAudio() {
	if m.audio != nil {
		m.audio.Stop()
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quit {
		return ""
	}
	var b strings.Builder

	pos, total := m.session.Position()
	fmt.Fprintf(&b, "%s  %s  %s\n\n",
		styleTitle.Render(m.themeName),
		styleSubtle.Render(fmt.Sprintf("%d / %d", pos, total)),
		styleSubtle.Render(fmt.Sprintf("今日 %d 枚", m.today.TodayCount(m.session.ThemeKey()))),
	)

	if card, ok := m.session.Current(); ok {
		b.WriteString(styleCard.Render(m.face(card)))
		b.WriteString("\n\n")
		b.WriteString(m.help())
	} else {
		b.WriteString(styleDone.Render("このテーマのカードは終わり！"))
		b.WriteString("\n\n")
		b.WriteString(styleSubtle.Render("q: 終了"))
	}
	b.WriteString("\n")

	if m.decided != "" {
		b.WriteString("\n" + statusStyles[m.decided].Render("← "+m.decided.Label()))
	}
	if m.notice != "" {
		b.WriteString("\n" + styleNotice.Render(m.notice))
	}
	if m.err != nil {
		b.WriteString("\n" + styleError.Render("error: "+m.err.Error()))
	}
	return b.String() + "\n"
}

func (m Model) face(card domain.Card) string {
	switch m.session.Presenter().Face() {
	case study.FaceNative:
		return styleNative.Render(card.Native)
	case study.FaceAudio:
		return styleSubtle.Render("🔈 音声でスタート  (a: もう一度再生 / space: 日本語を表示)")
	case study.FaceBack:
		return styleTarget.Render(card.Target) + "\n" + styleIPA.Render(card.Transcription)
	}
	return "どちらから始める？\n\n1: 日本語   2: 🔈 音声"
}

func (m Model) help() string {
	if !m.session.CanDecide() {
		return styleSubtle.Render("1: 日本語  2: 音声  q: 終了")
	}
	return styleSubtle.Render("space: めくる  →/l: 覚えた  ←/h: 覚えていない  ↑/k: 曖昧  a: 音声  q: 終了")
}

// Run starts the terminal program and blocks until the learner quits.
func Run(m Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
