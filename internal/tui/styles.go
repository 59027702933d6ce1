package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/conorfennell/kotoba/internal/domain"
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	styleSubtle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleNative  = lipgloss.NewStyle().Bold(true)
	styleTarget  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	styleIPA     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	styleNotice  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleCard    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(1, 2).Width(56)
	statusStyles = map[domain.Status]lipgloss.Style{
		domain.StatusUnknown:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		domain.StatusAmbiguous: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		domain.StatusKnown:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)
