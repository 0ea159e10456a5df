package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Header   lipgloss.Style
	Dim      lipgloss.Style
	Step     lipgloss.Style
	Playhead lipgloss.Style
	Cursor   lipgloss.Style
	Gate     lipgloss.Style
	Muted    lipgloss.Style
	Status   lipgloss.Style
	Symbols  Symbols
}

type Symbols struct {
	StepEmpty   rune // · inactive step
	StepActive  rune // ● active step
	StepOutside rune // - outside the window
	PlayheadOff rune // ○ play head on an inactive step
	PlayheadOn  rune // ◉ play head on an active step
	GateOpen    rune // ■
	GateClosed  rune // □
}

func DefaultTheme() *Theme {
	return &Theme{
		Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("#d65fd1")).Bold(true),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6c4a8c")),
		Step:     lipgloss.NewStyle().Foreground(lipgloss.Color("#c9a0dc")),
		Playhead: lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd75f")),
		Cursor:   lipgloss.NewStyle().Reverse(true),
		Gate:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#585858")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaf5f")),
		Symbols: Symbols{
			StepEmpty:   '·',
			StepActive:  '●',
			StepOutside: '-',
			PlayheadOff: '○',
			PlayheadOn:  '◉',
			GateOpen:    '■',
			GateClosed:  '□',
		},
	}
}
