package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goodsheperd/shepherd"
	"github.com/goodsheperd/shepherd/dsp"
	"github.com/goodsheperd/shepherd/rack"
	"github.com/goodsheperd/shepherd/sequencer"
)

// refreshInterval is how often the panel redraws the state of the rack.
const refreshInterval = 33 * time.Millisecond

type Model struct {
	Rack         *rack.Rack
	Theme        *Theme
	SnapshotPath string // where "s" saves; empty disables saving

	row, col int
	status   string
	quitting bool
	caser    cases.Caser
}

type refreshMsg time.Time

func NewModel(r *rack.Rack, th *Theme, snapshotPath string) Model {
	return Model{
		Rack:         r,
		Theme:        th,
		SnapshotPath: snapshotPath,
		caser:        cases.Title(language.English),
	}
}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return refresh()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	case refreshMsg:
		return m, refresh()
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	d := m.Rack.Display()
	cursor := d.Rows[m.row]
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		m.row = shepherd.ClampRow(m.row - 1)
	case "down", "j":
		m.row = shepherd.ClampRow(m.row + 1)
	case "left", "h":
		m.col = shepherd.ClampColumn(m.col - 1)
	case "right", "l":
		m.col = shepherd.ClampColumn(m.col + 1)
	case " ", "enter":
		m.press(sequencer.StepButton)
	case "r":
		m.press(sequencer.RunButton)
	case "backspace", "R":
		m.press(sequencer.ResetButton)
	case "m":
		m.press(sequencer.MuteButton)
	case ",":
		m.press(sequencer.NudgeLeftButton)
	case ".":
		m.press(sequencer.NudgeRightButton)
	case "n":
		m.press(sequencer.NudgeModeButton)
	case "[":
		m.Rack.SetWindow(m.row, cursor.Start-1, cursor.End)
	case "]":
		m.Rack.SetWindow(m.row, cursor.Start+1, cursor.End)
	case "{":
		m.Rack.SetWindow(m.row, cursor.Start, cursor.End-1)
	case "}":
		m.Rack.SetWindow(m.row, cursor.Start, cursor.End+1)
	case "+", "=":
		m.Rack.SetTempo(d.Tempo + 0.1)
	case "-", "_":
		m.Rack.SetTempo(d.Tempo - 0.1)
	case "p":
		m.Rack.SetProbability(m.row, clamp(d.Probabilities[m.row]-1, 0, 10))
	case "P":
		m.Rack.SetProbability(m.row, clamp(d.Probabilities[m.row]+1, 0, 10))
	case "t":
		m.Rack.Trigger(rack.TransportStart)
	case "c":
		m.Rack.Trigger(rack.TransportContinue)
	case "T":
		m.Rack.Trigger(rack.TransportStop)
	case "d":
		m.Rack.SetDivisor(d.Divisor + 1)
	case "D":
		m.Rack.SetDivisor(d.Divisor - 1)
	case "a":
		m.Rack.Trigger(rack.MelodyA)
	case "b":
		m.Rack.Trigger(rack.MelodyB)
	case "s":
		m.status = m.save()
	}
	return m, nil
}

func (m *Model) press(kind sequencer.ButtonKind) {
	if !m.Rack.Press(rack.Button{Kind: kind, Row: m.row, Col: m.col}) {
		m.status = "too many presses queued"
	}
}

func (m *Model) save() string {
	if m.SnapshotPath == "" {
		return "no snapshot file given"
	}
	data, err := shepherd.EncodeSnapshot(m.Rack.Snapshot(), shepherd.YAML)
	if err != nil {
		return fmt.Sprintf("could not encode snapshot: %v", err)
	}
	if err := os.WriteFile(m.SnapshotPath, data, 0644); err != nil {
		return fmt.Sprintf("could not save snapshot: %v", err)
	}
	return "saved " + m.SnapshotPath
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	d := m.Rack.Display()
	th := m.Theme
	state := "stop"
	if d.Outputs.Running {
		state = "play"
	}
	header := th.Header.Render(fmt.Sprintf("shepherd  %s  %5.1f Hz  nudge: %s",
		strings.ToUpper(state), clockRate(d.Tempo), m.caser.String(d.NudgeMode.String())))

	var grid strings.Builder
	for row := 0; row < shepherd.NumRows; row++ {
		grid.WriteString(m.rowView(&d, row))
		grid.WriteString("\n")
	}

	var units []string
	if d.HasTransport {
		transport := "stopped"
		if d.TransportRunning {
			transport = "running"
		}
		units = append(units, fmt.Sprintf("transport %s, divide %s", transport, dsp.DivisorNames[d.Divisor]))
	}
	if d.HasMelody {
		sw := "A"
		if d.MelodySwitch == 1 {
			sw = "B"
		}
		note := th.Dim.Render("--")
		if d.MelodyGate {
			note = th.Gate.Render(fmt.Sprintf("%+d", d.MelodyNote))
		}
		units = append(units, fmt.Sprintf("melody step %d/%d, switch %s, note %s", d.MelodyIndex+1, d.MelodySteps, sw, note))
	}

	help := th.Dim.Render("hjkl:move  space:step  r:run  R:reset  m:mute  ,/.:nudge  n:mode  []{}:window  +/-:tempo  p/P:prob  s:save  q:quit")

	parts := []string{header, "", grid.String()}
	for _, u := range units {
		parts = append(parts, th.Step.Render(u))
	}
	parts = append(parts, "", help)
	if m.status != "" {
		parts = append(parts, th.Status.Render(m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) rowView(d *rack.Display, row int) string {
	th := m.Theme
	c := d.Rows[row]
	start, end := c.Window()
	playhead := c.Column()
	cells := d.Grid.RowAt(row)
	var b strings.Builder
	fmt.Fprintf(&b, "%d ", row+1)
	for col, active := range cells {
		var r rune
		style := th.Step
		switch {
		case col == playhead && active:
			r, style = th.Symbols.PlayheadOn, th.Playhead
		case col == playhead:
			r, style = th.Symbols.PlayheadOff, th.Playhead
		case active:
			r = th.Symbols.StepActive
		case col < start || col > end:
			r, style = th.Symbols.StepOutside, th.Dim
		default:
			r = th.Symbols.StepEmpty
		}
		if c.Muted {
			style = th.Muted
		}
		if row == m.row && col == m.col {
			style = style.Inherit(th.Cursor)
		}
		b.WriteString(style.Render(string(r)))
	}
	gate := th.Dim.Render(string(th.Symbols.GateClosed))
	if d.Gates[row] {
		gate = th.Gate.Render(string(th.Symbols.GateOpen))
	}
	fmt.Fprintf(&b, " %s %4.1f", gate, d.Probabilities[row])
	if c.Muted {
		b.WriteString(th.Muted.Render(" muted"))
	}
	return b.String()
}

func clockRate(tempo float32) float64 {
	return float64(dsp.Rate(tempo))
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
