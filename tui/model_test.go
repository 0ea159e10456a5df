package tui_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodsheperd/shepherd"
	"github.com/goodsheperd/shepherd/config"
	"github.com/goodsheperd/shepherd/rack"
	"github.com/goodsheperd/shepherd/tui"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m tea.Model, msgs ...tea.Msg) tea.Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func process(r *rack.Rack) {
	r.Process(make(shepherd.GateBuffer, 8), nil, nil)
}

func TestKeysPressButtonsAtCursor(t *testing.T) {
	r := rack.New(config.Default())
	process(r)
	m := send(t, tui.NewModel(r, tui.DefaultTheme(), ""),
		tea.KeyMsg{Type: tea.KeyDown}, key("l"), key("l"), key(" "), key("m"))
	process(r)
	d := r.Display()
	assert.True(t, d.Grid.StepAt(1, 2), "space should toggle the step under the cursor")
	assert.True(t, d.Rows[1].Muted, "m should mute the row under the cursor")
	assert.False(t, d.Rows[0].Muted)

	send(t, m, key("]"), key("{"), key("+"), key("p"))
	process(r)
	d = r.Display()
	assert.Equal(t, 1, d.Rows[1].Start)
	assert.Equal(t, shepherd.NumColumns-2, d.Rows[1].End)
	assert.InDelta(t, 2.1, d.Tempo, 1e-6)
	assert.Equal(t, float32(9), d.Probabilities[1])
}

func TestSaveWritesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yml")
	r := rack.New(config.Default())
	process(r)
	m := send(t, tui.NewModel(r, tui.DefaultTheme(), path), key(" "))
	process(r)
	m = send(t, m, key("s"))
	assert.Contains(t, m.View(), "saved "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	snap, err := shepherd.DecodeSnapshot(data)
	require.NoError(t, err)
	v, ok := snap.Steps[0].Unpack()
	assert.True(t, ok && v)
}

func TestViewAndQuit(t *testing.T) {
	cfg := config.Default()
	cfg.Melody.Enabled = true
	cfg.Transport.Enabled = true
	r := rack.New(cfg)
	process(r)
	m := tui.NewModel(r, tui.DefaultTheme(), "")
	view := m.View()
	assert.Contains(t, view, "PLAY")
	assert.Contains(t, view, "Window")
	assert.Contains(t, view, "transport stopped")
	assert.Contains(t, view, "melody step 1/8")
	assert.Equal(t, shepherd.NumRows, strings.Count(view, "10.0"), "every row shows its probability")

	next, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Empty(t, next.View())
}
