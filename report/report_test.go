package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goodsheperd/shepherd"
	"github.com/goodsheperd/shepherd/report"
	"github.com/goodsheperd/shepherd/sequencer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() shepherd.Snapshot {
	seq := sequencer.New()
	seq.Grid.SetStep(0, 0, true)
	seq.Grid.SetStep(0, 2, true)
	seq.Rows[0].Position = 2
	seq.Rows[1].Muted = true
	seq.Rows[2].Increment = -1
	seq.NudgeMode = sequencer.NudgeFullRow
	return seq.Snapshot()
}

func TestGrid(t *testing.T) {
	r, err := report.New()
	require.NoError(t, err)
	out, err := r.Grid("test", testSnapshot())
	require.NoError(t, err)
	empty := "o" + strings.Repeat(".", 15)
	expected := "Running, nudge Full Row\n" +
		"   0123456789012345\n" +
		"0  #.X" + strings.Repeat(".", 13) + "\n" +
		"1  " + empty + " muted\n" +
		"2  " + empty + " step -1\n"
	for row := 3; row < shepherd.NumRows; row++ {
		expected += string(rune('0'+row)) + "  " + empty + "\n"
	}
	assert.Equal(t, expected, out)
}

func TestGridShowsUnits(t *testing.T) {
	r, err := report.New()
	require.NoError(t, err)
	snap := testSnapshot()
	snap.Transport = shepherd.TransportState{DivisorIndex: shepherd.Some(7), ClockCounter: shepherd.Some(1)}
	snap.Melody = shepherd.MelodyState{
		Running:        shepherd.Some(false),
		Gates:          shepherd.Optionals[bool]{shepherd.Some(true), shepherd.Some(false)},
		SwitchPosition: shepherd.Some(1),
	}
	out, err := r.Grid("test", snap)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "divisor 2:1 (1/32T), counter 1\nmelody stopped #., switch B\n"), out)
}

func TestSummary(t *testing.T) {
	r, err := report.New()
	require.NoError(t, err)
	out, err := r.Summary("groove", testSnapshot())
	require.NoError(t, err)
	assert.Equal(t, "groove: running, 2 active steps, muted 1\n", out)
}

func TestPartialSnapshotUsesDefaults(t *testing.T) {
	snap, err := shepherd.DecodeSnapshot([]byte("running: false\nsteps: [false, true]\n"))
	require.NoError(t, err)
	m := report.NewMacros("partial", snap)
	assert.Equal(t, "stopped", m.State)
	assert.Equal(t, 1, m.ActiveSteps)
	assert.Equal(t, []string{"o", "#"}, m.Rows[0].Glyphs[:2])
	assert.Equal(t, 1, m.Rows[0].Increment)
	assert.False(t, m.HasTransport)
	assert.False(t, m.HasMelody)
}

func TestCustomTemplates(t *testing.T) {
	dir := t.TempDir()
	tmpl := `{{ caption .Name }} has {{ len .Rows }} rows{{ "\n" }}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "grid.txt"), []byte(tmpl), 0644))
	r, err := report.NewFromTemplates(dir)
	require.NoError(t, err)
	out, err := r.Grid("my groove", testSnapshot())
	require.NoError(t, err)
	assert.Equal(t, "My Groove has 8 rows\n", out)
	_, err = r.Summary("x", testSnapshot())
	assert.Error(t, err, "the directory has no summary template")
}
