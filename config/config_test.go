package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goodsheperd/shepherd"
	"github.com/goodsheperd/shepherd/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	c, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := "tempo: 3.5\nmidi:\n  output: Synth\ntransport:\n  enabled: true\n  divisor: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(3.5), c.Tempo)
	assert.Equal(t, "Synth", c.MIDI.Output)
	assert.Equal(t, 36, c.MIDI.BaseNote)
	assert.True(t, c.Transport.Enabled)
	assert.Equal(t, 2, c.Transport.Divisor)
	assert.Equal(t, 44100, c.SampleRate)
	assert.Len(t, c.Rows, shepherd.NumRows)
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("tempo: [1, 2"), 0644))
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yml")
	c := config.Default()
	c.Rows[3] = config.RowConfig{Start: 2, End: 9, Probability: 5}
	c.Melody.Enabled = true
	c.SnapshotPath = "grid.yml"
	require.NoError(t, c.Save(path))
	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestRowFallsBackToDefault(t *testing.T) {
	c := config.Default()
	c.Rows = c.Rows[:2]
	assert.Equal(t, config.RowConfig{End: shepherd.NumColumns - 1, Probability: 10}, c.Row(5))
	c.Rows[1].Start = 4
	assert.Equal(t, 4, c.Row(1).Start)
}

func TestLoadRejectsNonPositiveSampleRate(t *testing.T) {
	for _, rate := range []string{"0", "-44100"} {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("sampleRate: "+rate+"\n"), 0644))
		_, err := config.Load(path)
		if assert.Error(t, err, "sampleRate %v", rate) {
			assert.Contains(t, err.Error(), "sampleRate")
		}
	}
}

func TestExternalClockDefaultsOn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("externalClock: false\n"), 0644))
	c, err := config.Load(path)
	require.NoError(t, err)
	assert.False(t, c.ExternalClock)
	assert.True(t, config.Default().ExternalClock)
}
