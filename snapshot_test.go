package shepherd_test

import (
	"strings"
	"testing"

	"github.com/goodsheperd/shepherd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlSnapshot = `running: true
steps: [true, false, true]
positions: [3, 4]
increments: [1, -1]
mutes: [false, true]
nudgeFullRow: true
`

func TestDecodeYAMLSnapshot(t *testing.T) {
	s, err := shepherd.DecodeSnapshot([]byte(yamlSnapshot))
	require.NoError(t, err)
	assert.Equal(t, shepherd.Some(true), s.Running)
	assert.Equal(t, []shepherd.Optional[bool]{shepherd.Some(true), shepherd.Some(false), shepherd.Some(true)}, s.Steps)
	assert.Equal(t, []shepherd.Optional[int]{shepherd.Some(3), shepherd.Some(4)}, s.Positions)
	assert.Equal(t, []shepherd.Optional[int]{shepherd.Some(1), shepherd.Some(-1)}, s.Increments)
	assert.Equal(t, []shepherd.Optional[bool]{shepherd.Some(false), shepherd.Some(true)}, s.Mutes)
	assert.Equal(t, shepherd.Some(true), s.NudgeFullRow)
}

func TestDecodeSkipsMalformedValues(t *testing.T) {
	data := `{"running": "yes", "steps": [true, "x", null, false], "positions": 3, "mutes": [false, true]}`
	s, err := shepherd.DecodeSnapshot([]byte(data))
	require.NoError(t, err)
	assert.True(t, s.Running.Empty())
	assert.Equal(t, []shepherd.Optional[bool]{shepherd.Some(true), {}, {}, shepherd.Some(false)}, s.Steps)
	assert.Nil(t, s.Positions)
	assert.Equal(t, []shepherd.Optional[bool]{shepherd.Some(false), shepherd.Some(true)}, s.Mutes)
	assert.True(t, s.NudgeFullRow.Empty())
}

func TestDecodeSkipsMalformedYAMLValues(t *testing.T) {
	s, err := shepherd.DecodeSnapshot([]byte("running: maybe\nincrements: [2, abc, ~]\n"))
	require.NoError(t, err)
	assert.True(t, s.Running.Empty())
	assert.Equal(t, []shepherd.Optional[int]{shepherd.Some(2), {}, {}}, s.Increments)
}

func TestDecodeLegacyKeys(t *testing.T) {
	s, err := shepherd.DecodeSnapshot([]byte("position: [5, 6]\nincrement: [-1]\n"))
	require.NoError(t, err)
	assert.Equal(t, []shepherd.Optional[int]{shepherd.Some(5), shepherd.Some(6)}, s.Positions)
	assert.Equal(t, []shepherd.Optional[int]{shepherd.Some(-1)}, s.Increments)

	s, err = shepherd.DecodeSnapshot([]byte(`{"positions": [1], "position": [9]}`))
	require.NoError(t, err)
	assert.Equal(t, []shepherd.Optional[int]{shepherd.Some(1)}, s.Positions, "current key should win over legacy key")
}

func TestDecodeGarbage(t *testing.T) {
	_, err := shepherd.DecodeSnapshot([]byte("steps: [true, false"))
	assert.Error(t, err)
}

func TestEncodeDecodeSnapshot(t *testing.T) {
	want := shepherd.Snapshot{
		Running:      shepherd.Some(false),
		Steps:        []shepherd.Optional[bool]{shepherd.Some(true), {}, shepherd.Some(false)},
		Positions:    []shepherd.Optional[int]{shepherd.Some(7)},
		Increments:   []shepherd.Optional[int]{shepherd.Some(-2)},
		Mutes:        []shepherd.Optional[bool]{shepherd.Some(true)},
		NudgeFullRow: shepherd.Some(true),
		Transport:    shepherd.TransportState{DivisorIndex: shepherd.Some(4)},
		Melody: shepherd.MelodyState{
			Running:        shepherd.Some(true),
			Gates:          shepherd.Optionals[bool]{shepherd.Some(false), shepherd.Some(true)},
			SwitchPosition: shepherd.Some(1),
		},
	}
	for _, format := range []shepherd.SnapshotFormat{shepherd.YAML, shepherd.JSON} {
		data, err := shepherd.EncodeSnapshot(want, format)
		require.NoError(t, err)
		got, err := shepherd.DecodeSnapshot(data)
		require.NoError(t, err)
		assert.Equal(t, want, got, "format %v:\n%s", format, data)
	}
}

func TestEncodeWritesCurrentKeys(t *testing.T) {
	data, err := shepherd.EncodeSnapshot(shepherd.Snapshot{
		Positions:  []shepherd.Optional[int]{shepherd.Some(1)},
		Increments: []shepherd.Optional[int]{shepherd.Some(1)},
	}, shepherd.YAML)
	require.NoError(t, err)
	str := string(data)
	assert.True(t, strings.Contains(str, "positions: [1]"), str)
	assert.True(t, strings.Contains(str, "increments: [1]"), str)
	assert.False(t, strings.Contains(str, "position:"), str)
}

func TestEncodeOmitsEmptyUnitStates(t *testing.T) {
	data, err := shepherd.EncodeSnapshot(shepherd.Snapshot{Running: shepherd.Some(true)}, shepherd.YAML)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "transport")
	assert.NotContains(t, string(data), "melody")
}
