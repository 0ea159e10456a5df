package midi

import (
	"github.com/goodsheperd/shepherd"
	"github.com/goodsheperd/shepherd/rack"
	"github.com/goodsheperd/shepherd/sequencer"
	gomidi "gitlab.com/gomidi/midi/v2"
)

type (
	// Mapping translates incoming MIDI messages into button presses. Note on
	// messages press the step with the same index as the key; control changes
	// press the per row and global buttons when their value is at least 64.
	Mapping struct {
		Channel      uint8
		NudgeLeftCC  uint8 // first of NumRows consecutive controllers
		NudgeRightCC uint8
		MuteCC       uint8
		RunCC        uint8
		ResetCC      uint8
		NudgeModeCC  uint8
	}

	// Presser receives the button presses of a Mapping, e.g. *rack.Rack.
	Presser interface {
		Press(b rack.Button) bool
	}
)

// DefaultMapping returns the controller layout listening on a channel.
func DefaultMapping(channel uint8) Mapping {
	return Mapping{
		Channel:      channel,
		NudgeLeftCC:  20,
		NudgeRightCC: 20 + shepherd.NumRows,
		MuteCC:       20 + 2*shepherd.NumRows,
		RunCC:        20 + 3*shepherd.NumRows,
		ResetCC:      21 + 3*shepherd.NumRows,
		NudgeModeCC:  22 + 3*shepherd.NumRows,
	}
}

// Button returns the button a message presses. Messages on other channels,
// note offs and released controllers press nothing.
func (m Mapping) Button(msg gomidi.Message) (rack.Button, bool) {
	var channel, key, velocity, cc, value uint8
	switch {
	case msg.GetNoteStart(&channel, &key, &velocity):
		if channel != m.Channel || int(key) >= shepherd.NumSteps {
			return rack.Button{}, false
		}
		return rack.Button{Kind: sequencer.StepButton, Row: int(key) / shepherd.NumColumns, Col: int(key) % shepherd.NumColumns}, true
	case msg.GetControlChange(&channel, &cc, &value):
		if channel != m.Channel || value < 64 {
			return rack.Button{}, false
		}
		return m.controller(cc)
	}
	return rack.Button{}, false
}

func (m Mapping) controller(cc uint8) (rack.Button, bool) {
	inRow := func(first uint8) (int, bool) {
		return int(cc) - int(first), cc >= first && int(cc) < int(first)+shepherd.NumRows
	}
	if row, ok := inRow(m.NudgeLeftCC); ok {
		return rack.Button{Kind: sequencer.NudgeLeftButton, Row: row}, true
	}
	if row, ok := inRow(m.NudgeRightCC); ok {
		return rack.Button{Kind: sequencer.NudgeRightButton, Row: row}, true
	}
	if row, ok := inRow(m.MuteCC); ok {
		return rack.Button{Kind: sequencer.MuteButton, Row: row}, true
	}
	switch cc {
	case m.RunCC:
		return rack.Button{Kind: sequencer.RunButton}, true
	case m.ResetCC:
		return rack.Button{Kind: sequencer.ResetButton}, true
	case m.NudgeModeCC:
		return rack.Button{Kind: sequencer.NudgeModeButton}, true
	}
	return rack.Button{}, false
}

// Handler returns a listener function for ListenTo that presses the mapped
// buttons of p.
func (m Mapping) Handler(p Presser) func(msg gomidi.Message, timestampms int32) {
	return func(msg gomidi.Message, timestampms int32) {
		if b, ok := m.Button(msg); ok {
			p.Press(b)
		}
	}
}
