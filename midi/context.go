package midi

import (
	"errors"

	gomidi "gitlab.com/gomidi/midi/v2"
)

type (
	// Context opens MIDI ports by the prefix of their names.
	Context interface {
		// Listen calls fn for every message received on the first input port
		// whose name starts with prefix. Calling stop ends listening.
		Listen(prefix string, fn func(msg gomidi.Message, timestampms int32)) (stop func(), err error)
		// Sender returns a function sending to the first output port whose
		// name starts with prefix.
		Sender(prefix string) (send func(msg gomidi.Message) error, err error)
		Inputs() []string
		Outputs() []string
		Close()
		Support() Support
	}

	Support int
)

const (
	SupportNotCompiled Support = iota
	SupportNoDriver
	Supported
)

var ErrNotSupported = errors.New("MIDI is not supported in this build")

func (s Support) String() string {
	switch s {
	case SupportNotCompiled:
		return "not compiled"
	case SupportNoDriver:
		return "no driver"
	}
	return "supported"
}

// NullContext is a Context without any ports, for builds without MIDI.
type NullContext struct{}

func (NullContext) Listen(string, func(gomidi.Message, int32)) (func(), error) {
	return nil, ErrNotSupported
}
func (NullContext) Sender(string) (func(gomidi.Message) error, error) { return nil, ErrNotSupported }
func (NullContext) Inputs() []string                                 { return nil }
func (NullContext) Outputs() []string                                { return nil }
func (NullContext) Close()                                           {}
func (NullContext) Support() Support                                 { return SupportNotCompiled }
