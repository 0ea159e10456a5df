//go:build !cgo

package cmd

import (
	"github.com/goodsheperd/shepherd/midi"
)

func NewMidiContext() midi.Context {
	// with no cgo, we cannot use MIDI, so return a null context
	return midi.NullContext{}
}
