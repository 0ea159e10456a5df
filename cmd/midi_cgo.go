//go:build cgo

package cmd

import (
	"github.com/goodsheperd/shepherd/midi"
	"github.com/goodsheperd/shepherd/midi/rtmidi"
)

func NewMidiContext() midi.Context {
	return rtmidi.NewContext()
}
