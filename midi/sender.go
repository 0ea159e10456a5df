package midi

import (
	"context"
	"fmt"

	"github.com/goodsheperd/shepherd/rack"
	gomidi "gitlab.com/gomidi/midi/v2"
)

// Velocity of the notes sent for gates.
const Velocity = 100

// Sender turns the events of a rack into notes: the gates of row r play
// BaseNote+r on Channel, the melody plays MelodyBaseNote plus its semitone
// offset on MelodyChannel.
type Sender struct {
	Channel        uint8
	BaseNote       uint8
	MelodyChannel  uint8
	MelodyBaseNote uint8

	send func(msg gomidi.Message) error
	on   map[[2]uint8]bool
}

func NewSender(send func(msg gomidi.Message) error) *Sender {
	return &Sender{send: send, on: map[[2]uint8]bool{}}
}

// Message returns the message for an event. Notes outside the MIDI range
// give no message.
func (s *Sender) Message(e rack.Event) (gomidi.Message, bool) {
	switch e.Kind {
	case rack.GateOn, rack.GateOff:
		key, ok := noteNumber(int(s.BaseNote) + e.Row)
		if !ok {
			return nil, false
		}
		if e.Kind == rack.GateOn {
			return gomidi.NoteOn(s.Channel, key, Velocity), true
		}
		return gomidi.NoteOff(s.Channel, key), true
	case rack.NoteOn, rack.NoteOff:
		key, ok := noteNumber(int(s.MelodyBaseNote) + e.Note)
		if !ok {
			return nil, false
		}
		if e.Kind == rack.NoteOn {
			return gomidi.NoteOn(s.MelodyChannel, key, Velocity), true
		}
		return gomidi.NoteOff(s.MelodyChannel, key), true
	}
	return nil, false
}

// Send sends the message of an event, keeping track of the sounding notes.
func (s *Sender) Send(e rack.Event) error {
	msg, ok := s.Message(e)
	if !ok {
		return nil
	}
	var channel, key, velocity uint8
	if msg.GetNoteStart(&channel, &key, &velocity) {
		s.on[[2]uint8{channel, key}] = true
	} else if msg.GetNoteEnd(&channel, &key) {
		delete(s.on, [2]uint8{channel, key})
	}
	if err := s.send(msg); err != nil {
		return fmt.Errorf("could not send %v: %w", msg, err)
	}
	return nil
}

// Silence sends a note off for every sounding note.
func (s *Sender) Silence() error {
	for k := range s.on {
		if err := s.send(gomidi.NoteOff(k[0], k[1])); err != nil {
			return fmt.Errorf("could not send note off: %w", err)
		}
		delete(s.on, k)
	}
	return nil
}

// Run sends the events until ctx is done or the channel is closed, and then
// silences the sounding notes. Send errors do not stop the loop; the last one
// is returned.
func (s *Sender) Run(ctx context.Context, events <-chan rack.Event) error {
	var last error
	for {
		select {
		case <-ctx.Done():
			if err := s.Silence(); err != nil {
				return err
			}
			return last
		case e, ok := <-events:
			if !ok {
				if err := s.Silence(); err != nil {
					return err
				}
				return last
			}
			if err := s.Send(e); err != nil {
				last = err
			}
		}
	}
}

func noteNumber(n int) (uint8, bool) {
	if n < 0 || n > 127 {
		return 0, false
	}
	return uint8(n), true
}
