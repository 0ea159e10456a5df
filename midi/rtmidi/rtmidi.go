package rtmidi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goodsheperd/shepherd/midi"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

var _ midi.Context = (*Context)(nil)

// Context is a midi.Context using the RtMidi driver.
type Context struct {
	driver *rtmididrv.Driver
	opened []interface{ Close() error }
}

// NewContext opens the driver. If that fails, the context is still usable
// but has no ports.
func NewContext() *Context {
	c := &Context{}
	// there's not much we can do if this fails, so just use c.driver = nil
	// to indicate no driver available
	c.driver, _ = rtmididrv.New()
	return c
}

func (c *Context) Listen(prefix string, fn func(msg gomidi.Message, timestampms int32)) (func(), error) {
	if c.driver == nil {
		return nil, errors.New("no MIDI driver available")
	}
	ins, err := c.driver.Ins()
	if err != nil {
		return nil, fmt.Errorf("could not list MIDI inputs: %w", err)
	}
	in, ok := findByPrefix(ins, prefix)
	if !ok {
		return nil, fmt.Errorf("no MIDI input found with prefix %q", prefix)
	}
	if err := in.Open(); err != nil {
		return nil, fmt.Errorf("opening MIDI input failed: %w", err)
	}
	c.opened = append(c.opened, in)
	stop, err := gomidi.ListenTo(in, fn)
	if err != nil {
		in.Close()
		return nil, fmt.Errorf("could not listen to %v: %w", in, err)
	}
	return stop, nil
}

func (c *Context) Sender(prefix string) (func(msg gomidi.Message) error, error) {
	if c.driver == nil {
		return nil, errors.New("no MIDI driver available")
	}
	outs, err := c.driver.Outs()
	if err != nil {
		return nil, fmt.Errorf("could not list MIDI outputs: %w", err)
	}
	out, ok := findByPrefix(outs, prefix)
	if !ok {
		return nil, fmt.Errorf("no MIDI output found with prefix %q", prefix)
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("opening MIDI output failed: %w", err)
	}
	c.opened = append(c.opened, out)
	return send, nil
}

func (c *Context) Inputs() []string {
	if c.driver == nil {
		return nil
	}
	ins, _ := c.driver.Ins()
	return names(ins)
}

func (c *Context) Outputs() []string {
	if c.driver == nil {
		return nil
	}
	outs, _ := c.driver.Outs()
	return names(outs)
}

func (c *Context) Close() {
	if c.driver == nil {
		return
	}
	for _, p := range c.opened {
		p.Close()
	}
	c.opened = nil
	c.driver.Close()
}

func (c *Context) Support() midi.Support {
	if c.driver == nil {
		return midi.SupportNoDriver
	}
	return midi.Supported
}

func findByPrefix[T drivers.Port](ports []T, prefix string) (T, bool) {
	for _, p := range ports {
		if strings.HasPrefix(p.String(), prefix) {
			return p, true
		}
	}
	var zero T
	return zero, false
}

func names[T drivers.Port](ports []T) []string {
	ret := make([]string, len(ports))
	for i, p := range ports {
		ret[i] = p.String()
	}
	return ret
}
