package units

import (
	"github.com/goodsheperd/shepherd"
	"github.com/goodsheperd/shepherd/dsp"
)

type (
	// Seqtrol is a transport front end for a clocked sequencer. Start, continue
	// and stop triggers gate the clock, which is then divided. A start also
	// emits a reset pulse aligned with the first clock pulse after it.
	Seqtrol struct {
		Running bool
		Divider dsp.ClockDivider

		waiting         bool
		startTrigger    dsp.SchmittTrigger
		continueTrigger dsp.SchmittTrigger
		stopTrigger     dsp.SchmittTrigger
		clockTrigger    dsp.SchmittTrigger
	}

	SeqtrolInputs struct {
		Start    float32
		Continue float32
		Stop     float32
		Clock    float32
	}
)

// Process returns the reset and divided clock levels for one sample.
func (s *Seqtrol) Process(in SeqtrolInputs) (reset, clock float32) {
	started := s.startTrigger.Process(triggerLevel(in.Start))
	continued := s.continueTrigger.Process(triggerLevel(in.Continue))
	if started {
		s.Divider.Restart()
	}
	if started || continued {
		s.Running = true
	}
	if s.stopTrigger.Process(triggerLevel(in.Stop)) {
		s.Running = false
	}
	s.clockTrigger.Process(triggerLevel(in.Clock))
	if started || s.waiting {
		s.waiting = !s.clockTrigger.IsHigh()
		if !s.waiting {
			reset = in.Clock
		}
	}
	var gated float32
	if s.Running && !s.waiting {
		gated = in.Clock
	}
	return reset, s.Divider.Process(gated)
}

// Reset stops the transport and clears the divider.
func (s *Seqtrol) Reset() {
	*s = Seqtrol{}
}

func (s *Seqtrol) Snapshot() shepherd.TransportState {
	return shepherd.TransportState{
		DivisorIndex: shepherd.Some(s.Divider.Index),
		ClockCounter: shepherd.Some(s.Divider.Counter),
	}
}

func (s *Seqtrol) Restore(state shepherd.TransportState) {
	if v, ok := state.DivisorIndex.Unpack(); ok {
		s.Divider.Index = v
	}
	if v, ok := state.ClockCounter.Unpack(); ok {
		s.Divider.Counter = v
	}
}

// triggerLevel rescales a trigger input so that it is low below 0.1 V and
// high above 2 V.
func triggerLevel(v float32) float32 {
	return dsp.Rescale(v, 0.1, 2, 0, 1)
}
