package units

import (
	"math"

	"github.com/goodsheperd/shepherd"
	"github.com/goodsheperd/shepherd/dsp"
)

type (
	// Switch passes one of two inputs. A trigger on either of the A inputs
	// selects A, a trigger on either of the B inputs selects B; A wins if both
	// fire on the same sample.
	Switch struct {
		Position int // 0 for A, 1 for B

		triggerA dsp.SchmittTrigger
		triggerB dsp.SchmittTrigger
	}

	SwitchInputs struct {
		TriggerA [2]float32
		TriggerB [2]float32
		A, B     float32
	}
)

func (s *Switch) Process(in *SwitchInputs) float32 {
	if s.triggerB.Process(triggerLevel(abs(in.TriggerB[0]) + abs(in.TriggerB[1]))) {
		s.Position = 1
	}
	if s.triggerA.Process(triggerLevel(abs(in.TriggerA[0]) + abs(in.TriggerA[1]))) {
		s.Position = 0
	}
	if s.Position == 1 {
		return in.B
	}
	return in.A
}

func (s *Switch) Snapshot() shepherd.Optional[int] {
	return shepherd.Some(s.Position)
}

// Restore sets the position; anything but 1 selects A.
func (s *Switch) Restore(position shepherd.Optional[int]) {
	if v, ok := position.Unpack(); ok {
		s.Position = 0
		if v == 1 {
			s.Position = 1
		}
	}
}

func abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
