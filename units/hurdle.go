package units

import (
	"github.com/goodsheperd/shepherd"
	"github.com/goodsheperd/shepherd/dsp"
)

// Hurdle lets a gate through with a given probability. The decision is made
// once, at the rising edge of the gate, and holds until the gate falls.
type Hurdle struct {
	Random  dsp.Random
	open    bool
	wasHigh bool
}

func NewHurdle(seed uint32) Hurdle {
	return Hurdle{Random: dsp.NewRandom(seed)}
}

// Process returns the output gate level. probability is in volts: 0 never
// opens, 10 always does.
func (h *Hurdle) Process(probability, gate float32) float32 {
	probability = clampf(probability, 0, 10)
	high := gate >= 1
	if h.open {
		h.open = high
	} else if high && !h.wasHigh && probability >= h.Random.Uniform()*10 {
		h.open = true
	}
	h.wasHigh = high
	if h.open {
		return shepherd.GateHigh
	}
	return 0
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
