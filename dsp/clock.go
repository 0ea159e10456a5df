package dsp

import "math"

// Clock produces ticks and a gate window either from an external pulse train
// or from an internal phase accumulator running at 2^tempo Hz.
type Clock struct {
	Phase    float32 // internal phase, in [0, 1)
	external SchmittTrigger
}

// Process advances the clock by one sample. With extConnected, ticks are the
// rising edges of ext and the window is its latched level; otherwise the phase
// advances by 2^tempo * sampleTime and the window is the first half of each
// period. Every tick zeroes the phase.
func (c *Clock) Process(ext float32, extConnected bool, tempo, sampleTime float32) (tick, window bool) {
	if extConnected {
		tick = c.external.Process(ext)
		window = c.external.IsHigh()
		if tick {
			c.Phase = 0
		}
		return tick, window
	}
	rate := Rate(tempo)
	// the explicit conversion keeps the product rounded to float32, so the
	// compiler cannot fuse it into the addition
	c.Phase += float32(rate * sampleTime)
	if c.Phase >= 1 {
		tick = true
		c.Phase = 0
	}
	return tick, c.Phase < 0.5
}

// Reset zeroes the phase. The external edge detector keeps its level so that
// a clock that is already high does not tick again.
func (c *Clock) Reset() {
	c.Phase = 0
}

// Rate returns the frequency of the internal clock in Hz for a tempo.
func Rate(tempo float32) float32 {
	return float32(math.Exp2(float64(tempo)))
}
