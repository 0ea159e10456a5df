package dsp

// Random is a tiny multiplicative congruential generator. It is deterministic
// for a given seed so that renders are reproducible. The zero value is not
// usable, use NewRandom.
type Random struct {
	seed uint32
}

func NewRandom(seed uint32) Random {
	return Random{seed: seed | 1} // even seeds would collapse to zero
}

// Bipolar returns a value in [-1, 1].
func (r *Random) Bipolar() float32 {
	r.seed *= 16007
	return float32(int32(r.seed)) / -2147483648.0
}

// Uniform returns a value in [0, 1].
func (r *Random) Uniform() float32 {
	return (r.Bipolar() + 1) * 0.5
}
