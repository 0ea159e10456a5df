package units

// StallNotes is the number of gate outputs of a Stall, four octaves of
// semitones.
const StallNotes = 48

// stallSteps are the lower bounds of the semitone bins, in volts per octave,
// starting 25 semitones below 0 V.
var stallSteps = func() (ret [StallNotes]float32) {
	const oneTwelfth float32 = 1.0 / 12.0
	for i := range ret {
		ret[i] = float32(i-25) * oneTwelfth
	}
	return
}()

// Stall routes a gate to one of StallNotes outputs chosen by a 1 V/octave
// pitch CV, e.g. to drive one drum voice per note.
type Stall struct {
	Gates [StallNotes]float32
}

// Process updates Gates. Nothing is routed unless both the CV and the gate
// are connected.
func (s *Stall) Process(cv, gate float32, connected bool) {
	s.Gates = [StallNotes]float32{}
	if connected {
		s.Gates[StallNote(cv)] = gate
	}
}

// StallNote returns the output a CV is routed to. CVs outside the range of
// the bins go to the first output.
func StallNote(cv float32) int {
	for i := 0; i < StallNotes-1; i++ {
		if stallSteps[i] <= cv && cv < stallSteps[i+1] {
			return i
		}
	}
	return 0
}
