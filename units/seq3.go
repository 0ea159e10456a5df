package units

import (
	"math"

	"github.com/goodsheperd/shepherd"
	"github.com/goodsheperd/shepherd/dsp"
)

const (
	SEQ3Rows  = 3
	SEQ3Steps = 8
)

type (
	// SEQ3 is a three row, eight step CV sequencer. Each row also has a gate
	// that opens on a step when the row's value beats a random draw, so that
	// higher values play more often. Shape skews the distribution of the
	// draws.
	SEQ3 struct {
		Running bool
		Gates   [SEQ3Steps]bool
		Index   int
		Clock   dsp.Clock
		Random  dsp.Random

		rowOpen      [SEQ3Rows]bool
		runTrigger   dsp.SchmittTrigger
		resetTrigger dsp.SchmittTrigger
		gateTriggers [SEQ3Steps]dsp.SchmittTrigger
	}

	SEQ3Inputs struct {
		Tempo, TempoCV    float32
		ExtClock          float32
		ExtClockConnected bool
		Run               float32
		Reset, ResetCV    float32
		Steps, StepsCV    float32 // number of steps, rounded and clamped to 1..8
		Shape, ShapeCV    float32 // -5..5, 0 is uniform
		Rows              [SEQ3Rows][SEQ3Steps]float32
		GateButtons       [SEQ3Steps]float32
	}

	SEQ3Outputs struct {
		Rows      [SEQ3Rows]float32 // value of the current step of each row
		RowGates  [SEQ3Rows]float32
		StepGates [SEQ3Steps]float32
		Gate      float32 // gate of the current step
		Window    bool
	}
)

// NewSEQ3 returns a running sequencer with every step gate on.
func NewSEQ3(seed uint32) SEQ3 {
	s := SEQ3{Running: true, Random: dsp.NewRandom(seed)}
	for i := range s.Gates {
		s.Gates[i] = true
	}
	return s
}

// DefaultSEQ3Inputs returns inputs with all eight steps and the default
// tempo.
func DefaultSEQ3Inputs() SEQ3Inputs {
	return SEQ3Inputs{Tempo: 2, Steps: SEQ3Steps}
}

func (s *SEQ3) Process(in *SEQ3Inputs, out *SEQ3Outputs, sampleTime float32) {
	if s.runTrigger.Process(in.Run) {
		s.Running = !s.Running
	}
	window := false
	rowGates := s.rowOpen
	if s.Running {
		var tick bool
		tick, window = s.Clock.Process(in.ExtClock, in.ExtClockConnected, in.Tempo+in.TempoCV, sampleTime)
		if tick {
			s.setIndex(in, s.Index+1)
			shape := in.Shape + in.ShapeCV
			for row := range rowGates {
				if in.Rows[row][s.Index] >= s.shapedRandom(shape) {
					rowGates[row] = true
				}
			}
		}
	}
	if !window {
		rowGates = [SEQ3Rows]bool{}
	}
	s.rowOpen = rowGates
	if s.resetTrigger.Process(in.Reset + in.ResetCV) {
		s.setIndex(in, 0)
	}
	for i := range s.Gates {
		if s.gateTriggers[i].Process(in.GateButtons[i]) {
			s.Gates[i] = !s.Gates[i]
		}
		out.StepGates[i] = gateLevel(s.Running && window && i == s.Index && s.Gates[i])
	}
	for row := range out.Rows {
		out.Rows[row] = in.Rows[row][s.Index]
		out.RowGates[row] = gateLevel(rowGates[row])
	}
	out.Gate = gateLevel(window && s.Gates[s.Index])
	out.Window = window
}

func (s *SEQ3) setIndex(in *SEQ3Inputs, index int) {
	steps := int(clampf(round(in.Steps+in.StepsCV), 1, SEQ3Steps))
	s.Clock.Reset()
	s.Index = index
	if s.Index >= steps || s.Index < 0 {
		s.Index = 0
	}
}

// shapedRandom returns a random value in 0..10. Negative shapes pull the
// values towards the ends of the range, positive towards the middle.
func (s *SEQ3) shapedRandom(shapeValue float32) float32 {
	shape := clampf(round(shapeValue), -5, 5) * .2 * .99
	a := 4 * shape / ((1 - shape) * (1 + shape))
	b := (1 - shape) / (1 + shape)
	raw := s.Random.Uniform()*2 - 1
	shaped := raw * (a + b) / (abs(raw)*a + b)
	return (shaped + 1) * 5
}

func (s *SEQ3) Snapshot() shepherd.MelodyState {
	ret := shepherd.MelodyState{
		Running: shepherd.Some(s.Running),
		Gates:   make(shepherd.Optionals[bool], len(s.Gates)),
	}
	for i, g := range s.Gates {
		ret.Gates[i] = shepherd.Some(g)
	}
	return ret
}

// Restore applies the running flag and step gates of the state. The switch
// position is restored by the owner of the switch.
func (s *SEQ3) Restore(state shepherd.MelodyState) {
	if v, ok := state.Running.Unpack(); ok {
		s.Running = v
	}
	for i, o := range state.Gates {
		if i >= len(s.Gates) {
			break
		}
		if v, ok := o.Unpack(); ok {
			s.Gates[i] = v
		}
	}
}

func gateLevel(b bool) float32 {
	if b {
		return shepherd.GateHigh
	}
	return 0
}

func round(v float32) float32 {
	return float32(math.Round(float64(v)))
}
