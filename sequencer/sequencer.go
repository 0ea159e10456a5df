package sequencer

import (
	"github.com/goodsheperd/shepherd"
	"github.com/goodsheperd/shepherd/dsp"
)

type (
	// Sequencer is an 8 row by 16 column gate sequencer. Every row has its own
	// play head and window; all rows share the clock.
	//
	// Process is meant to be called once per sample and never allocates.
	// Snapshot and Restore must not be called concurrently with Process; the
	// owner has to serialize them.
	Sequencer struct {
		Grid      Grid
		Rows      [shepherd.NumRows]RowCursor
		Running   bool
		NudgeMode NudgeMode
		Clock     dsp.Clock

		runTrigger       dsp.SchmittTrigger
		resetTrigger     dsp.SchmittTrigger
		nudgeModeTrigger dsp.SchmittTrigger
		stepTriggers     [shepherd.NumSteps]dsp.SchmittTrigger
		nudgeLeft        [shepherd.NumRows]dsp.SchmittTrigger
		nudgeRight       [shepherd.NumRows]dsp.SchmittTrigger
		muteTriggers     [shepherd.NumRows]dsp.SchmittTrigger
	}

	// NudgeMode selects the cells a nudge rotates.
	NudgeMode int
)

const (
	// NudgeWindow rotates only the cells between the row's start and end.
	NudgeWindow NudgeMode = iota
	// NudgeFullRow rotates all the cells of the row.
	NudgeFullRow
)

func (m NudgeMode) String() string {
	if m == NudgeFullRow {
		return "full row"
	}
	return "window"
}

// New returns a running sequencer with an empty grid and every row spanning
// the full width.
func New() *Sequencer {
	s := &Sequencer{Running: true}
	for i := range s.Rows {
		s.Rows[i] = NewRowCursor()
	}
	return s
}

// Process runs the sequencer for one sample.
func (s *Sequencer) Process(in *Inputs, out *Outputs, sampleTime float32) {
	if s.runTrigger.Process(in.Run) {
		s.Running = !s.Running
	}
	for row := range s.Rows {
		s.Rows[row].Start = int(in.Start[row])
		s.Rows[row].End = int(in.End[row])
	}
	var tick, window bool
	if s.Running {
		tick, window = s.Clock.Process(in.ExtClock, in.ExtClockConnected, in.Tempo+in.TempoCV, sampleTime)
		if tick {
			for row := range s.Rows {
				s.Rows[row].Advance()
			}
		}
	}
	if s.resetTrigger.Process(in.Reset + in.ResetCV) {
		s.Rewind()
	}
	for row := range s.Rows {
		if s.nudgeLeft[row].Process(in.NudgeLeft[row]) {
			first, last := s.nudgeWindow(row)
			s.Grid.RotateLeft(row, first, last)
		}
		if s.nudgeRight[row].Process(in.NudgeRight[row]) {
			first, last := s.nudgeWindow(row)
			s.Grid.RotateRight(row, first, last)
		}
	}
	for i := range s.stepTriggers {
		if s.stepTriggers[i].Process(in.Steps[i]) {
			s.Grid[i] = !s.Grid[i]
		}
	}
	for row := range s.Rows {
		if s.muteTriggers[row].Process(in.Mute[row]) {
			s.Rows[row].Muted = !s.Rows[row].Muted
		}
	}
	if s.nudgeModeTrigger.Process(in.NudgeMode) {
		if s.NudgeMode == NudgeWindow {
			s.NudgeMode = NudgeFullRow
		} else {
			s.NudgeMode = NudgeWindow
		}
	}
	s.compose(out, tick, window)
}

// Rewind moves every row to the start of its window and restarts the
// internal clock period.
func (s *Sequencer) Rewind() {
	for row := range s.Rows {
		s.Rows[row].Rewind()
	}
	s.Clock.Reset()
}

func (s *Sequencer) nudgeWindow(row int) (first, last int) {
	if s.NudgeMode == NudgeFullRow {
		return 0, shepherd.NumColumns - 1
	}
	return s.Rows[row].Window()
}

func (s *Sequencer) compose(out *Outputs, tick, window bool) {
	out.Tick = tick
	out.Window = window
	out.Running = s.Running
	out.ResetLight = s.resetTrigger.IsHigh()
	for i, active := range s.Grid {
		out.StepLights[i] = 0
		if active {
			out.StepLights[i] = 1
		}
	}
	for row := range s.Rows {
		c := &s.Rows[row]
		col := c.Column()
		out.Positions[row] = col
		out.StepLights[shepherd.StepIndex(row, col)] = 0.5
		out.Gates[row] = 0
		if s.Running && window && !c.Muted && s.Grid.StepAt(row, col) {
			out.Gates[row] = shepherd.GateHigh
		}
	}
}
