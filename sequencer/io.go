package sequencer

import "github.com/goodsheperd/shepherd"

type (
	// Inputs are the control levels fed to the sequencer on every sample,
	// nominally in volts. Buttons are edge triggered: a level reaching 1 after
	// having been at or below 0.1 counts as a press.
	Inputs struct {
		Tempo   float32 // clock rate exponent, the internal clock runs at 2^(Tempo+TempoCV) Hz
		TempoCV float32

		ExtClock          float32
		ExtClockConnected bool // selects the external clock instead of the internal one

		Run       float32
		Reset     float32
		ResetCV   float32
		NudgeMode float32

		Steps      [shepherd.NumSteps]float32
		Start      [shepherd.NumRows]float32 // window boundaries, truncated to columns
		End        [shepherd.NumRows]float32
		NudgeLeft  [shepherd.NumRows]float32
		NudgeRight [shepherd.NumRows]float32
		Mute       [shepherd.NumRows]float32
	}

	// Outputs are written by the sequencer on every sample.
	Outputs struct {
		Gates      [shepherd.NumRows]float32 // 0 or shepherd.GateHigh
		Positions  [shepherd.NumRows]int
		StepLights [shepherd.NumSteps]float32 // 1 for active cells, 0.5 under a cursor, 0 otherwise
		Tick       bool                       // the clock ticked on this sample
		Window     bool                       // the clock is in the gate window
		Running    bool
		ResetLight bool
	}

	ButtonKind int

	// Button identifies one momentary control of Inputs. Row is used by the
	// per-row buttons, Col only by StepButton.
	Button struct {
		Kind ButtonKind
		Row  int
		Col  int
	}
)

const (
	RunButton ButtonKind = iota
	ResetButton
	NudgeModeButton
	StepButton
	NudgeLeftButton
	NudgeRightButton
	MuteButton
)

// DefaultInputs returns inputs with all buttons released, a tempo of 2^2 Hz
// and every row window spanning the full row.
func DefaultInputs() Inputs {
	in := Inputs{Tempo: 2}
	for i := range in.End {
		in.End[i] = shepherd.NumColumns - 1
	}
	return in
}

// SetWindow sets the boundaries of a row.
func (in *Inputs) SetWindow(row, start, end int) {
	row = shepherd.ClampRow(row)
	in.Start[row] = float32(start)
	in.End[row] = float32(end)
}

// Set sets the level of the input a button is wired to.
func (in *Inputs) Set(b Button, level float32) {
	row := shepherd.ClampRow(b.Row)
	switch b.Kind {
	case RunButton:
		in.Run = level
	case ResetButton:
		in.Reset = level
	case NudgeModeButton:
		in.NudgeMode = level
	case StepButton:
		in.Steps[shepherd.StepIndex(row, shepherd.ClampColumn(b.Col))] = level
	case NudgeLeftButton:
		in.NudgeLeft[row] = level
	case NudgeRightButton:
		in.NudgeRight[row] = level
	case MuteButton:
		in.Mute[row] = level
	}
}

func (k ButtonKind) String() string {
	switch k {
	case RunButton:
		return "run"
	case ResetButton:
		return "reset"
	case NudgeModeButton:
		return "nudge mode"
	case StepButton:
		return "step"
	case NudgeLeftButton:
		return "nudge left"
	case NudgeRightButton:
		return "nudge right"
	case MuteButton:
		return "mute"
	}
	return "unknown"
}
