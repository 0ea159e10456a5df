package rack

import (
	"sync"

	"github.com/goodsheperd/shepherd"
	"github.com/goodsheperd/shepherd/config"
	"github.com/goodsheperd/shepherd/dsp"
	"github.com/goodsheperd/shepherd/sequencer"
	"github.com/goodsheperd/shepherd/units"
)

type (
	// Rack is the host side of a sequencer: it feeds the sequencer with
	// blocks of clock and reset levels, turns button presses into one sample
	// pulses, passes the gates through per row probability gates and
	// publishes the gate edges as events.
	//
	// All methods are safe to call from different goroutines; they are
	// serialized with a mutex, so a snapshot never sees a half processed
	// sample.
	Rack struct {
		// Events receives the gate and note edges. The channel is never
		// blocked on: when it is full, events are dropped.
		Events chan Event

		mu         sync.Mutex
		seq        *sequencer.Sequencer
		transport  *units.Seqtrol // nil unless configured; only used with an external clock
		melody     *melody        // nil unless configured
		hurdles    [shepherd.NumRows]units.Hurdle
		in         sequencer.Inputs
		out        sequencer.Outputs
		sampleTime float32
		sampleRate int
		extClock   bool
		prob       [shepherd.NumRows]float32
		gates      [shepherd.NumRows]bool
		frame      int64

		pending    [maxPending]press
		numPending int
		held       [maxPending]press
		numHeld    int
		controls   [numControls]float32
	}

	// Button is a momentary control of the sequencer.
	Button = sequencer.Button

	// Control is a momentary control of the units around the sequencer.
	Control int

	EventKind int

	// Event is a gate or note edge. Frame counts the samples processed by the
	// rack since it was created.
	Event struct {
		Kind  EventKind
		Row   int // GateOn and GateOff
		Note  int // NoteOn and NoteOff, in semitones relative to 0 V
		Frame int64
	}

	// Display is a copy of the state of the rack for drawing.
	Display struct {
		Outputs       sequencer.Outputs
		Grid          sequencer.Grid
		Rows          [shepherd.NumRows]sequencer.RowCursor
		Gates         [shepherd.NumRows]bool // after the probability gates
		Probabilities [shepherd.NumRows]float32
		NudgeMode     sequencer.NudgeMode
		Tempo         float32
		Frame         int64

		HasTransport     bool
		TransportRunning bool
		Divisor          int

		HasMelody    bool
		MelodyIndex  int
		MelodySteps  int
		MelodyNote   int
		MelodyGate   bool
		MelodySwitch int
	}

	press struct {
		button    Button
		control   Control
		isControl bool
	}

	melody struct {
		seq3    units.SEQ3
		sw      units.Switch
		stall   units.Stall
		in      units.SEQ3Inputs
		out     units.SEQ3Outputs
		swIn    units.SwitchInputs
		note    int
		playing bool
	}
)

const (
	TransportStart Control = iota
	TransportContinue
	TransportStop
	MelodyA
	MelodyB
	numControls
)

const (
	GateOn EventKind = iota
	GateOff
	NoteOn
	NoteOff
)

const maxPending = 64

// New returns a rack set up from the config.
func New(cfg *config.Config) *Rack {
	r := &Rack{
		Events:     make(chan Event, 1024),
		seq:        sequencer.New(),
		in:         sequencer.DefaultInputs(),
		sampleTime: 1 / float32(cfg.SampleRate),
		sampleRate: cfg.SampleRate,
		extClock:   cfg.ExternalClock,
	}
	r.in.Tempo = cfg.Tempo
	for row := range r.hurdles {
		rc := cfg.Row(row)
		r.in.SetWindow(row, rc.Start, rc.End)
		r.seq.Rows[row].Position = shepherd.ClampColumn(rc.Start)
		r.prob[row] = rc.Probability
		r.hurdles[row] = units.NewHurdle(cfg.Seed + uint32(row))
	}
	if cfg.Transport.Enabled {
		r.transport = &units.Seqtrol{}
		r.transport.Divider.Index = dsp.ClampDivisor(cfg.Transport.Divisor)
	}
	if cfg.Melody.Enabled {
		m := &melody{
			seq3: units.NewSEQ3(cfg.Seed + shepherd.NumRows),
			in:   units.DefaultSEQ3Inputs(),
		}
		m.in.Steps = float32(cfg.Melody.Steps)
		m.in.Shape = cfg.Melody.Shape
		m.in.ExtClockConnected = true
		for row := 0; row < units.SEQ3Rows && row < len(cfg.Melody.Rows); row++ {
			copy(m.in.Rows[row][:], cfg.Melody.Rows[row])
		}
		r.melody = m
	}
	return r
}

// Process runs the rack for len(frames) samples and writes the gates of
// every row into frames. clock and reset are the external clock and reset
// levels; a nil slice means the input is not connected. The clock is also
// ignored if the config disables the external clock. Non-nil slices must be
// at least as long as frames.
func (r *Rack) Process(frames shepherd.GateBuffer, clock, reset []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.extClock {
		clock = nil
	}
	for i := range frames {
		r.updatePresses()
		r.in.ExtClockConnected = clock != nil
		r.in.ExtClock, r.in.ResetCV = 0, 0
		if clock != nil {
			r.in.ExtClock = clock[i]
			if r.transport != nil {
				var transportReset float32
				transportReset, r.in.ExtClock = r.transport.Process(units.SeqtrolInputs{
					Start:    r.controls[TransportStart],
					Continue: r.controls[TransportContinue],
					Stop:     r.controls[TransportStop],
					Clock:    clock[i],
				})
				r.in.ResetCV = transportReset
			}
		}
		if reset != nil {
			r.in.ResetCV += reset[i]
		}
		r.seq.Process(&r.in, &r.out, r.sampleTime)
		for row := range frames[i] {
			level := r.hurdles[row].Process(r.prob[row], r.out.Gates[row])
			frames[i][row] = level
			if high := level > 0; high != r.gates[row] {
				r.gates[row] = high
				kind := GateOff
				if high {
					kind = GateOn
				}
				TrySend(r.Events, Event{Kind: kind, Row: row, Frame: r.frame})
			}
		}
		if r.melody != nil {
			r.processMelody()
		}
		r.frame++
	}
}

func (r *Rack) processMelody() {
	m := r.melody
	m.in.ExtClock = 0
	if r.out.Window && r.out.Running {
		m.in.ExtClock = shepherd.GateHigh
	}
	m.seq3.Process(&m.in, &m.out, r.sampleTime)
	m.swIn.A, m.swIn.B = m.out.Rows[0], m.out.Rows[1]
	m.swIn.TriggerA[0] = r.controls[MelodyA]
	m.swIn.TriggerB[0] = r.controls[MelodyB]
	// row values are semitones; the offset centers the CV in its bin
	cv := (round(m.sw.Process(&m.swIn)) + 0.5) / 12
	m.stall.Process(cv, m.out.Gate, true)
	playing := m.out.Gate > 0
	if playing == m.playing {
		return
	}
	m.playing = playing
	if playing {
		m.note = units.StallNote(cv) - 25
		TrySend(r.Events, Event{Kind: NoteOn, Note: m.note, Frame: r.frame})
		return
	}
	TrySend(r.Events, Event{Kind: NoteOff, Note: m.note, Frame: r.frame})
}

// updatePresses releases the buttons held during the previous sample, or if
// none were held, pushes the pending presses. A button pressed several times
// is pushed again only after it has been released. Nothing is pushed on the
// very first sample, as the edge detectors only learn the initial levels
// there.
func (r *Rack) updatePresses() {
	if r.numHeld > 0 {
		for _, p := range r.held[:r.numHeld] {
			r.setLevel(p, 0)
		}
		r.numHeld = 0
		return
	}
	if r.frame == 0 {
		return
	}
	n := 0
F:
	for ; n < r.numPending; n++ {
		p := r.pending[n]
		// a button already pushed in this batch waits for the next one
		for _, h := range r.held[:r.numHeld] {
			if h == p {
				break F
			}
		}
		r.setLevel(p, shepherd.GateHigh)
		r.held[r.numHeld] = p
		r.numHeld++
	}
	copy(r.pending[:], r.pending[n:r.numPending])
	r.numPending -= n
}

func (r *Rack) setLevel(p press, level float32) {
	if p.isControl {
		r.controls[p.control] = level
		return
	}
	r.in.Set(p.button, level)
}

func (r *Rack) enqueue(p press) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.numPending >= maxPending {
		return false
	}
	r.pending[r.numPending] = p
	r.numPending++
	return true
}

// Press queues a one sample press of a sequencer button. It returns false if
// too many presses are already waiting.
func (r *Rack) Press(b Button) bool {
	return r.enqueue(press{button: b})
}

// Trigger queues a one sample pulse on a transport or melody control.
func (r *Rack) Trigger(c Control) bool {
	if c < 0 || c >= numControls {
		return false
	}
	return r.enqueue(press{control: c, isControl: true})
}

// Start queues a press of the run button unless the sequencer is already
// running or such a press is already waiting. It returns whether the
// sequencer will be running once the queue has been processed.
func (r *Rack) Start() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	run := press{button: Button{Kind: sequencer.RunButton}}
	queued := 0
	for _, p := range r.pending[:r.numPending] {
		if p == run {
			queued++
		}
	}
	if r.seq.Running != (queued%2 == 0) {
		return true
	}
	if r.numPending >= maxPending {
		return false
	}
	r.pending[r.numPending] = run
	r.numPending++
	return true
}

// Running reports whether the sequencer is running.
func (r *Rack) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq.Running
}

func (r *Rack) SetTempo(tempo float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.in.Tempo = tempo
}

func (r *Rack) Tempo() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.in.Tempo
}

// SetWindow moves the start and end knobs of a row.
func (r *Rack) SetWindow(row, start, end int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row = shepherd.ClampRow(row)
	start, end = shepherd.ClampColumn(start), shepherd.ClampColumn(end)
	r.in.SetWindow(row, start, end)
	// the sequencer reads the knobs on the next sample; set the cursor now
	// so that Display shows the new window right away
	r.seq.Rows[row].Start, r.seq.Rows[row].End = start, end
}

// SetProbability sets the probability of the gates of a row passing, in
// volts: 0 never, 10 always.
func (r *Rack) SetProbability(row int, probability float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prob[shepherd.ClampRow(row)] = probability
}

// SetDivisor selects the clock divider ratio of the transport. It does
// nothing if the rack has no transport.
func (r *Rack) SetDivisor(index int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.transport != nil {
		r.transport.Divider.Index = dsp.ClampDivisor(index)
	}
}

func (r *Rack) Display() Display {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := Display{
		Outputs:       r.out,
		Grid:          r.seq.Grid,
		Rows:          r.seq.Rows,
		Gates:         r.gates,
		Probabilities: r.prob,
		NudgeMode:     r.seq.NudgeMode,
		Tempo:         r.in.Tempo,
		Frame:         r.frame,
	}
	if r.frame == 0 {
		d.Outputs.Running = r.seq.Running
	}
	if r.transport != nil {
		d.HasTransport = true
		d.TransportRunning = r.transport.Running
		d.Divisor = dsp.ClampDivisor(r.transport.Divider.Index)
	}
	if m := r.melody; m != nil {
		d.HasMelody = true
		d.MelodyIndex = m.seq3.Index
		d.MelodySteps = int(m.in.Steps)
		d.MelodyNote = m.note
		d.MelodyGate = m.playing
		d.MelodySwitch = m.sw.Position
	}
	return d
}

// Snapshot returns the persisted state of the sequencer and of the units
// around it.
func (r *Rack) Snapshot() shepherd.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.seq.Snapshot()
	if r.transport != nil {
		s.Transport = r.transport.Snapshot()
	}
	if r.melody != nil {
		s.Melody = r.melody.seq3.Snapshot()
		s.Melody.SwitchPosition = r.melody.sw.Snapshot()
	}
	return s
}

// Restore applies a snapshot. The states of units the rack does not have
// are ignored.
func (r *Rack) Restore(s shepherd.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq.Restore(s)
	if r.transport != nil {
		r.transport.Restore(s.Transport)
	}
	if r.melody != nil {
		r.melody.seq3.Restore(s.Melody)
		r.melody.sw.Restore(s.Melody.SwitchPosition)
	}
}

// TrySend is a helper function to send a value to a channel if it is not full.
// It is guaranteed to be non-blocking. Return true if the value was sent, false
// otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

func round(v float32) float32 {
	if v < 0 {
		return float32(int(v - 0.5))
	}
	return float32(int(v + 0.5))
}
