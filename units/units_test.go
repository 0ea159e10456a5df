package units_test

import (
	"testing"

	"github.com/goodsheperd/shepherd"
	"github.com/goodsheperd/shepherd/units"
)

func TestHurdleExtremes(t *testing.T) {
	always, never := units.NewHurdle(1), units.NewHurdle(1)
	for period := 0; period < 50; period++ {
		for i, level := range []float32{10, 10, 0} {
			a, n := always.Process(10, level), never.Process(-3, level)
			if level > 0 && a != shepherd.GateHigh {
				t.Fatalf("period %v sample %v: probability 10 should always pass, got %v", period, i, a)
			}
			if level == 0 && a != 0 {
				t.Fatalf("period %v: gate should close with the input", period)
			}
			if n != 0 {
				t.Fatalf("period %v: probability 0 should never pass", period)
			}
		}
	}
}

func TestHurdleDecidesOncePerGate(t *testing.T) {
	h := units.NewHurdle(7)
	opened, periods := 0, 1000
	for period := 0; period < periods; period++ {
		first := h.Process(5, 10)
		for i := 0; i < 5; i++ {
			if h.Process(5, 10) != first {
				t.Fatalf("period %v: output changed while the gate was held", period)
			}
		}
		if first > 0 {
			opened++
		}
		h.Process(5, 0)
	}
	if opened < periods/4 || opened > periods*3/4 {
		t.Fatalf("probability 5 opened %v of %v gates", opened, periods)
	}
}

func TestSeqtrolStartWaitsForClock(t *testing.T) {
	var s units.Seqtrol
	s.Process(units.SeqtrolInputs{})
	reset, clock := s.Process(units.SeqtrolInputs{Start: 10})
	if reset != 0 || clock != 0 {
		t.Fatalf("start with a low clock: reset %v clock %v, expected 0 0", reset, clock)
	}
	if !s.Running {
		t.Fatal("start should run the transport")
	}
	reset, clock = s.Process(units.SeqtrolInputs{Clock: 10})
	if reset != 10 || clock != 10 {
		t.Fatalf("first clock after start: reset %v clock %v, expected 10 10", reset, clock)
	}
	reset, _ = s.Process(units.SeqtrolInputs{Clock: 10})
	if reset != 0 {
		t.Fatalf("reset should last only one sample, got %v", reset)
	}
	s.Process(units.SeqtrolInputs{Stop: 10})
	if s.Running {
		t.Fatal("stop should halt the transport")
	}
	if _, clock = s.Process(units.SeqtrolInputs{Clock: 10}); clock != 0 {
		t.Fatalf("stopped transport passed the clock: %v", clock)
	}
	s.Process(units.SeqtrolInputs{})
	s.Process(units.SeqtrolInputs{Continue: 10})
	if !s.Running {
		t.Fatal("continue should run the transport")
	}
}

func TestSeqtrolDividesClock(t *testing.T) {
	var s units.Seqtrol
	s.Divider.Index = 7 // 2:1
	s.Process(units.SeqtrolInputs{})
	s.Process(units.SeqtrolInputs{Continue: 10})
	passed := 0
	for i := 0; i < 8; i++ {
		if _, clock := s.Process(units.SeqtrolInputs{Clock: 10}); clock > 0 {
			passed++
		}
		s.Process(units.SeqtrolInputs{})
	}
	if passed != 4 {
		t.Fatalf("2:1 divider passed %v of 8 clocks", passed)
	}
	state := s.Snapshot()
	var restored units.Seqtrol
	restored.Restore(state)
	if restored.Divider.Index != 7 || restored.Divider.Counter != s.Divider.Counter {
		t.Fatalf("divider not restored: index %v counter %v", restored.Divider.Index, restored.Divider.Counter)
	}
}

func TestSwitch(t *testing.T) {
	var s units.Switch
	in := units.SwitchInputs{A: 1, B: 2}
	if got := s.Process(&in); got != 1 {
		t.Fatalf("switch should start on A, got %v", got)
	}
	in.TriggerB[1] = -5
	if got := s.Process(&in); got != 2 {
		t.Fatalf("negative trigger on B should select B, got %v", got)
	}
	in.TriggerB[1] = 0
	s.Process(&in)
	in.TriggerA[0], in.TriggerB[0] = 5, 5
	if got := s.Process(&in); got != 1 {
		t.Fatalf("simultaneous triggers should select A, got %v", got)
	}
	s.Restore(shepherd.Some(1))
	if s.Position != 1 {
		t.Fatalf("restore did not select B")
	}
	s.Restore(shepherd.Some(42))
	if s.Position != 0 {
		t.Fatalf("invalid position should select A")
	}
}

func TestSEQ3StepsAndRows(t *testing.T) {
	s := units.NewSEQ3(1)
	in := units.DefaultSEQ3Inputs()
	in.ExtClockConnected = true
	in.Steps = 3
	for i := 0; i < units.SEQ3Steps; i++ {
		in.Rows[0][i] = float32(i)
		in.Rows[1][i] = 10 // beats every draw
	}
	var out units.SEQ3Outputs
	s.Process(&in, &out, 1.0/44100)
	for _, expected := range []int{1, 2, 0, 1} {
		in.ExtClock = 10
		s.Process(&in, &out, 1.0/44100)
		if s.Index != expected {
			t.Fatalf("index %v, expected %v", s.Index, expected)
		}
		if out.Rows[0] != float32(expected) {
			t.Fatalf("row 0 output %v, expected %v", out.Rows[0], expected)
		}
		if out.RowGates[1] != shepherd.GateHigh {
			t.Fatal("row with value 10 should always open its gate")
		}
		if out.StepGates[expected] != shepherd.GateHigh || out.Gate != shepherd.GateHigh {
			t.Fatalf("step gate %v should be open", expected)
		}
		in.ExtClock = 0
		s.Process(&in, &out, 1.0/44100)
		if out.RowGates[1] != 0 || out.Gate != 0 {
			t.Fatal("gates should close with the clock")
		}
	}
	in.GateButtons[1] = 10
	s.Process(&in, &out, 1.0/44100)
	if s.Gates[1] {
		t.Fatal("gate button should toggle the step gate off")
	}
	in.Reset = 10
	s.Process(&in, &out, 1.0/44100)
	if s.Index != 0 {
		t.Fatalf("reset should rewind to step 0, got %v", s.Index)
	}
	restored := units.NewSEQ3(1)
	restored.Restore(s.Snapshot())
	if restored.Gates != s.Gates || restored.Running != s.Running {
		t.Fatal("snapshot round trip lost the step gates")
	}
}

func TestStallRoutesGate(t *testing.T) {
	var s units.Stall
	s.Process(0, 10, true)
	if s.Gates[25] != 10 {
		t.Fatalf("0 V should route to output 25, got note %v", units.StallNote(0))
	}
	s.Process(1.0/12+0.001, 7, true)
	if s.Gates[26] != 7 || s.Gates[25] != 0 {
		t.Fatal("one semitone up should route to output 26 only")
	}
	s.Process(100, 10, true)
	if s.Gates[0] != 10 {
		t.Fatal("out of range CV should route to output 0")
	}
	s.Process(0, 10, false)
	for i, g := range s.Gates {
		if g != 0 {
			t.Fatalf("disconnected stall routed to %v", i)
		}
	}
}
