package dsp_test

import (
	"testing"

	"github.com/goodsheperd/shepherd/dsp"
)

func TestSchmittTriggerFiresOncePerRisingEdge(t *testing.T) {
	var trig dsp.SchmittTrigger
	levels := []float32{0, 0.5, 1, 1, 10, 0.5, 1, 0.1, 0.9, 1.0, 0, 2}
	expected := []bool{false, false, true, false, false, false, false, false, false, true, false, true}
	for i, level := range levels {
		if got := trig.Process(level); got != expected[i] {
			t.Fatalf("sample %v (level %v): got %v, expected %v", i, level, got, expected[i])
		}
	}
}

func TestSchmittTriggerHysteresis(t *testing.T) {
	var trig dsp.SchmittTrigger
	trig.Process(0)
	trig.Process(1)
	if !trig.IsHigh() {
		t.Fatal("trigger should be high after reaching the high threshold")
	}
	trig.Process(0.5)
	if !trig.IsHigh() {
		t.Fatal("trigger should hold its level inside the hysteresis band")
	}
	trig.Process(0.1)
	if trig.IsHigh() {
		t.Fatal("trigger should be low after reaching the low threshold")
	}
}

func TestSchmittTriggerDoesNotFireOnInitialHigh(t *testing.T) {
	var trig dsp.SchmittTrigger
	if trig.Process(5) {
		t.Fatal("a level that is high from the start must not fire")
	}
	if !trig.IsHigh() {
		t.Fatal("the first high sample should latch the level")
	}
	trig.Reset()
	if trig.IsHigh() {
		t.Fatal("reset trigger should not be high")
	}
	if trig.Process(5) {
		t.Fatal("a reset trigger must not fire on a sustained high level")
	}
}

func TestRescale(t *testing.T) {
	if got := dsp.Rescale(2, 0.1, 2, 0, 1); got != 1 {
		t.Fatalf("Rescale(2) = %v, expected 1", got)
	}
	if got := dsp.Rescale(0.1, 0.1, 2, 0, 1); got != 0 {
		t.Fatalf("Rescale(0.1) = %v, expected 0", got)
	}
}

func TestInternalClockPeriod(t *testing.T) {
	var clock dsp.Clock
	// 2^2 = 4 Hz at 1/64 s per sample gives a tick every 16 samples
	ticks := 0
	windowSamples := 0
	for i := 1; i <= 64; i++ {
		tick, window := clock.Process(0, false, 2, 1.0/64)
		if tick {
			ticks++
			if i%16 != 0 {
				t.Fatalf("tick at sample %v, expected only every 16th sample", i)
			}
			if clock.Phase != 0 {
				t.Fatalf("phase should be zero after a tick, got %v", clock.Phase)
			}
		}
		if window {
			windowSamples++
		}
	}
	if ticks != 4 {
		t.Fatalf("got %v ticks, expected 4", ticks)
	}
	if windowSamples != 32 {
		t.Fatalf("window was open %v samples, expected 32", windowSamples)
	}
}

func TestExternalClock(t *testing.T) {
	var clock dsp.Clock
	clock.Phase = 0.7
	levels := []float32{0, 10, 10, 0, 10}
	expectedTicks := []bool{false, true, false, false, true}
	expectedWindow := []bool{false, true, true, false, true}
	for i, level := range levels {
		tick, window := clock.Process(level, true, 2, 1.0/44100)
		if tick != expectedTicks[i] || window != expectedWindow[i] {
			t.Fatalf("sample %v: got (%v, %v), expected (%v, %v)", i, tick, window, expectedTicks[i], expectedWindow[i])
		}
	}
	if clock.Phase != 0 {
		t.Fatalf("an external tick should zero the phase, got %v", clock.Phase)
	}
}

func TestRandomIsDeterministic(t *testing.T) {
	a, b := dsp.NewRandom(1), dsp.NewRandom(1)
	for i := 0; i < 100; i++ {
		x, y := a.Uniform(), b.Uniform()
		if x != y {
			t.Fatalf("generators with the same seed diverged at %v: %v != %v", i, x, y)
		}
		if x < 0 || x > 1 {
			t.Fatalf("Uniform returned %v, outside [0, 1]", x)
		}
	}
}

func TestClockDivider(t *testing.T) {
	d := dsp.ClockDivider{Index: 1} // 3:1
	passed := 0
	for period := 0; period < 9; period++ {
		if d.Process(10) > 0 {
			passed++
		}
		d.Process(0)
	}
	if passed != 3 {
		t.Fatalf("3:1 divider passed %v of 9 periods, expected 3", passed)
	}
	if d.Ratio() != 3 {
		t.Fatalf("Ratio() = %v, expected 3", d.Ratio())
	}
	d.Index = 100
	if d.Ratio() != 64 {
		t.Fatalf("out of range index should clamp to the last ratio, got %v", d.Ratio())
	}
}
