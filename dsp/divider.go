package dsp

// DivisorRatios are the selectable ratios of a ClockDivider, in the order of
// the divisor index. Assuming a 96 PPQN clock, the first seven are straight
// note values and the rest triplets.
var DivisorRatios = [...]int{1, 3, 6, 12, 24, 48, 96, 2, 4, 8, 16, 32, 64}

// DivisorNames describe DivisorRatios for menus and reports.
var DivisorNames = [...]string{"1:1 (1/96)", "3:1 (1/32)", "6:1 (1/16)", "12:1 (1/8)", "24:1 (1/4)", "48:1 (1/2)", "96:1 (1/1)", "2:1 (1/32T)", "4:1 (1/16T)", "8:1 (1/8T)", "16:1 (1/4T)", "32:1 (1/2T)", "64:1 (1/1T)"}

// ClockDivider counts the falling edges of a clock and passes the clock
// through during one period out of every DivisorRatios[Index].
type ClockDivider struct {
	Index   int // into DivisorRatios, clamped at use
	Counter int
	falling SchmittTrigger
}

func (d *ClockDivider) Ratio() int {
	return DivisorRatios[ClampDivisor(d.Index)]
}

// Process counts the clock and returns the divided clock level. The clock is
// rescaled so that it is low below 0.1 V and high above 2 V.
func (d *ClockDivider) Process(clock float32) float32 {
	if d.falling.Process(1 - Rescale(clock, 0.1, 2, 0, 1)) {
		d.Counter++
		if d.Counter >= d.Ratio() {
			d.Counter = 0
		}
	}
	if d.Counter == 0 {
		return clock
	}
	return 0
}

// Restart makes the current period pass through.
func (d *ClockDivider) Restart() {
	d.Counter = 0
}

// ClampDivisor clamps a divisor index into the range of DivisorRatios.
func ClampDivisor(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(DivisorRatios) {
		return len(DivisorRatios) - 1
	}
	return i
}
