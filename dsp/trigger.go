package dsp

const (
	// DefaultLow and DefaultHigh are the thresholds of a SchmittTrigger, in
	// volts.
	DefaultLow  = 0.1
	DefaultHigh = 1.0
)

type triggerState uint8

const (
	triggerUnknown triggerState = iota
	triggerLow
	triggerHigh
)

// SchmittTrigger detects rising edges of a level with hysteresis: the level
// has to drop to Low or below before it can trigger again by reaching High.
//
// A new trigger (and one after Reset) does not know the previous level. The
// first sample only latches it, so a level that is already high when the
// trigger is created does not fire.
type SchmittTrigger struct {
	state triggerState
}

// Process feeds one sample and returns true if the level just rose.
func (t *SchmittTrigger) Process(level float32) bool {
	switch t.state {
	case triggerLow:
		if level >= DefaultHigh {
			t.state = triggerHigh
			return true
		}
	case triggerHigh:
		if level <= DefaultLow {
			t.state = triggerLow
		}
	default:
		if level >= DefaultHigh {
			t.state = triggerHigh
		} else if level <= DefaultLow {
			t.state = triggerLow
		}
	}
	return false
}

// IsHigh returns true while the latched level is high.
func (t *SchmittTrigger) IsHigh() bool {
	return t.state == triggerHigh
}

func (t *SchmittTrigger) Reset() {
	t.state = triggerUnknown
}

// Rescale maps x linearly from the range [xMin, xMax] to [yMin, yMax]. It does
// not clamp.
func Rescale(x, xMin, xMax, yMin, yMax float32) float32 {
	return yMin + (x-xMin)/(xMax-xMin)*(yMax-yMin)
}
