package rack

import (
	"context"
	"time"

	"github.com/goodsheperd/shepherd"
)

// Run drives the rack from the wall clock when there is no audio device
// pulling blocks from it: every interval, it processes the number of samples
// that fit in the interval. The gates are discarded; use Events to observe
// them. Run returns when ctx is done.
func (r *Rack) Run(ctx context.Context, interval time.Duration) error {
	n := int(time.Duration(r.sampleRate) * interval / time.Second)
	if n < 1 {
		n = 1
	}
	buf := make(shepherd.GateBuffer, n)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Process(buf, nil, nil)
		}
	}
}

// Reader returns a function that renders the next block of gates on every
// call, for audio outputs that pull blocks instead of having them pushed. The
// rack never ends, so the error is always nil.
func (r *Rack) Reader() func(frames shepherd.GateBuffer) (int, error) {
	return func(frames shepherd.GateBuffer) (int, error) {
		r.Process(frames, nil, nil)
		return len(frames), nil
	}
}
