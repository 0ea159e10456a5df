package sequencer

import "github.com/goodsheperd/shepherd"

// Snapshot returns a copy of the persisted state.
func (s *Sequencer) Snapshot() shepherd.Snapshot {
	ret := shepherd.Snapshot{
		Running:      shepherd.Some(s.Running),
		Steps:        make([]shepherd.Optional[bool], len(s.Grid)),
		Positions:    make([]shepherd.Optional[int], len(s.Rows)),
		Increments:   make([]shepherd.Optional[int], len(s.Rows)),
		Mutes:        make([]shepherd.Optional[bool], len(s.Rows)),
		NudgeFullRow: shepherd.Some(s.NudgeMode == NudgeFullRow),
	}
	for i, v := range s.Grid {
		ret.Steps[i] = shepherd.Some(v)
	}
	for i, c := range s.Rows {
		ret.Positions[i] = shepherd.Some(c.Position)
		ret.Increments[i] = shepherd.Some(c.Increment)
		ret.Mutes[i] = shepherd.Some(c.Muted)
	}
	return ret
}

// Restore overwrites the live state with every value present in the
// snapshot. Missing values, and values past the size of the grid, are
// ignored.
func (s *Sequencer) Restore(snap shepherd.Snapshot) {
	if v, ok := snap.Running.Unpack(); ok {
		s.Running = v
	}
	if v, ok := snap.NudgeFullRow.Unpack(); ok {
		s.NudgeMode = NudgeWindow
		if v {
			s.NudgeMode = NudgeFullRow
		}
	}
	for i, o := range snap.Steps {
		if i >= len(s.Grid) {
			break
		}
		if v, ok := o.Unpack(); ok {
			s.Grid[i] = v
		}
	}
	for i := range s.Rows {
		c := &s.Rows[i]
		if i < len(snap.Positions) {
			if v, ok := snap.Positions[i].Unpack(); ok {
				c.Position = v
			}
		}
		if i < len(snap.Increments) {
			if v, ok := snap.Increments[i].Unpack(); ok {
				c.Increment = v
			}
		}
		if i < len(snap.Mutes) {
			if v, ok := snap.Mutes[i].Unpack(); ok {
				c.Muted = v
			}
		}
	}
}
