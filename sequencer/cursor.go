package sequencer

import "github.com/goodsheperd/shepherd"

// RowCursor is the play head of one row. Position, Start and End are kept
// as given, even if outside the grid, and are clamped only where they are
// used.
type RowCursor struct {
	Position  int
	Start     int
	End       int
	Increment int
	Muted     bool
}

func NewRowCursor() RowCursor {
	return RowCursor{End: shepherd.NumColumns - 1, Increment: 1}
}

// Window returns the clamped start and end boundaries.
func (c *RowCursor) Window() (start, end int) {
	return shepherd.ClampColumn(c.Start), shepherd.ClampColumn(c.End)
}

// Column returns the clamped position, i.e. the cell the cursor reads.
func (c *RowCursor) Column() int {
	return shepherd.ClampColumn(c.Position)
}

// Advance moves the cursor by its increment on a clock tick. Moving forward
// past the end wraps to the start, moving backward past the start wraps to
// the end. An inverted window (start > end) pins the cursor to start. A
// position outside the grid is first brought back onto it.
func (c *RowCursor) Advance() {
	c.Position = c.Column()
	start, end := c.Window()
	if start > end {
		c.Position = start
		return
	}
	c.Position += c.Increment
	if c.Increment >= 0 {
		if c.Position > end {
			c.Position = start
		}
	} else if c.Position < start {
		c.Position = end
	}
}

// Rewind moves the cursor to the start of its window.
func (c *RowCursor) Rewind() {
	c.Position = shepherd.ClampColumn(c.Start)
}
