package sequencer

import "github.com/goodsheperd/shepherd"

// Grid is the step matrix, NumRows rows of NumColumns cells, stored row-major.
// Row and column arguments of all methods are clamped into range.
type Grid [shepherd.NumSteps]bool

func (g *Grid) StepAt(row, col int) bool {
	return g[index(row, col)]
}

func (g *Grid) SetStep(row, col int, value bool) {
	g[index(row, col)] = value
}

func (g *Grid) Toggle(row, col int) {
	i := index(row, col)
	g[i] = !g[i]
}

// RowAt returns a copy of one row.
func (g *Grid) RowAt(row int) (ret [shepherd.NumColumns]bool) {
	i := index(row, 0)
	copy(ret[:], g[i:i+shepherd.NumColumns])
	return
}

func (g *Grid) Clear() {
	*g = Grid{}
}

// RotateLeft rotates the cells first..last of a row by one step towards
// first; the value at first wraps around to last. Nothing happens unless
// first < last.
func (g *Grid) RotateLeft(row, first, last int) {
	first, last = index(row, first), index(row, last)
	if first >= last {
		return
	}
	saved := g[first]
	copy(g[first:last], g[first+1:last+1])
	g[last] = saved
}

// RotateRight is the inverse of RotateLeft.
func (g *Grid) RotateRight(row, first, last int) {
	first, last = index(row, first), index(row, last)
	if first >= last {
		return
	}
	saved := g[last]
	copy(g[first+1:last+1], g[first:last])
	g[first] = saved
}

func index(row, col int) int {
	return shepherd.StepIndex(shepherd.ClampRow(row), shepherd.ClampColumn(col))
}
