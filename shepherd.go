package shepherd

const (
	// NumRows is the number of independent rows (play heads) of the grid.
	NumRows = 8
	// NumColumns is the number of steps in a single row.
	NumColumns = 16
	// NumSteps is the total number of cells in the grid, row-major.
	NumSteps = NumRows * NumColumns

	// GateHigh is the level of an open gate, in volts.
	GateHigh = 10
)

type (
	// GateBuffer holds one frame of gate levels per sample, one lane per row.
	GateBuffer [][NumRows]float32

	// AudioBuffer is a buffer of stereo audio samples of variable length, each
	// sample represented by [2]float32. [0] is left channel, [1] is right.
	AudioBuffer [][2]float32
)

// StepIndex returns the index of the cell at row, col in the row-major grid.
func StepIndex(row, col int) int {
	return row*NumColumns + col
}

// ClampColumn clamps a column index into the range 0..NumColumns-1.
func ClampColumn(col int) int {
	return clamp(col, 0, NumColumns-1)
}

// ClampRow clamps a row index into the range 0..NumRows-1.
func ClampRow(row int) int {
	return clamp(row, 0, NumRows-1)
}

// Lanes returns a slice of the buffer interleaved by lane: frame 0 lane 0,
// frame 0 lane 1, ..., frame 1 lane 0 etc. The result can be given to Wav and
// Raw with NumRows channels.
func (b GateBuffer) Lanes() []float32 {
	ret := make([]float32, 0, len(b)*NumRows)
	for _, frame := range b {
		ret = append(ret, frame[:]...)
	}
	return ret
}

