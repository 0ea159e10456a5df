package oto

import (
	"math"

	"github.com/goodsheperd/shepherd"
	"github.com/viterin/vek/vek32"
)

type (
	// GateReader fills buf with gates and returns the number of frames
	// written. It returns io.EOF when there are no more gates.
	GateReader func(buf shepherd.GateBuffer) (n int, err error)

	// Monitor is an AudioSource that makes the gates audible: every rising
	// gate strikes a short decaying sine, pitched and panned by row.
	Monitor struct {
		read   GateReader
		gates  shepherd.GateBuffer
		high   [shepherd.NumRows]bool
		env    [shepherd.NumRows]float32
		phase  [shepherd.NumRows]float32
		delta  [shepherd.NumRows]float32
		voices [shepherd.NumRows]float32
		left   [shepherd.NumRows]float32
		right  [shepherd.NumRows]float32
		decay  float32
		Gain   float32
	}
)

// NewMonitor returns a monitor pulling gates from read.
func NewMonitor(read GateReader, sampleRate int) *Monitor {
	m := &Monitor{read: read, Gain: 0.3}
	// 30 ms to -60 dB
	m.decay = float32(math.Pow(0.001, 1/(0.03*float64(sampleRate))))
	for row := range m.delta {
		freq := 220 * math.Exp2(float64(shepherd.NumRows-1-row)/4)
		m.delta[row] = float32(freq / float64(sampleRate))
		pan := float64(row) / (shepherd.NumRows - 1) * math.Pi / 2
		m.left[row] = float32(math.Cos(pan))
		m.right[row] = float32(math.Sin(pan))
	}
	return m
}

func (m *Monitor) ReadAudio(buf shepherd.AudioBuffer) (int, error) {
	if cap(m.gates) < len(buf) {
		m.gates = make(shepherd.GateBuffer, len(buf))
	}
	gates := m.gates[:len(buf)]
	n, err := m.read(gates)
	for i, frame := range gates[:n] {
		for row, level := range frame {
			high := level >= 1
			if high && !m.high[row] {
				m.env[row] = 1
			}
			m.high[row] = high
			m.voices[row] = m.env[row] * float32(math.Sin(2*math.Pi*float64(m.phase[row])))
			m.env[row] *= m.decay
			m.phase[row] += m.delta[row]
			if m.phase[row] >= 1 {
				m.phase[row] -= 1
			}
		}
		buf[i][0] = m.Gain * vek32.Dot(m.voices[:], m.left[:])
		buf[i][1] = m.Gain * vek32.Dot(m.voices[:], m.right[:])
	}
	return n, err
}

// Mix renders the click mix of a finished gate buffer.
func Mix(gates shepherd.GateBuffer, sampleRate int) shepherd.AudioBuffer {
	pos := 0
	m := NewMonitor(func(buf shepherd.GateBuffer) (int, error) {
		n := copy(buf, gates[pos:])
		pos += n
		return n, nil
	}, sampleRate)
	ret := make(shepherd.AudioBuffer, len(gates))
	m.ReadAudio(ret)
	return ret
}
