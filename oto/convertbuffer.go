package oto

import (
	"encoding/binary"
	"math"

	"github.com/goodsheperd/shepherd"
)

// bytesPerFrame of a stereo float32 stream.
const bytesPerFrame = 8

// AudioBufferToFloat32LE appends the buffer as interleaved little-endian
// float32 samples to out, which is returned. Passing out[:0] reuses its
// capacity.
func AudioBufferToFloat32LE(buffer shepherd.AudioBuffer, out []byte) []byte {
	for _, frame := range buffer {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(frame[0]))
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(frame[1]))
	}
	return out
}
