package shepherd

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// WavFormat describes the layout of interleaved frames written by Wav and Raw.
type WavFormat struct {
	Channels   int
	SampleRate int
	PCM16      bool // int16 samples instead of float32
}

// Wav encodes interleaved frames as a .wav file. The samples are expected to
// be in the range -1..1; with PCM16 they are clamped.
func Wav(buffer []float32, format WavFormat) ([]byte, error) {
	if format.Channels <= 0 || len(buffer)%format.Channels != 0 {
		return nil, fmt.Errorf("Wav failed: buffer length %v is not a multiple of %v channels", len(buffer), format.Channels)
	}
	buf := new(bytes.Buffer)
	wavHeader(len(buffer), format, buf)
	if err := rawToBuffer(buffer, format.PCM16, buf); err != nil {
		return nil, fmt.Errorf("Wav failed: %v", err)
	}
	return buf.Bytes(), nil
}

// Raw encodes interleaved frames without any header.
func Raw(buffer []float32, pcm16 bool) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := rawToBuffer(buffer, pcm16, buf); err != nil {
		return nil, fmt.Errorf("Raw failed: %v", err)
	}
	return buf.Bytes(), nil
}

func rawToBuffer(data []float32, pcm16 bool, buf *bytes.Buffer) error {
	var err error
	if pcm16 {
		int16data := make([]int16, len(data))
		for i, v := range data {
			int16data[i] = int16(clamp(int(v*math.MaxInt16), math.MinInt16, math.MaxInt16))
		}
		err = binary.Write(buf, binary.LittleEndian, int16data)
	} else {
		err = binary.Write(buf, binary.LittleEndian, data)
	}
	if err != nil {
		return fmt.Errorf("could not binary write data to binary buffer: %v", err)
	}
	return nil
}

// wavHeader writes the header of a float32 or int16 .wav file. bufferLength
// is the total number of samples over all channels.
func wavHeader(bufferLength int, format WavFormat, buf *bytes.Buffer) {
	// Refer to: http://www-mmsp.ece.mcgill.ca/Documents/AudioFormats/WAVE/WAVE.html
	var bytesPerSample, chunkSize, fmtChunkSize, waveFormat int
	var factChunk bool
	if format.PCM16 {
		bytesPerSample = 2
		chunkSize = 36 + bytesPerSample*bufferLength
		fmtChunkSize = 16
		waveFormat = 1 // PCM
	} else {
		bytesPerSample = 4
		chunkSize = 50 + bytesPerSample*bufferLength
		fmtChunkSize = 18
		waveFormat = 3 // IEEE float
		factChunk = true
	}
	buf.Write([]byte("RIFF"))
	binary.Write(buf, binary.LittleEndian, uint32(chunkSize))
	buf.Write([]byte("WAVE"))
	buf.Write([]byte("fmt "))
	binary.Write(buf, binary.LittleEndian, uint32(fmtChunkSize))
	binary.Write(buf, binary.LittleEndian, uint16(waveFormat))
	binary.Write(buf, binary.LittleEndian, uint16(format.Channels))
	binary.Write(buf, binary.LittleEndian, uint32(format.SampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(format.SampleRate*format.Channels*bytesPerSample)) // avgBytesPerSec
	binary.Write(buf, binary.LittleEndian, uint16(format.Channels*bytesPerSample))                   // blockAlign
	binary.Write(buf, binary.LittleEndian, uint16(8*bytesPerSample))                                 // bits per sample
	if fmtChunkSize > 16 {
		binary.Write(buf, binary.LittleEndian, uint16(0)) // size of extension
	}
	if factChunk {
		buf.Write([]byte("fact"))
		binary.Write(buf, binary.LittleEndian, uint32(4))                              // fact chunk size
		binary.Write(buf, binary.LittleEndian, uint32(bufferLength/format.Channels)) // frames per channel
	}
	buf.Write([]byte("data"))
	binary.Write(buf, binary.LittleEndian, uint32(bytesPerSample*bufferLength))
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
