package oto

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/goodsheperd/shepherd"
)

type (
	OtoContext struct {
		context *oto.Context
	}

	// OtoPlayer plays one AudioSource until it ends or is closed.
	OtoPlayer struct {
		player *oto.Player
		reader *sourceReader
	}

	// sourceReader adapts an AudioSource to the io.Reader pulled by oto.
	sourceReader struct {
		source shepherd.AudioSource
		buffer shepherd.AudioBuffer
		bytes  []byte
		err    error
	}
)

var _ shepherd.AudioContext = (*OtoContext)(nil)

// NewContext creates the oto context. Oto allows only one context per
// process. bufferSize is in frames; 0 uses the default of the driver.
func NewContext(sampleRate, bufferSize int) (*OtoContext, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(bufferSize) * time.Second / time.Duration(sampleRate),
	}
	context, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &OtoContext{context: context}, nil
}

func (c *OtoContext) Play(source shepherd.AudioSource) shepherd.CloserWaiter {
	r := &sourceReader{source: source}
	p := &OtoPlayer{player: c.context.NewPlayer(r), reader: r}
	p.player.Play()
	return p
}

// Close suspends the audio device; oto contexts cannot be destroyed.
func (c *OtoContext) Close() error {
	if err := c.context.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	return nil
}

// Wait blocks until the source has ended and everything it produced has
// been played.
func (p *OtoPlayer) Wait() {
	for p.player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
}

// Close disposes of resources
func (p *OtoPlayer) Close() error {
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}

func (r *sourceReader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	if cap(r.buffer) < frames {
		r.buffer = make(shepherd.AudioBuffer, frames)
	}
	n, err := r.source.ReadAudio(r.buffer[:frames])
	if err != nil {
		if !errors.Is(err, io.EOF) {
			err = fmt.Errorf("cannot read audio: %w", err)
		}
		r.err = err
	}
	r.bytes = AudioBufferToFloat32LE(r.buffer[:n], r.bytes[:0])
	copy(p, r.bytes)
	if n > 0 {
		return len(r.bytes), nil
	}
	return 0, r.err
}
