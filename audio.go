package shepherd

import "io"

type (
	// AudioSource renders the next frames of stereo audio into buf and returns
	// the number of frames written. A finite source returns io.EOF once it has
	// nothing left.
	AudioSource interface {
		ReadAudio(buf AudioBuffer) (n int, err error)
	}

	// AudioContext is an open audio device that can play sources.
	AudioContext interface {
		Play(src AudioSource) CloserWaiter
		Close() error
	}

	// CloserWaiter is a handle to something playing: Wait blocks until the
	// source ends, Close stops it early.
	CloserWaiter interface {
		Close() error
		Wait()
	}

	bufferSource struct {
		buf AudioBuffer
		pos int
	}
)

// Source returns an AudioSource that plays the buffer once.
func (b AudioBuffer) Source() AudioSource {
	return &bufferSource{buf: b}
}

func (s *bufferSource) ReadAudio(buf AudioBuffer) (int, error) {
	n := copy(buf, s.buf[s.pos:])
	s.pos += n
	if s.pos >= len(s.buf) {
		return n, io.EOF
	}
	return n, nil
}
