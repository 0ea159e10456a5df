package rack_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goodsheperd/shepherd"
	"github.com/goodsheperd/shepherd/config"
	"github.com/goodsheperd/shepherd/rack"
	"github.com/stretchr/testify/assert"
)

func TestRunStopsWithContext(t *testing.T) {
	r := rack.New(config.Default())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := r.Run(ctx, time.Millisecond)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
	assert.Greater(t, r.Display().Frame, int64(0), "the rack should have processed samples")
}

func TestReaderFillsBuffer(t *testing.T) {
	r := rack.New(config.Default())
	read := r.Reader()
	n, err := read(make(shepherd.GateBuffer, 32))
	assert.NoError(t, err)
	assert.Equal(t, 32, n)
	assert.Equal(t, int64(32), r.Display().Frame)
}
