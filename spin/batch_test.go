package spin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBatch(t *testing.T) {
	b := newBatch(3)
	assert.False(t, b.Settled())

	b.settle(FrameReady)
	b.settle(FrameFailed)
	assert.False(t, b.Settled())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, b.Wait(ctx), context.DeadlineExceeded)

	b.settle(FrameReady)
	assert.NoError(t, b.Wait(context.Background()))
	assert.True(t, b.Settled())
	assert.Equal(t, 3, b.Total())
	assert.Equal(t, 2, b.Loaded())
	assert.Equal(t, 1, b.Failed())
}

func TestBatchEmpty(t *testing.T) {
	b := newBatch(0)
	select {
	case <-b.Done():
	case <-time.After(time.Second):
		t.Fatal("empty batch never settled")
	}
}
