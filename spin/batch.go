package spin

import (
	"context"
	"sync"
	"sync/atomic"
)

// Batch resolves once every load it tracks has settled, successfully or not.
type Batch struct {
	wait   sync.WaitGroup
	done   chan struct{}
	total  int
	loaded atomic.Int32
	failed atomic.Int32
}

func newBatch(total int) *Batch {
	b := &Batch{
		done:  make(chan struct{}),
		total: total,
	}
	b.wait.Add(total)
	go func() {
		b.wait.Wait()
		close(b.done)
	}()
	return b
}

func (b *Batch) settle(state FrameState) {
	if state == FrameReady {
		b.loaded.Add(1)
	} else {
		b.failed.Add(1)
	}
	b.wait.Done()
}

func (b *Batch) Done() <-chan struct{} {
	return b.done
}

func (b *Batch) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Batch) Total() int {
	return b.total
}

func (b *Batch) Loaded() int {
	return int(b.loaded.Load())
}

func (b *Batch) Failed() int {
	return int(b.failed.Load())
}

func (b *Batch) Settled() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}
