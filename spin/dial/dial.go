package dial

import (
	"io"
)

// Delta is a pointer displacement in surface pixels.
type Delta struct {
	X float64
	Y float64
}

// Driver is a physical input that turns the view without a pointer.
type Driver interface {
	io.Closer
	Open() error
	Deltas() <-chan Delta
}
