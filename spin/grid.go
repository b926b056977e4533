package spin

import (
	"fmt"
	"image"
	"sync/atomic"
)

type FrameState int32

const (
	FramePending FrameState = iota
	FrameReady
	FrameFailed
)

func (s FrameState) String() string {
	switch s {
	case FramePending:
		return "pending"
	case FrameReady:
		return "ready"
	case FrameFailed:
		return "failed"
	}
	return fmt.Sprintf("FrameState(%d)", int32(s))
}

// FramePath is the asset naming contract: {folderPath}{v}_{u}.{extension}
func FramePath(folderPath, extension string, u, v int) string {
	return fmt.Sprintf("%s%d_%d.%s", folderPath, v, u, extension)
}

// Frame is the image resource owned by one grid cell.
// The image is stored before the state flips to ready, so a reader that
// observes FrameReady always sees the image.
type Frame struct {
	U    int
	V    int
	Path string

	img   image.Image
	err   error
	state atomic.Int32
}

func (f *Frame) State() FrameState {
	return FrameState(f.state.Load())
}

func (f *Frame) Ready() bool {
	return f.State() == FrameReady
}

// Image returns nil until the frame is ready.
func (f *Frame) Image() image.Image {
	if !f.Ready() {
		return nil
	}
	return f.img
}

// Err returns the load error of a failed frame.
func (f *Frame) Err() error {
	if f.State() != FrameFailed {
		return nil
	}
	return f.err
}

func (f *Frame) settle(img image.Image, err error) FrameState {
	if err != nil {
		f.err = err
		f.state.Store(int32(FrameFailed))
		return FrameFailed
	}
	f.img = img
	f.state.Store(int32(FrameReady))
	return FrameReady
}

// Grid is a flat, v-major array of frames.
type Grid struct {
	UCount int
	VCount int
	Frames []*Frame
}

func NewGrid(folderPath, extension string, uCount, vCount int) *Grid {
	g := &Grid{
		UCount: uCount,
		VCount: vCount,
	}
	if uCount <= 0 || vCount <= 0 {
		return g
	}
	g.Frames = make([]*Frame, 0, uCount*vCount)
	for v := 0; v < vCount; v++ {
		for u := 0; u < uCount; u++ {
			g.Frames = append(g.Frames, &Frame{
				U:    u,
				V:    v,
				Path: FramePath(folderPath, extension, u, v),
			})
		}
	}
	return g
}

func (g *Grid) Index(u, v int) int {
	return v*g.UCount + u
}

// At returns nil for coordinates outside the grid.
func (g *Grid) At(u, v int) *Frame {
	if u < 0 || v < 0 || u >= g.UCount || v >= g.VCount {
		return nil
	}
	index := g.Index(u, v)
	if index >= len(g.Frames) {
		return nil
	}
	return g.Frames[index]
}

func (g *Grid) Len() int {
	return len(g.Frames)
}
