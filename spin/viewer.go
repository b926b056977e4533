package spin

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/allape/gogger"
	"github.com/allape/openspin/spin/canvas"
	"github.com/allape/openspin/spin/placeholder"
)

var l = gogger.New("spin")

var (
	ErrContainerNotFound  = errors.New("container not found")
	ErrFullscreenDisabled = errors.New("fullscreen is not allowed")
	ErrClosed             = errors.New("viewer closed")
)

const (
	DefaultFolderPath     = "./"
	DefaultViewWidth      = 1200
	DefaultViewHeight     = 900
	DefaultUCount         = 18
	DefaultVCount         = 1
	DefaultImageExtension = "png"
)

// Loader fetches the image behind a frame path.
type Loader interface {
	Load(ctx context.Context, path string) (image.Image, error)
}

type LoaderFunc func(ctx context.Context, path string) (image.Image, error)

func (f LoaderFunc) Load(ctx context.Context, path string) (image.Image, error) {
	return f(ctx, path)
}

type Options struct {
	// ID names the viewer in logs and APIs, the container id when empty.
	ID string

	FolderPath      string
	ViewWidth       int
	ViewHeight      int
	BackgroundColor color.Color
	UCount          int
	VCount          int
	ImageExtension  string
	StartU          int
	StartV          int
	AllowFullscreen bool

	// RenderOnLoad defers the first render until every frame load settled.
	RenderOnLoad bool
	// Touch enables single-touch dragging.
	Touch bool
	// Placeholder draws a notice in place of frames that failed to load.
	Placeholder bool

	// NewSurface replaces the default canvas.
	NewSurface func(width, height int, background color.Color) Surface
}

// WithDefaults fills zero values with the documented defaults.
func (o Options) WithDefaults() Options {
	if o.FolderPath == "" {
		o.FolderPath = DefaultFolderPath
	}
	if o.ViewWidth == 0 {
		o.ViewWidth = DefaultViewWidth
	}
	if o.ViewHeight == 0 {
		o.ViewHeight = DefaultViewHeight
	}
	if o.BackgroundColor == nil {
		o.BackgroundColor = color.White
	}
	if o.UCount == 0 {
		o.UCount = DefaultUCount
	}
	if o.VCount == 0 {
		o.VCount = DefaultVCount
	}
	if o.ImageExtension == "" {
		o.ImageExtension = DefaultImageExtension
	}
	return o
}

type EventKind string

const (
	EventFrame      EventKind = "frame"
	EventFullscreen EventKind = "fullscreen"
)

type Event struct {
	Kind  EventKind
	U     int
	V     int
	Image image.Image
}

type Listener func(e Event)

type Viewer struct {
	ID string

	options   Options
	grid      *Grid
	surface   Surface
	container *Container
	loader    Loader
	input     *Input
	batch     *Batch

	ctx    context.Context
	cancel context.CancelFunc

	locker   sync.Locker
	currentU int
	currentV int
	rendered *Frame
	closed   bool

	// held from render to the end of emit, listeners see frames in render order
	publishLocker sync.Locker

	listenersLocker sync.Locker
	listeners       map[int]Listener
	nextListenerID  int
}

// New mounts a viewer into containerID of doc and starts loading its frames.
func New(doc *Document, containerID string, options Options, loader Loader) (*Viewer, error) {
	container, ok := doc.Container(containerID)
	if !ok {
		l.Error().Println("container not found:", containerID)
		return nil, fmt.Errorf("%w: %s", ErrContainerNotFound, containerID)
	}

	options = options.WithDefaults()

	ctx, cancel := context.WithCancel(context.Background())

	id := options.ID
	if id == "" {
		id = containerID
	}

	s := &Viewer{
		ID:        id,
		options:   options,
		container: container,
		loader:    loader,
		ctx:       ctx,
		cancel:    cancel,
		currentU:  options.StartU,
		currentV:  options.StartV,

		locker:          &sync.Mutex{},
		publishLocker:   &sync.Mutex{},
		listenersLocker: &sync.Mutex{},
		listeners:       make(map[int]Listener),
	}

	s.init()

	return s, nil
}

func (s *Viewer) init() {
	newSurface := s.options.NewSurface
	if newSurface == nil {
		newSurface = func(width, height int, background color.Color) Surface {
			return canvas.New(width, height, background)
		}
	}
	s.surface = newSurface(s.options.ViewWidth, s.options.ViewHeight, s.options.BackgroundColor)
	s.container.Append(s.surface)

	s.grid = NewGrid(s.options.FolderPath, s.options.ImageExtension, s.options.UCount, s.options.VCount)
	s.input = NewInput(s)

	s.batch = s.preload()

	if s.options.RenderOnLoad {
		go func() {
			if err := s.batch.Wait(s.ctx); err != nil {
				return
			}
			l.Info().Printf("%s: %d frames loaded, %d failed", s.ID, s.batch.Loaded(), s.batch.Failed())
			s.Render()
		}()
	} else {
		s.Render()
	}
}

// preload issues one asynchronous load per frame, v-major then u-minor.
// It runs once from init, Batch is the handle to its progress.
func (s *Viewer) preload() *Batch {
	batch := newBatch(s.grid.Len())
	for _, frame := range s.grid.Frames {
		go func(frame *Frame) {
			img, err := s.loader.Load(s.ctx, frame.Path)
			state := frame.settle(img, err)
			if state == FrameFailed {
				l.Warn().Println("load frame", frame.Path, "failed:", err)
			} else {
				l.Verbose().Println("frame loaded:", frame.Path)
			}
			batch.settle(state)
		}(frame)
	}
	return batch
}

func (s *Viewer) Options() Options {
	return s.options
}

func (s *Viewer) Grid() *Grid {
	return s.grid
}

func (s *Viewer) Surface() Surface {
	return s.surface
}

// Rendered is the frame currently shown on the surface, nil before the first draw.
func (s *Viewer) Rendered() *Frame {
	s.locker.Lock()
	defer s.locker.Unlock()
	return s.rendered
}

func (s *Viewer) Batch() *Batch {
	return s.batch
}

// Input is the viewer's own event dispatcher.
func (s *Viewer) Input() *Input {
	return s.input
}

func (s *Viewer) State() (u, v int) {
	s.locker.Lock()
	defer s.locker.Unlock()
	return s.currentU, s.currentV
}

// Render draws the frame at the current coordinates.
// It reports whether the surface changed.
func (s *Viewer) Render() bool {
	s.locker.Lock()
	event, ok := s.render()
	return s.publish(event, ok)
}

// publish must be called with s.locker held and releases it.
// Listeners must not drag, render or set the view of the same viewer.
func (s *Viewer) publish(event Event, ok bool) bool {
	if !ok {
		s.locker.Unlock()
		return false
	}

	s.publishLocker.Lock()
	s.locker.Unlock()
	defer s.publishLocker.Unlock()

	s.emit(event)
	return true
}

func (s *Viewer) render() (Event, bool) {
	if s.closed {
		return Event{}, false
	}

	frame := s.grid.At(s.currentU, s.currentV)
	if frame == nil {
		l.Verbose().Printf("%s: no frame at u=%d v=%d", s.ID, s.currentU, s.currentV)
		return Event{}, false
	}

	switch frame.State() {
	case FrameReady:
		s.surface.Clear()
		s.surface.DrawScaled(frame.Image())
	case FrameFailed:
		if !s.options.Placeholder {
			l.Verbose().Println("image failed to load:", frame.Path)
			return Event{}, false
		}
		size := s.surface.Size()
		img, err := placeholder.CreatePlaceholder(
			size.X, size.Y,
			s.options.BackgroundColor,
			color.Gray{Y: 0x80},
			fmt.Sprintf("%d_%d unavailable", frame.V, frame.U),
			false,
		)
		if err != nil {
			l.Error().Println("create placeholder:", err)
			return Event{}, false
		}
		s.surface.Clear()
		s.surface.DrawScaled(img)
	default:
		l.Verbose().Println("image not loaded yet:", frame.Path)
		return Event{}, false
	}

	s.rendered = frame

	return Event{
		Kind:  EventFrame,
		U:     s.currentU,
		V:     s.currentV,
		Image: s.surface.Snapshot(),
	}, true
}

// roundHalfUp rounds half up, -0.5 becomes 0.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Step converts a pixel displacement into grid steps for a surface of the given size.
// A non-finite displacement on an axis is no step on that axis.
func Step(deltaX, deltaY float64, size image.Point, uCount, vCount int) (uStep, vStep int) {
	if uCount > 0 && size.X > 0 && finite(deltaX) {
		uStep = roundHalfUp(deltaX / (float64(size.X) / float64(uCount)))
	}
	if vCount > 0 && size.Y > 0 && finite(deltaY) {
		vStep = roundHalfUp(deltaY / (float64(size.Y) / float64(vCount)))
	}
	return uStep, vStep
}

func wrap(value, count int) int {
	return ((value % count) + count) % count
}

func clamp(value, low, high int) int {
	return max(low, min(high, value))
}

// HandleDrag rotates the view by a pointer displacement and re-renders.
func (s *Viewer) HandleDrag(deltaX, deltaY float64) {
	s.locker.Lock()
	if s.options.UCount <= 0 || s.options.VCount <= 0 {
		s.locker.Unlock()
		l.Verbose().Println("drag ignored, empty grid")
		return
	}

	uStep, vStep := Step(deltaX, deltaY, s.surface.Size(), s.options.UCount, s.options.VCount)

	s.currentU = wrap(s.currentU+uStep, s.options.UCount)
	s.currentV = clamp(s.currentV+vStep, 0, s.options.VCount-1)

	event, ok := s.render()
	s.publish(event, ok)
}

// SetView jumps to (u, v) with the same wrap and clamp rules as dragging.
func (s *Viewer) SetView(u, v int) {
	s.locker.Lock()
	if s.options.UCount <= 0 || s.options.VCount <= 0 {
		s.locker.Unlock()
		return
	}

	s.currentU = wrap(u, s.options.UCount)
	s.currentV = clamp(v, 0, s.options.VCount-1)

	event, ok := s.render()
	s.publish(event, ok)
}

func (s *Viewer) RequestFullscreen() error {
	if !s.options.AllowFullscreen {
		return ErrFullscreenDisabled
	}
	s.locker.Lock()
	s.publish(Event{Kind: EventFullscreen, U: s.currentU, V: s.currentV}, true)
	return nil
}

// Subscribe registers listener for viewer events, the returned func removes it.
func (s *Viewer) Subscribe(listener Listener) func() {
	s.listenersLocker.Lock()
	defer s.listenersLocker.Unlock()

	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = listener

	return func() {
		s.listenersLocker.Lock()
		defer s.listenersLocker.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Viewer) emit(e Event) {
	s.listenersLocker.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	s.listenersLocker.Unlock()

	for _, listener := range listeners {
		listener(e)
	}
}

func (s *Viewer) Close() error {
	s.locker.Lock()
	defer s.locker.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.closed = true
	s.cancel()
	s.container.Remove(s.surface)

	return nil
}
