package spin

import (
	"sync"
)

type Action int

const (
	ActionNone Action = iota
	ActionRotate
	ActionFullscreen
)

// Input turns a stream of pointer events from one source into drags on a viewer.
// Each source needs its own Input, the drag state is not shared.
type Input struct {
	viewer *Viewer
	locker sync.Locker
	state  DragState
}

func NewInput(viewer *Viewer) *Input {
	return &Input{
		viewer: viewer,
		locker: &sync.Mutex{},
		state:  Idle{},
	}
}

func (in *Input) State() DragState {
	in.locker.Lock()
	defer in.locker.Unlock()
	return in.state
}

func (in *Input) Handle(e InputEvent) Action {
	options := in.viewer.Options()

	if e.Type == DoubleClick {
		if options.AllowFullscreen {
			return ActionFullscreen
		}
		return ActionNone
	}

	if e.IsTouch() && !options.Touch {
		return ActionNone
	}

	in.locker.Lock()
	next, delta, ok := Transition(in.state, e)
	in.state = next
	in.locker.Unlock()

	if !ok {
		return ActionNone
	}

	in.viewer.HandleDrag(delta.X, delta.Y)

	return ActionRotate
}
