package spin

type EventType string

const (
	MouseDown   EventType = "mousedown"
	MouseMove   EventType = "mousemove"
	MouseUp     EventType = "mouseup"
	MouseLeave  EventType = "mouseleave"
	TouchStart  EventType = "touchstart"
	TouchMove   EventType = "touchmove"
	TouchEnd    EventType = "touchend"
	TouchCancel EventType = "touchcancel"
	DoubleClick EventType = "dblclick"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// InputEvent is one pointer sample in surface coordinates.
// Touch events carry their contact points in Touches, X/Y are ignored.
type InputEvent struct {
	Type    EventType `json:"type"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	Touches []Point   `json:"touches,omitempty"`
}

func (e InputEvent) IsTouch() bool {
	switch e.Type {
	case TouchStart, TouchMove, TouchEnd, TouchCancel:
		return true
	}
	return false
}

type Delta struct {
	X float64
	Y float64
}

// DragState is either Idle or Dragging.
type DragState interface {
	dragState()
}

type Idle struct{}

type Dragging struct {
	LastX float64
	LastY float64
}

func (Idle) dragState()     {}
func (Dragging) dragState() {}

// Transition applies one input event to a drag state.
// ok reports whether the event produced a delta to apply.
func Transition(state DragState, e InputEvent) (next DragState, delta Delta, ok bool) {
	if state == nil {
		state = Idle{}
	}

	switch e.Type {
	case MouseDown:
		return Dragging{LastX: e.X, LastY: e.Y}, Delta{}, false
	case MouseMove:
		return move(state, e.X, e.Y)
	case MouseUp, MouseLeave, TouchEnd, TouchCancel:
		return Idle{}, Delta{}, false
	case TouchStart:
		if len(e.Touches) != 1 {
			return state, Delta{}, false
		}
		return Dragging{LastX: e.Touches[0].X, LastY: e.Touches[0].Y}, Delta{}, false
	case TouchMove:
		if len(e.Touches) != 1 {
			return state, Delta{}, false
		}
		return move(state, e.Touches[0].X, e.Touches[0].Y)
	}

	return state, Delta{}, false
}

func move(state DragState, x, y float64) (DragState, Delta, bool) {
	dragging, ok := state.(Dragging)
	if !ok {
		return state, Delta{}, false
	}
	delta := Delta{X: x - dragging.LastX, Y: y - dragging.LastY}
	return Dragging{LastX: x, LastY: y}, delta, true
}
