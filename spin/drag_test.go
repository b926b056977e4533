package spin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionMouse(t *testing.T) {
	var state DragState = Idle{}

	state, _, ok := Transition(state, InputEvent{Type: MouseMove, X: 10, Y: 10})
	assert.False(t, ok)
	assert.Equal(t, Idle{}, state)

	state, _, ok = Transition(state, InputEvent{Type: MouseDown, X: 10, Y: 20})
	assert.False(t, ok)
	assert.Equal(t, Dragging{LastX: 10, LastY: 20}, state)

	state, delta, ok := Transition(state, InputEvent{Type: MouseMove, X: 15, Y: 18})
	require.True(t, ok)
	assert.Equal(t, Delta{X: 5, Y: -2}, delta)

	// deltas are incremental, measured from the previous sample
	state, delta, ok = Transition(state, InputEvent{Type: MouseMove, X: 16, Y: 18})
	require.True(t, ok)
	assert.Equal(t, Delta{X: 1, Y: 0}, delta)

	state, _, _ = Transition(state, InputEvent{Type: MouseUp})
	assert.Equal(t, Idle{}, state)
}

func TestTransitionLeaveStopsDragging(t *testing.T) {
	state, _, _ := Transition(nil, InputEvent{Type: MouseDown})
	state, _, _ = Transition(state, InputEvent{Type: MouseLeave})
	assert.Equal(t, Idle{}, state)

	_, _, ok := Transition(state, InputEvent{Type: MouseMove, X: 500})
	assert.False(t, ok)
}

func TestTransitionTouch(t *testing.T) {
	state, _, _ := Transition(Idle{}, InputEvent{Type: TouchStart, Touches: []Point{{X: 1, Y: 1}, {X: 2, Y: 2}}})
	assert.Equal(t, Idle{}, state)

	state, _, _ = Transition(state, InputEvent{Type: TouchStart, Touches: []Point{{X: 3, Y: 4}}})
	assert.Equal(t, Dragging{LastX: 3, LastY: 4}, state)

	_, _, ok := Transition(state, InputEvent{Type: TouchMove, Touches: []Point{{X: 9, Y: 9}, {X: 1, Y: 1}}})
	assert.False(t, ok)

	state, delta, ok := Transition(state, InputEvent{Type: TouchMove, Touches: []Point{{X: 13, Y: 4}}})
	require.True(t, ok)
	assert.Equal(t, Delta{X: 10}, delta)

	state, _, _ = Transition(state, InputEvent{Type: TouchCancel})
	assert.Equal(t, Idle{}, state)
}

func TestInputHandle(t *testing.T) {
	viewer, _ := newTestViewer(t, Options{ViewWidth: 180, UCount: 18, AllowFullscreen: true}, instantLoader)
	waitLoaded(t, viewer)

	input := NewInput(viewer)

	assert.Equal(t, ActionNone, input.Handle(InputEvent{Type: MouseDown, X: 0}))
	assert.Equal(t, ActionRotate, input.Handle(InputEvent{Type: MouseMove, X: 30}))
	u, _ := viewer.State()
	assert.Equal(t, 3, u)

	assert.Equal(t, ActionNone, input.Handle(InputEvent{Type: MouseLeave}))
	assert.Equal(t, ActionNone, input.Handle(InputEvent{Type: MouseMove, X: 180}))
	u, _ = viewer.State()
	assert.Equal(t, 3, u)

	assert.Equal(t, ActionFullscreen, input.Handle(InputEvent{Type: DoubleClick}))
}

func TestInputTouchDisabled(t *testing.T) {
	viewer, _ := newTestViewer(t, Options{ViewWidth: 180, UCount: 18}, instantLoader)
	waitLoaded(t, viewer)

	input := viewer.Input()
	assert.Equal(t, ActionNone, input.Handle(InputEvent{Type: TouchStart, Touches: []Point{{X: 0}}}))
	assert.Equal(t, ActionNone, input.Handle(InputEvent{Type: TouchMove, Touches: []Point{{X: 50}}}))
	assert.Equal(t, Idle{}, input.State())
	assert.Equal(t, ActionNone, input.Handle(InputEvent{Type: DoubleClick}))
}

func TestInputTouchEnabled(t *testing.T) {
	viewer, _ := newTestViewer(t, Options{ViewWidth: 180, UCount: 18, Touch: true}, instantLoader)
	waitLoaded(t, viewer)

	input := viewer.Input()
	input.Handle(InputEvent{Type: TouchStart, Touches: []Point{{X: 100}}})
	assert.Equal(t, ActionRotate, input.Handle(InputEvent{Type: TouchMove, Touches: []Point{{X: 80}}}))
	u, _ := viewer.State()
	assert.Equal(t, 16, u)
	input.Handle(InputEvent{Type: TouchEnd})
	assert.Equal(t, Idle{}, input.State())
}
