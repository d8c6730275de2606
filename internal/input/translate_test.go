package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nicky-ayoub/splitview/internal/layout"
	"github.com/nicky-ayoub/splitview/internal/splitview"
)

var bounds = layout.Rect{X: 100, Y: 100, W: 400, H: 300}

func ev(kind splitview.EventKind, x float64) splitview.Event {
	return splitview.Event{Kind: kind, ClientX: x}
}

func TestMousePressInsideStartsDrag(t *testing.T) {
	tr := NewTranslator()

	got := tr.Translate(InputState{MouseX: 200, MouseY: 200, LeftJustPressed: true}, bounds)

	assert.Equal(t, []splitview.Event{ev(splitview.PointerDown, 200)}, got.Local)
	assert.Empty(t, got.Global)

	got = tr.Translate(InputState{MouseX: 210, MouseY: 200}, bounds)
	assert.Equal(t, []splitview.Event{ev(splitview.PointerMove, 210)}, got.Local)
}

func TestMousePressOutsideIsIgnored(t *testing.T) {
	tr := NewTranslator()

	got := tr.Translate(InputState{MouseX: 10, MouseY: 10, LeftJustPressed: true}, bounds)

	assert.Empty(t, got.Local)
	assert.Empty(t, got.Global)
}

func TestMouseMoveOnlyWhenChangedAndInside(t *testing.T) {
	tr := NewTranslator()
	tr.Translate(InputState{MouseX: 200, MouseY: 200}, bounds)

	got := tr.Translate(InputState{MouseX: 200, MouseY: 200}, bounds)
	assert.Empty(t, got.Local)

	got = tr.Translate(InputState{MouseX: 250, MouseY: 200}, bounds)
	assert.Equal(t, []splitview.Event{ev(splitview.PointerMove, 250)}, got.Local)

	got = tr.Translate(InputState{MouseX: 700, MouseY: 200}, bounds)
	assert.Empty(t, got.Local)
}

func TestMouseReleaseIsGlobal(t *testing.T) {
	tr := NewTranslator()
	tr.Translate(InputState{MouseX: 200, MouseY: 200}, bounds)

	got := tr.Translate(InputState{MouseX: 900, MouseY: 900, LeftJustReleased: true}, bounds)

	assert.Empty(t, got.Local)
	assert.Equal(t, []splitview.Event{ev(splitview.PointerUp, 900)}, got.Global)
}

func TestTouchLifecycle(t *testing.T) {
	tr := NewTranslator()
	// Park the mouse so it does not contribute events.
	base := InputState{MouseX: -1, MouseY: -1}

	in := base
	in.Touches = []Touch{{ID: 1, X: 150, Y: 150, JustPressed: true}}
	got := tr.Translate(in, bounds)
	assert.Equal(t, []splitview.Event{ev(splitview.TouchStart, 150)}, got.Local)

	in = base
	in.Touches = []Touch{{ID: 1, X: 150, Y: 150}}
	got = tr.Translate(in, bounds)
	assert.Empty(t, got.Local)

	// Moving outside the view still tracks, as the touch began inside.
	in = base
	in.Touches = []Touch{{ID: 1, X: 800, Y: 150}}
	got = tr.Translate(in, bounds)
	assert.Equal(t, []splitview.Event{ev(splitview.TouchMove, 800)}, got.Local)

	in = base
	in.ReleasedTouches = []int{1}
	got = tr.Translate(in, bounds)
	assert.Empty(t, got.Local)
	assert.Equal(t, []splitview.Event{ev(splitview.TouchEnd, 800)}, got.Global)
}

func TestTouchStartedOutsideDoesNotMove(t *testing.T) {
	tr := NewTranslator()
	base := InputState{MouseX: -1, MouseY: -1}

	in := base
	in.Touches = []Touch{{ID: 3, X: 10, Y: 10, JustPressed: true}}
	assert.Empty(t, tr.Translate(in, bounds).Local)

	in = base
	in.Touches = []Touch{{ID: 3, X: 200, Y: 200}}
	assert.Empty(t, tr.Translate(in, bounds).Local)
}

func TestTouchMoveUsesFirstTouch(t *testing.T) {
	tr := NewTranslator()
	base := InputState{MouseX: -1, MouseY: -1}

	in := base
	in.Touches = []Touch{
		{ID: 1, X: 150, Y: 150, JustPressed: true},
		{ID: 2, X: 300, Y: 150, JustPressed: true},
	}
	got := tr.Translate(in, bounds)
	assert.Equal(t, []splitview.Event{
		ev(splitview.TouchStart, 150),
		ev(splitview.TouchStart, 300),
	}, got.Local)

	// Only the second finger moves; the move reports the first.
	in = base
	in.Touches = []Touch{{ID: 1, X: 150, Y: 150}, {ID: 2, X: 350, Y: 150}}
	got = tr.Translate(in, bounds)
	assert.Equal(t, []splitview.Event{ev(splitview.TouchMove, 150)}, got.Local)
}

func TestReset(t *testing.T) {
	tr := NewTranslator()
	tr.Translate(InputState{MouseX: 200, MouseY: 200, Touches: []Touch{{ID: 1, X: 150, Y: 150, JustPressed: true}}}, bounds)

	tr.Reset()

	// The cursor position is learned again without a move.
	got := tr.Translate(InputState{MouseX: 200, MouseY: 200}, bounds)
	assert.Empty(t, got.Local)

	got = tr.Translate(InputState{MouseX: 240, MouseY: 200}, bounds)
	assert.Equal(t, []splitview.Event{ev(splitview.PointerMove, 240)}, got.Local)

	// The touch was forgotten: it is new again.
	got = tr.Translate(InputState{MouseX: 240, MouseY: 200, Touches: []Touch{{ID: 1, X: 150, Y: 150}}}, bounds)
	assert.Equal(t, []splitview.Event{ev(splitview.TouchStart, 150)}, got.Local)
}

// A click without motion right after the view was replaced must not jump
// the divider to the cursor.
func TestMotionlessClickAfterResetKeepsPosition(t *testing.T) {
	tr := NewTranslator()
	tr.Translate(InputState{MouseX: 300, MouseY: 200}, bounds)

	v, err := splitview.New(
		splitview.ImagePair{Before: "b.png", After: "a.png"},
		splitview.MeasureFunc(func() (splitview.Viewport, bool) { return bounds.Viewport(), true }),
		splitview.Options{},
	)
	assert.NoError(t, err)
	unmount, err := v.Mount(splitview.NewReleaseScope())
	assert.NoError(t, err)
	defer unmount()
	tr.Reset()

	for _, e := range tr.Translate(InputState{MouseX: 200, MouseY: 200, LeftJustPressed: true}, bounds).Local {
		v.Handle(e)
	}
	assert.Equal(t, splitview.Dragging, v.State())
	assert.Equal(t, splitview.InitialPosition, v.Position())
}

// Feeding translated events into a view end to end: a drag that is released
// outside the window leaves the divider where it was.
func TestTranslateDrivesView(t *testing.T) {
	tr := NewTranslator()
	scope := splitview.NewReleaseScope()
	v, err := splitview.New(
		splitview.ImagePair{Before: "b.png", After: "a.png"},
		splitview.MeasureFunc(func() (splitview.Viewport, bool) { return bounds.Viewport(), true }),
		splitview.Options{},
	)
	assert.NoError(t, err)
	unmount, err := v.Mount(scope)
	assert.NoError(t, err)
	defer unmount()

	apply := func(in InputState) {
		evs := tr.Translate(in, bounds)
		for _, e := range evs.Local {
			v.Handle(e)
		}
		for _, e := range evs.Global {
			scope.Dispatch(e)
		}
	}

	apply(InputState{MouseX: 300, MouseY: 200, LeftJustPressed: true})
	apply(InputState{MouseX: 220, MouseY: 200})
	assert.Equal(t, splitview.Dragging, v.State())
	assert.Equal(t, 30.0, v.Position())

	apply(InputState{MouseX: 2000, MouseY: 2000, LeftJustReleased: true})
	assert.Equal(t, splitview.Idle, v.State())
	assert.Equal(t, 30.0, v.Position())
}
