package splitview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMeasurer struct {
	vp    Viewport
	ok    bool
	calls int
}

func (m *fakeMeasurer) Measure() (Viewport, bool) {
	m.calls++
	return m.vp, m.ok
}

var testPair = ImagePair{Before: "before.jpg", After: "after.jpg"}

func newMountedView(t *testing.T, vp Viewport, opts Options) (*SplitView, *fakeMeasurer, *ReleaseScope) {
	t.Helper()
	m := &fakeMeasurer{vp: vp, ok: true}
	v, err := New(testPair, m, opts)
	require.NoError(t, err)

	scope := NewReleaseScope()
	unmount, err := v.Mount(scope)
	require.NoError(t, err)
	t.Cleanup(unmount)
	return v, m, scope
}

func TestNewValidatesInputs(t *testing.T) {
	m := &fakeMeasurer{ok: true}

	_, err := New(ImagePair{After: "a.jpg"}, m, Options{})
	assert.ErrorIs(t, err, ErrMissingImage)

	_, err = New(ImagePair{Before: "b.jpg"}, m, Options{})
	assert.ErrorIs(t, err, ErrMissingImage)

	_, err = New(testPair, nil, Options{})
	assert.ErrorIs(t, err, ErrNoMeasurer)

	v, err := New(testPair, m, Options{StyleClass: "rounded"})
	require.NoError(t, err)
	assert.Equal(t, testPair, v.Pair())
	assert.Equal(t, "rounded", v.StyleClass())
	assert.Equal(t, InitialPosition, v.Position())
	assert.Equal(t, Idle, v.State())
	assert.False(t, v.Mounted())
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name    string
		vp      Viewport
		clientX float64
		want    float64
	}{
		{"left edge", Viewport{Left: 100, Width: 400}, 100, 0},
		{"centre", Viewport{Left: 100, Width: 400}, 300, 50},
		{"clamped from 150", Viewport{Left: 100, Width: 400}, 700, 100},
		{"clamped from -25", Viewport{Left: 0, Width: 200}, -50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _, _ := newMountedView(t, tt.vp, Options{})
			v.Handle(Event{Kind: PointerDown})
			v.Handle(Event{Kind: PointerMove, ClientX: tt.clientX})
			assert.Equal(t, tt.want, v.Position())
		})
	}
}

func TestReleaseOutsideRetainsPosition(t *testing.T) {
	v, _, scope := newMountedView(t, Viewport{Left: 0, Width: 200}, Options{})

	v.Handle(Event{Kind: PointerDown, ClientX: 100})
	require.Equal(t, Dragging, v.State())
	v.Handle(Event{Kind: PointerMove, ClientX: 60})
	require.Equal(t, 30.0, v.Position())

	// The release happens far outside the view and is only seen globally.
	scope.Dispatch(Event{Kind: PointerUp, ClientX: 5000})

	assert.Equal(t, Idle, v.State())
	assert.Equal(t, 30.0, v.Position())
}

func TestStateMachine(t *testing.T) {
	v, _, scope := newMountedView(t, Viewport{Left: 0, Width: 100}, Options{})

	// Release while idle is a no-op.
	var snaps []Snapshot
	cancel := v.Subscribe(func(s Snapshot) { snaps = append(snaps, s) })
	defer cancel()
	scope.Dispatch(Event{Kind: PointerUp})
	assert.Equal(t, Idle, v.State())
	assert.Empty(t, snaps)

	v.Handle(Event{Kind: PointerDown})
	assert.Equal(t, Dragging, v.State())

	scope.Dispatch(Event{Kind: TouchEnd})
	assert.Equal(t, Idle, v.State())

	v.Handle(Event{Kind: TouchStart})
	assert.Equal(t, Dragging, v.State())

	// Any release ends the drag, whichever modality started it.
	scope.Dispatch(Event{Kind: PointerUp})
	assert.Equal(t, Idle, v.State())

	assert.Equal(t, []Snapshot{
		{Position: 50, State: Dragging},
		{Position: 50, State: Idle},
		{Position: 50, State: Dragging},
		{Position: 50, State: Idle},
	}, snaps)
}

func TestMouseMoveRequiresDrag(t *testing.T) {
	v, m, _ := newMountedView(t, Viewport{Left: 0, Width: 100}, Options{})

	v.Handle(Event{Kind: PointerMove, ClientX: 10})
	assert.Equal(t, InitialPosition, v.Position())
	assert.Zero(t, m.calls, "idle moves must not measure")
}

func TestTouchMoveRequiresDragByDefault(t *testing.T) {
	v, _, scope := newMountedView(t, Viewport{Left: 0, Width: 100}, Options{})

	v.Handle(Event{Kind: TouchMove, ClientX: 10})
	assert.Equal(t, InitialPosition, v.Position())

	v.Handle(Event{Kind: TouchStart, ClientX: 40})
	v.Handle(Event{Kind: TouchMove, ClientX: 10})
	assert.Equal(t, 10.0, v.Position())

	scope.Dispatch(Event{Kind: TouchEnd})
	v.Handle(Event{Kind: TouchMove, ClientX: 90})
	assert.Equal(t, 10.0, v.Position())
}

// With TouchMoveIgnoresDrag the view diverges from the default: a touch move
// updates the divider without a preceding touch start, while a mouse move
// still needs one.
func TestTouchMoveIgnoresDragParity(t *testing.T) {
	v, _, _ := newMountedView(t, Viewport{Left: 0, Width: 100}, Options{TouchMoveIgnoresDrag: true})

	v.Handle(Event{Kind: TouchMove, ClientX: 10})
	assert.Equal(t, 10.0, v.Position())
	assert.Equal(t, Idle, v.State())

	v.Handle(Event{Kind: PointerMove, ClientX: 80})
	assert.Equal(t, 10.0, v.Position())
}

func TestMoveRemeasuresEveryEvent(t *testing.T) {
	v, m, _ := newMountedView(t, Viewport{Left: 0, Width: 100}, Options{})

	v.Handle(Event{Kind: PointerDown})
	v.Handle(Event{Kind: PointerMove, ClientX: 50})
	assert.Equal(t, 50.0, v.Position())

	// Layout reflowed between events.
	m.vp = Viewport{Left: 50, Width: 200}
	v.Handle(Event{Kind: PointerMove, ClientX: 50})
	assert.Equal(t, 0.0, v.Position())
	assert.Equal(t, 2, m.calls)
}

func TestMoveIsIdempotent(t *testing.T) {
	v, _, _ := newMountedView(t, Viewport{Left: 100, Width: 400}, Options{})
	notified := 0
	v.Subscribe(func(Snapshot) { notified++ })

	v.Handle(Event{Kind: PointerDown})
	v.Handle(Event{Kind: PointerMove, ClientX: 220})
	first := v.Position()
	v.Handle(Event{Kind: PointerMove, ClientX: 220})

	assert.Equal(t, 30.0, first)
	assert.Equal(t, first, v.Position())
	assert.Equal(t, 2, notified, "one for the press, one for the first move")
}

func TestUnmeasurableViewportSkipsMove(t *testing.T) {
	v, m, _ := newMountedView(t, Viewport{Left: 0, Width: 100}, Options{})
	v.Handle(Event{Kind: PointerDown})
	v.Handle(Event{Kind: PointerMove, ClientX: 20})
	require.Equal(t, 20.0, v.Position())

	m.ok = false
	v.Handle(Event{Kind: PointerMove, ClientX: 70})
	assert.Equal(t, 20.0, v.Position())

	m.ok = true
	m.vp = Viewport{Left: 0, Width: 0}
	v.Handle(Event{Kind: PointerMove, ClientX: 70})
	assert.Equal(t, 20.0, v.Position())

	m.vp = Viewport{Left: 0, Width: 100}
	v.Handle(Event{Kind: PointerMove, ClientX: 70})
	assert.Equal(t, 70.0, v.Position())
	assert.Equal(t, Dragging, v.State())
}

func TestMountLifecycle(t *testing.T) {
	m := &fakeMeasurer{vp: Viewport{Left: 0, Width: 100}, ok: true}
	v, err := New(testPair, m, Options{})
	require.NoError(t, err)

	_, err = v.Mount(nil)
	assert.ErrorIs(t, err, ErrNoScope)

	// Events before mount are dropped.
	v.Handle(Event{Kind: PointerDown})
	assert.Equal(t, Idle, v.State())

	scope := NewReleaseScope()
	unmount, err := v.Mount(scope)
	require.NoError(t, err)
	assert.True(t, v.Mounted())
	assert.Equal(t, 1, scope.Len())

	_, err = v.Mount(scope)
	assert.ErrorIs(t, err, ErrAlreadyMounted)
	assert.Equal(t, 1, scope.Len())

	v.Handle(Event{Kind: PointerDown})
	v.Handle(Event{Kind: PointerMove, ClientX: 80})
	require.Equal(t, 80.0, v.Position())

	unmount()
	unmount()
	assert.False(t, v.Mounted())
	assert.Equal(t, 0, scope.Len())

	v.Handle(Event{Kind: PointerDown})
	assert.Equal(t, Idle, v.State())

	// Remounting starts over from the centre.
	unmount, err = v.Mount(scope)
	require.NoError(t, err)
	defer unmount()
	assert.Equal(t, InitialPosition, v.Position())
	assert.Equal(t, Idle, v.State())
	assert.Equal(t, 1, scope.Len())
}

func TestUnmountDuringDragNotifiesIdle(t *testing.T) {
	m := &fakeMeasurer{vp: Viewport{Left: 0, Width: 100}, ok: true}
	v, err := New(testPair, m, Options{})
	require.NoError(t, err)

	var last Snapshot
	v.Subscribe(func(s Snapshot) { last = s })

	unmount, err := v.Mount(NewReleaseScope())
	require.NoError(t, err)
	v.Handle(Event{Kind: PointerDown})
	v.Handle(Event{Kind: PointerMove, ClientX: 30})
	require.Equal(t, Dragging, last.State)

	unmount()
	assert.Equal(t, Idle, v.State())
	assert.Equal(t, Snapshot{Position: 30, State: Idle}, last)

	// Unmounting an idle view does not notify again.
	notified := 0
	v.Subscribe(func(Snapshot) { notified++ })
	unmount()
	assert.Zero(t, notified)
}

func TestRemountsDoNotLeakListeners(t *testing.T) {
	scope := NewReleaseScope()
	m := &fakeMeasurer{vp: Viewport{Left: 0, Width: 100}, ok: true}

	for i := 0; i < 10; i++ {
		v, err := New(testPair, m, Options{})
		require.NoError(t, err)
		func() {
			unmount, err := v.Mount(scope)
			require.NoError(t, err)
			defer unmount()
			v.Handle(Event{Kind: PointerDown})
		}()
	}
	assert.Equal(t, 0, scope.Len())
}

func TestSubscribeCancel(t *testing.T) {
	v, _, _ := newMountedView(t, Viewport{Left: 0, Width: 100}, Options{})
	var got []Snapshot
	cancel := v.Subscribe(func(s Snapshot) { got = append(got, s) })

	v.Handle(Event{Kind: PointerDown})
	cancel()
	v.Handle(Event{Kind: PointerMove, ClientX: 10})

	assert.Equal(t, []Snapshot{{Position: 50, State: Dragging}}, got)
	assert.Equal(t, 10.0, v.Position())
}

func TestMountNotifiesInitialSnapshot(t *testing.T) {
	m := &fakeMeasurer{vp: Viewport{Left: 0, Width: 100}, ok: true}
	v, err := New(testPair, m, Options{})
	require.NoError(t, err)

	var got []Snapshot
	v.Subscribe(func(s Snapshot) { got = append(got, s) })

	unmount, err := v.Mount(NewReleaseScope())
	require.NoError(t, err)
	defer unmount()

	assert.Equal(t, []Snapshot{{Position: InitialPosition, State: Idle}}, got)
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "dragging", Dragging.String())
	assert.Equal(t, "InteractionState(7)", InteractionState(7).String())
	assert.Equal(t, "touch-move", TouchMove.String())
	assert.Equal(t, "EventKind(42)", EventKind(42).String())
	assert.True(t, TouchStart.IsPress())
	assert.False(t, TouchMove.IsPress())
	assert.True(t, PointerUp.IsRelease())
}
