package splitview

import "errors"

// InitialPosition is where the divider sits when a view is mounted.
const InitialPosition = 50.0

var (
	ErrMissingImage   = errors.New("splitview: before and after images are required")
	ErrNoMeasurer     = errors.New("splitview: a measurer is required")
	ErrNoScope        = errors.New("splitview: a release scope is required")
	ErrAlreadyMounted = errors.New("splitview: view is already mounted")
)

// ImagePair references the two images being compared. Before is the clipped
// foreground, After fills the whole view.
type ImagePair struct {
	Before string
	After  string
}

// Options tune a view. The zero value is the recommended configuration.
type Options struct {
	// StyleClass is a cosmetic hook for the renderer.
	StyleClass string

	// TouchMoveIgnoresDrag lets a touch move update the divider while the
	// view is Idle. Mouse moves always require an active drag.
	TouchMoveIgnoresDrag bool
}

// Snapshot is the render state of a view at a point in time.
type Snapshot struct {
	Position float64
	State    InteractionState
}

type observer struct {
	id uint64
	fn func(Snapshot)
}

// SplitView tracks the divider of a before/after comparison.
type SplitView struct {
	pair     ImagePair
	opts     Options
	measurer Measurer

	position float64
	state    InteractionState
	mounted  bool

	observers []observer
	nextObsID uint64
}

// New creates an unmounted view for pair. m is consulted on every move.
func New(pair ImagePair, m Measurer, opts Options) (*SplitView, error) {
	if pair.Before == "" || pair.After == "" {
		return nil, ErrMissingImage
	}
	if m == nil {
		return nil, ErrNoMeasurer
	}
	return &SplitView{
		pair:     pair,
		opts:     opts,
		measurer: m,
		position: InitialPosition,
		state:    Idle,
	}, nil
}

// Pair returns the images the view was created with.
func (v *SplitView) Pair() ImagePair { return v.pair }

// StyleClass returns the cosmetic style hook.
func (v *SplitView) StyleClass() string { return v.opts.StyleClass }

// Position returns the divider position in [0, 100].
func (v *SplitView) Position() float64 { return v.position }

// State returns the current interaction state.
func (v *SplitView) State() InteractionState { return v.state }

// Mounted reports whether the view is attached to a release scope.
func (v *SplitView) Mounted() bool { return v.mounted }

// Snapshot returns the current render state.
func (v *SplitView) Snapshot() Snapshot {
	return Snapshot{Position: v.position, State: v.state}
}

// Mount attaches the view to scope, centring the divider and resetting the
// interaction state. The returned unmount function ends any drag, notifying
// observers, and detaches the release listener. It is safe to call more than
// once and is meant to be deferred or kept by whoever owns the view's
// lifetime.
func (v *SplitView) Mount(scope *ReleaseScope) (unmount func(), err error) {
	if scope == nil {
		return nil, ErrNoScope
	}
	if v.mounted {
		return nil, ErrAlreadyMounted
	}

	remove := scope.Listen(func(ev Event) {
		v.release()
	})
	v.mounted = true
	v.position = InitialPosition
	v.state = Idle
	v.notify()

	done := false
	return func() {
		if done {
			return
		}
		done = true
		// A drag in progress ends here, and observers hear about it.
		v.release()
		remove()
		v.mounted = false
	}, nil
}

// Handle applies a locally delivered event. Presses and moves are expected
// only when they hit the view; releases are normally routed through the
// ReleaseScope but are accepted here too. Events reaching an unmounted view
// are dropped.
func (v *SplitView) Handle(ev Event) {
	if !v.mounted {
		return
	}
	switch ev.Kind {
	case PointerDown, TouchStart:
		v.setState(Dragging)
	case PointerMove:
		if v.state == Dragging {
			v.move(ev.ClientX)
		}
	case TouchMove:
		if v.state == Dragging || v.opts.TouchMoveIgnoresDrag {
			v.move(ev.ClientX)
		}
	case PointerUp, TouchEnd:
		v.release()
	}
}

// Subscribe registers fn to be called with the new snapshot after every
// change to the position or the interaction state. The returned function
// cancels the subscription.
func (v *SplitView) Subscribe(fn func(Snapshot)) (cancel func()) {
	v.nextObsID++
	id := v.nextObsID
	v.observers = append(v.observers, observer{id: id, fn: fn})
	return func() {
		for i := range v.observers {
			if v.observers[i].id == id {
				v.observers = append(v.observers[:i], v.observers[i+1:]...)
				return
			}
		}
	}
}

func (v *SplitView) release() {
	if v.state == Idle {
		return
	}
	v.setState(Idle)
}

// move re-measures the viewport and updates the divider. An unmeasurable
// viewport leaves the position untouched.
func (v *SplitView) move(clientX float64) {
	vp, ok := v.measurer.Measure()
	if !ok {
		return
	}
	pct, ok := Percentage(clientX, vp)
	if !ok {
		return
	}
	v.setPosition(pct)
}

func (v *SplitView) setPosition(pct float64) {
	if pct == v.position {
		return
	}
	v.position = pct
	v.notify()
}

func (v *SplitView) setState(s InteractionState) {
	if s == v.state {
		return
	}
	v.state = s
	v.notify()
}

func (v *SplitView) notify() {
	snap := v.Snapshot()
	observers := make([]observer, len(v.observers))
	copy(observers, v.observers)
	for _, o := range observers {
		o.fn(snap)
	}
}
