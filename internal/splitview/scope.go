package splitview

// ReleaseScope is the application-wide place where pointer-up and touch-end
// events are delivered, regardless of where on the surface they happen.
// Views acquire a listener on mount and give it back on unmount.
type ReleaseScope struct {
	listeners []releaseListener
	nextID    uint64
}

type releaseListener struct {
	id uint64
	fn func(Event)
}

// NewReleaseScope creates an empty scope.
func NewReleaseScope() *ReleaseScope {
	return &ReleaseScope{}
}

// Listen registers fn for release events and returns the function that
// removes it again. The returned function may be called more than once.
func (s *ReleaseScope) Listen(fn func(Event)) (remove func()) {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, releaseListener{id: id, fn: fn})

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		for i := range s.listeners {
			if s.listeners[i].id == id {
				copy(s.listeners[i:], s.listeners[i+1:])
				s.listeners[len(s.listeners)-1] = releaseListener{}
				s.listeners = s.listeners[:len(s.listeners)-1]
				return
			}
		}
	}
}

// Dispatch delivers ev to every registered listener in registration order.
// Events that are not releases are ignored. Listeners may remove themselves
// while being dispatched to.
func (s *ReleaseScope) Dispatch(ev Event) {
	if !ev.Kind.IsRelease() || len(s.listeners) == 0 {
		return
	}
	listeners := make([]releaseListener, len(s.listeners))
	copy(listeners, s.listeners)
	for _, l := range listeners {
		l.fn(ev)
	}
}

// Len returns the number of registered listeners.
func (s *ReleaseScope) Len() int {
	return len(s.listeners)
}
