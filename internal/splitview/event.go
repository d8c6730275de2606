package splitview

import "fmt"

// InteractionState is the drag state of a view.
type InteractionState int

const (
	Idle InteractionState = iota
	Dragging
)

func (s InteractionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return fmt.Sprintf("InteractionState(%d)", int(s))
	}
}

// EventKind identifies the platform input an Event came from.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	TouchStart
	TouchMove
	TouchEnd
)

var eventKindNames = [...]string{
	PointerDown: "pointer-down",
	PointerMove: "pointer-move",
	PointerUp:   "pointer-up",
	TouchStart:  "touch-start",
	TouchMove:   "touch-move",
	TouchEnd:    "touch-end",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// IsPress reports whether k arms a drag.
func (k EventKind) IsPress() bool {
	return k == PointerDown || k == TouchStart
}

// IsRelease reports whether k ends a drag.
func (k EventKind) IsRelease() bool {
	return k == PointerUp || k == TouchEnd
}

// Event is a single pointer or touch input. ClientX is the horizontal client
// coordinate; for touch input it is the coordinate of the first touch point.
type Event struct {
	Kind    EventKind
	ClientX float64
}
