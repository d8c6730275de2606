package input

import (
	"github.com/nicky-ayoub/splitview/internal/layout"
	"github.com/nicky-ayoub/splitview/internal/splitview"
)

// Events is the result of translating one frame. Local events hit the view
// and go to SplitView.Handle; Global events are releases for the
// ReleaseScope. Both are in delivery order.
type Events struct {
	Local  []splitview.Event
	Global []splitview.Event
}

// Translator keeps the little state needed between frames to turn polled
// input into discrete events: the last cursor position and, per touch, its
// last position and whether it began inside the view.
type Translator struct {
	mouseX, mouseY int
	mouseSeen      bool

	touches map[int]touchTrack
}

type touchTrack struct {
	x, y   int
	inside bool
}

// NewTranslator creates a Translator with no history.
func NewTranslator() *Translator {
	return &Translator{touches: make(map[int]touchTrack)}
}

// Translate converts in into events against the view occupying bounds.
//
// Mouse: a press inside bounds is a PointerDown; a cursor move inside bounds
// is a PointerMove; a release anywhere is a global PointerUp. A press only
// arms the drag, so a click without motion leaves the divider alone.
//
// Touch: a new touch inside bounds is a TouchStart. When any touch moved, a
// TouchMove at the first active touch is produced if that touch began inside
// bounds. A lifted touch anywhere is a global TouchEnd.
func (t *Translator) Translate(in InputState, bounds layout.Rect) Events {
	var out Events

	mx, my := float64(in.MouseX), float64(in.MouseY)
	inside := bounds.Contains(mx, my)
	if in.LeftJustPressed && inside {
		out.Local = append(out.Local, splitview.Event{Kind: splitview.PointerDown, ClientX: mx})
	}
	// The first frame after a reset only records where the cursor is.
	moved := t.mouseSeen && (in.MouseX != t.mouseX || in.MouseY != t.mouseY)
	if moved && inside {
		out.Local = append(out.Local, splitview.Event{Kind: splitview.PointerMove, ClientX: mx})
	}
	t.mouseX, t.mouseY, t.mouseSeen = in.MouseX, in.MouseY, true
	if in.LeftJustReleased {
		out.Global = append(out.Global, splitview.Event{Kind: splitview.PointerUp, ClientX: mx})
	}

	anyTouchMoved := false
	for _, tc := range in.Touches {
		track, known := t.touches[tc.ID]
		if tc.JustPressed || !known {
			track = touchTrack{x: tc.X, y: tc.Y, inside: bounds.Contains(float64(tc.X), float64(tc.Y))}
			t.touches[tc.ID] = track
			if track.inside {
				out.Local = append(out.Local, splitview.Event{Kind: splitview.TouchStart, ClientX: float64(tc.X)})
			}
			continue
		}
		if tc.X != track.x || tc.Y != track.y {
			anyTouchMoved = true
			track.x, track.y = tc.X, tc.Y
			t.touches[tc.ID] = track
		}
	}
	if anyTouchMoved && len(in.Touches) > 0 {
		primary := in.Touches[0]
		if t.touches[primary.ID].inside {
			out.Local = append(out.Local, splitview.Event{Kind: splitview.TouchMove, ClientX: float64(primary.X)})
		}
	}

	for _, id := range in.ReleasedTouches {
		track := t.touches[id]
		delete(t.touches, id)
		out.Global = append(out.Global, splitview.Event{Kind: splitview.TouchEnd, ClientX: float64(track.x)})
	}

	return out
}

// Reset forgets all history, for example after the view was replaced.
func (t *Translator) Reset() {
	t.mouseSeen = false
	clear(t.touches)
}
