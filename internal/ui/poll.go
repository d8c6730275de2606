package ui

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/nicky-ayoub/splitview/internal/input"
)

// Poller gathers raw ebiten input into an input.InputState once per frame.
// It remembers the order in which touches began so that the earliest active
// touch is always reported first.
type Poller struct {
	touchIDs    []ebiten.TouchID
	justPressed []ebiten.TouchID
	released    []ebiten.TouchID
	order       []ebiten.TouchID
}

// NewPoller creates a Poller.
func NewPoller() *Poller {
	return &Poller{}
}

// Poll reads the current frame's keyboard, mouse and touch state.
func (p *Poller) Poll() input.InputState {
	mx, my := ebiten.CursorPosition()
	in := input.InputState{
		Quit:             inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		ToggleFullscreen: inpututil.IsKeyJustPressed(ebiten.KeyF11),
		NextPair:         inpututil.IsKeyJustPressed(ebiten.KeyRight),
		PrevPair:         inpututil.IsKeyJustPressed(ebiten.KeyLeft),
		Reload:           inpututil.IsKeyJustPressed(ebiten.KeyR),
		ToggleStrip:      inpututil.IsKeyJustPressed(ebiten.KeyT),

		// Mouse state
		MouseX:           mx,
		MouseY:           my,
		LeftJustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		LeftJustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}

	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	p.justPressed = inpututil.AppendJustPressedTouchIDs(p.justPressed[:0])
	p.released = inpututil.AppendJustReleasedTouchIDs(p.released[:0])

	for _, id := range p.released {
		in.ReleasedTouches = append(in.ReleasedTouches, int(id))
	}
	p.order = slices.DeleteFunc(p.order, func(id ebiten.TouchID) bool {
		return !slices.Contains(p.touchIDs, id)
	})
	for _, id := range p.touchIDs {
		if !slices.Contains(p.order, id) {
			p.order = append(p.order, id)
		}
	}
	for _, id := range p.order {
		x, y := ebiten.TouchPosition(id)
		in.Touches = append(in.Touches, input.Touch{
			ID:          int(id),
			X:           x,
			Y:           y,
			JustPressed: slices.Contains(p.justPressed, id),
		})
	}
	return in
}
