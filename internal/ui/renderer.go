package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/nicky-ayoub/splitview/internal/layout"
	"github.com/nicky-ayoub/splitview/internal/splitview"
)

// Debug font metrics used by ebitenutil.DebugPrintAt.
const (
	debugCharWidth  = 6
	debugLineHeight = 16
)

// Labels are the captions drawn in the bottom corners of the view.
type Labels struct {
	Before string
	After  string
}

// SplitViewRenderer draws a split view: the after image filling the
// viewport, the before image cropped to the divider, the handle with its
// grip and the two corner labels.
type SplitViewRenderer struct {
	before, after *ebiten.Image
	labels        Labels
	theme         Theme

	snap splitview.Snapshot
}

// NewSplitViewRenderer creates a renderer for one mounted pair. The images
// are owned by the renderer from here on; see Dispose.
func NewSplitViewRenderer(before, after *ebiten.Image, labels Labels, styleClass string) *SplitViewRenderer {
	return &SplitViewRenderer{
		before: before,
		after:  after,
		labels: Labels{Before: strings.ToUpper(labels.Before), After: strings.ToUpper(labels.After)},
		theme:  ThemeFor(styleClass),
		snap:   splitview.Snapshot{Position: splitview.InitialPosition},
	}
}

// Observe keeps the renderer in step with v: every change v reports is
// stored and picked up by the next Draw.
func (r *SplitViewRenderer) Observe(v *splitview.SplitView) (cancel func()) {
	r.snap = v.Snapshot()
	return v.Subscribe(func(s splitview.Snapshot) {
		r.snap = s
	})
}

// Snapshot returns the state the next Draw will render.
func (r *SplitViewRenderer) Snapshot() splitview.Snapshot {
	return r.snap
}

// Dispose releases the GPU images. It must be called from the game loop,
// outside of Draw.
func (r *SplitViewRenderer) Dispose() {
	if r.before != nil {
		r.before.Deallocate()
		r.before = nil
	}
	if r.after != nil {
		r.after.Deallocate()
		r.after = nil
	}
}

// Draw renders the view into vp on screen.
func (r *SplitViewRenderer) Draw(screen *ebiten.Image, vp layout.Rect) {
	if vp.Empty() {
		return
	}
	view := screen.SubImage(vp.Image()).(*ebiten.Image)
	vector.DrawFilledRect(view, float32(vp.X), float32(vp.Y), float32(vp.W), float32(vp.H), r.theme.Background, false)

	drawCover(view, r.after, vp)

	split := layout.SplitAt(vp, r.snap.Position)
	if !split.Clip.Empty() {
		clip := screen.SubImage(split.Clip.Image().Intersect(vp.Image())).(*ebiten.Image)
		// Drawn at full viewport size so the clip crops rather than squashes.
		drawCover(clip, r.before, vp)
	}

	r.drawHandle(view, vp, split)
	r.drawLabels(view, vp)
}

func (r *SplitViewRenderer) drawHandle(dst *ebiten.Image, vp layout.Rect, split layout.Split) {
	x := float32(split.HandleX)
	top, h := float32(vp.Y), float32(vp.H)
	const w = float32(layout.HandleWidth)

	vector.DrawFilledRect(dst, x-w/2-2, top, w+4, h, r.theme.Shadow, false)
	vector.DrawFilledRect(dst, x-w/2, top, w, h, r.theme.Handle, false)

	gx, gy := float32(split.GripX), float32(split.GripY)
	const radius = float32(layout.GripRadius)
	vector.DrawFilledCircle(dst, gx, gy, radius+2, r.theme.Shadow, true)
	vector.DrawFilledCircle(dst, gx, gy, radius, r.theme.Grip, true)

	// Left/right arrow icon.
	const arm, head = radius / 2, radius / 4
	vector.StrokeLine(dst, gx-arm, gy, gx+arm, gy, 2, r.theme.GripIcon, true)
	vector.StrokeLine(dst, gx-arm, gy, gx-arm+head, gy-head, 2, r.theme.GripIcon, true)
	vector.StrokeLine(dst, gx-arm, gy, gx-arm+head, gy+head, 2, r.theme.GripIcon, true)
	vector.StrokeLine(dst, gx+arm, gy, gx+arm-head, gy-head, 2, r.theme.GripIcon, true)
	vector.StrokeLine(dst, gx+arm, gy, gx+arm-head, gy+head, 2, r.theme.GripIcon, true)
}

func (r *SplitViewRenderer) drawLabels(dst *ebiten.Image, vp layout.Rect) {
	bw, aw := labelWidth(r.labels.Before), labelWidth(r.labels.After)
	h := float64(debugLineHeight + 2*layout.LabelPadding)
	before, after := layout.Labels(vp, bw, aw, h)

	r.drawLabel(dst, r.labels.Before, before, bw, h)
	r.drawLabel(dst, r.labels.After, after, aw, h)
}

func (r *SplitViewRenderer) drawLabel(dst *ebiten.Image, text string, at [2]float64, w, h float64) {
	if text == "" {
		return
	}
	vector.DrawFilledRect(dst, float32(at[0]), float32(at[1]), float32(w), float32(h), r.theme.LabelBack, false)
	ebitenutil.DebugPrintAt(dst, text, int(at[0])+layout.LabelPadding, int(at[1])+layout.LabelPadding)
}

func labelWidth(text string) float64 {
	return float64(utf8.RuneCountInString(text)*debugCharWidth + 2*layout.LabelPadding)
}

// drawCover draws img onto dst so that it covers vp, centred and cropped.
func drawCover(dst, img *ebiten.Image, vp layout.Rect) {
	if img == nil {
		return
	}
	b := img.Bounds()
	tr := layout.Cover(b.Dx(), b.Dy(), vp)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(tr.Scale, tr.Scale)
	op.GeoM.Translate(tr.TX, tr.TY)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}
