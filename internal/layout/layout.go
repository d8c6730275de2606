// Package layout computes where the parts of a split view go on screen.
package layout

import (
	"image"

	"github.com/nicky-ayoub/splitview/internal/splitview"
)

// Sizes of the drawn parts of a split view, in pixels.
const (
	// HandleWidth is the width of the divider line.
	HandleWidth = 4
	// GripRadius is the radius of the round grip on the divider.
	GripRadius = 16
	// LabelInset is the distance of a label from the viewport's corner.
	LabelInset = 16
	// LabelPadding surrounds the label text inside its backdrop.
	LabelPadding = 6
)

// Rect is a rectangle in screen pixels.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether (x, y) lies inside r. The right and bottom edges
// are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Viewport returns the horizontal extent of r as the split view sees it.
func (r Rect) Viewport() splitview.Viewport {
	return splitview.Viewport{Left: r.X, Width: r.W}
}

// Image returns r as an integer rectangle, rounding outwards.
func (r Rect) Image() image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), ceil(r.X+r.W), ceil(r.Y+r.H))
}

func ceil(f float64) int {
	i := int(f)
	if float64(i) < f {
		i++
	}
	return i
}

// ViewportRect places the view inside a screen of the given size, inset by
// padding on the left, right and top and by padding plus reserveBottom at
// the bottom. The result is empty when there is no room left.
func ViewportRect(screenW, screenH int, padding, reserveBottom float64) Rect {
	r := Rect{
		X: padding,
		Y: padding,
		W: float64(screenW) - 2*padding,
		H: float64(screenH) - 2*padding - reserveBottom,
	}
	if r.W < 0 {
		r.W = 0
	}
	if r.H < 0 {
		r.H = 0
	}
	return r
}

// Transform is a uniform scale followed by a translation.
type Transform struct {
	Scale  float64
	TX, TY float64
}

// Cover returns the transform that scales an image of imgW x imgH to cover
// dst completely while keeping its aspect ratio, centred on dst. Overflow is
// expected to be clipped by the caller.
func Cover(imgW, imgH int, dst Rect) Transform {
	if imgW <= 0 || imgH <= 0 || dst.Empty() {
		return Transform{Scale: 1, TX: dst.X, TY: dst.Y}
	}
	scale := dst.W / float64(imgW)
	if s := dst.H / float64(imgH); s > scale {
		scale = s
	}
	w, h := float64(imgW)*scale, float64(imgH)*scale
	return Transform{
		Scale: scale,
		TX:    dst.X + (dst.W-w)/2,
		TY:    dst.Y + (dst.H-h)/2,
	}
}

// Split describes where the before image is revealed and where the handle
// is drawn for a divider position.
type Split struct {
	// Clip is the part of the viewport showing the before image.
	Clip Rect
	// HandleX is the screen x of the divider line.
	HandleX float64
	// Grip is the centre of the circular grip.
	GripX, GripY float64
}

// SplitAt lays out the divider at pct percent of vp.
func SplitAt(vp Rect, pct float64) Split {
	x := vp.X + vp.W*pct/100
	return Split{
		Clip:    Rect{X: vp.X, Y: vp.Y, W: x - vp.X, H: vp.H},
		HandleX: x,
		GripX:   x,
		GripY:   vp.Y + vp.H/2,
	}
}

// Labels returns the top-left corner of the before label (bottom left) and
// the after label (bottom right) given the size of each label box.
func Labels(vp Rect, beforeW, afterW, labelH float64) (before, after [2]float64) {
	y := vp.Y + vp.H - LabelInset - labelH
	before = [2]float64{vp.X + LabelInset, y}
	after = [2]float64{vp.X + vp.W - LabelInset - afterW, y}
	return before, after
}
