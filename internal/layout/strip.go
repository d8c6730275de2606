package layout

// Pair strip geometry, in pixels.
const (
	ThumbSize    = 80                         // Edge of a square thumbnail slot
	ThumbSpacing = 10                         // Gap between slots and around the row
	StripHeight  = ThumbSize + 2*ThumbSpacing // Screen height taken by the strip
)

// StripSlots returns the thumbnail slots of a strip of n thumbnails centred
// along the bottom of a screenW x screenH screen.
func StripSlots(screenW, screenH, n int) []Rect {
	if n <= 0 {
		return nil
	}
	totalWidth := n*(ThumbSize+ThumbSpacing) - ThumbSpacing
	startX := (screenW - totalWidth) / 2
	startY := screenH - StripHeight + ThumbSpacing

	slots := make([]Rect, n)
	for i := range slots {
		slots[i] = Rect{
			X: float64(startX + i*(ThumbSize+ThumbSpacing)),
			Y: float64(startY),
			W: ThumbSize,
			H: ThumbSize,
		}
	}
	return slots
}

// Fit returns the transform that scales an image of imgW x imgH to fit
// inside dst, preserving aspect ratio and centring it.
func Fit(imgW, imgH int, dst Rect) Transform {
	if imgW <= 0 || imgH <= 0 || dst.Empty() {
		return Transform{Scale: 1, TX: dst.X, TY: dst.Y}
	}
	scale := dst.W / float64(imgW)
	if s := dst.H / float64(imgH); s < scale {
		scale = s
	}
	w, h := float64(imgW)*scale, float64(imgH)*scale
	return Transform{
		Scale: scale,
		TX:    dst.X + (dst.W-w)/2,
		TY:    dst.Y + (dst.H-h)/2,
	}
}
