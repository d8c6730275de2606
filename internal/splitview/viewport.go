package splitview

import "math"

// Viewport is the horizontal extent of the view in device-independent pixels.
type Viewport struct {
	Left  float64
	Width float64
}

// Measurer reports the current bounds of the view. ok is false when the view
// has not been laid out yet.
type Measurer interface {
	Measure() (vp Viewport, ok bool)
}

// MeasureFunc adapts an ordinary function to the Measurer interface.
type MeasureFunc func() (Viewport, bool)

// Measure calls f.
func (f MeasureFunc) Measure() (Viewport, bool) {
	return f()
}

// Percentage maps clientX onto the divider range [0, 100] across vp.
// ok is false when vp has no usable width or the result would be NaN.
func Percentage(clientX float64, vp Viewport) (pct float64, ok bool) {
	if !(vp.Width > 0) || math.IsInf(vp.Width, 0) {
		return 0, false
	}
	relativeX := clientX - vp.Left
	raw := (relativeX / vp.Width) * 100
	if math.IsNaN(raw) {
		return 0, false
	}
	return clamp(raw, 0, 100), true
}

// clamp restricts a value to a given range.
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
