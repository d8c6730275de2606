// Package splitview implements a before/after comparison view: two stacked
// images separated by a divider the user drags with a mouse or a finger.
//
// The view is engine agnostic. A host measures the viewport, feeds pointer
// and touch events in delivery order and draws from Snapshot. Release events
// are observed through a ReleaseScope shared by the whole application so that
// a drag ends even when the button or finger is lifted outside the view.
//
// A SplitView is driven from a single goroutine and is not safe for
// concurrent use.
package splitview
