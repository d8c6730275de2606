// Package signals declares the viewer's lifecycle signals.
package signals

import "github.com/zoobzio/capitan"

// Pair lifecycle signals.
var (
	// PairMounted is emitted when a split view is mounted for a pair.
	PairMounted = capitan.NewSignal(
		"splitview.pair.mounted",
		"Split view mounted",
	)

	// PairUnmounted is emitted when a split view is torn down.
	PairUnmounted = capitan.NewSignal(
		"splitview.pair.unmounted",
		"Split view unmounted",
	)

	// PairLoadFailed is emitted when the images of a pair cannot be loaded.
	PairLoadFailed = capitan.NewSignal(
		"splitview.pair.load.failed",
		"Pair images failed to load",
	)

	// PairChanged is emitted when a watched image file of the current pair changes.
	PairChanged = capitan.NewSignal(
		"splitview.pair.changed",
		"Pair image changed on disk",
	)
)

// Drag signals.
var (
	// DragStarted is emitted when the divider starts following a pointer.
	DragStarted = capitan.NewSignal(
		"splitview.drag.started",
		"Divider drag started",
	)

	// DragEnded is emitted when a release ends a drag.
	DragEnded = capitan.NewSignal(
		"splitview.drag.ended",
		"Divider drag ended",
	)
)

// Field keys for viewer events.
var (
	// KeyTitle is the title of the pair.
	KeyTitle = capitan.NewStringKey("title")

	// KeyPath is an image path.
	KeyPath = capitan.NewStringKey("path")

	// KeyIndex is the index of the pair in the catalogue.
	KeyIndex = capitan.NewIntKey("index")

	// KeyPosition is the divider position, rounded to a whole percent.
	KeyPosition = capitan.NewIntKey("position")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")
)
