package ui

import (
	"image"
	"image/color"
	"log/slog"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/nicky-ayoub/splitview/internal/input"
	"github.com/nicky-ayoub/splitview/internal/layout"
	"github.com/nicky-ayoub/splitview/internal/service"
)

const stripWindow = 11 // Must be an odd number for a clear center

// thumbnailJob represents a request to load a thumbnail.
type thumbnailJob struct {
	path string
}

// thumbnailResult holds a decoded image, ready to be converted to an ebiten.Image.
type thumbnailResult struct {
	path string
	img  image.Image
}

// PairStrip manages the state and rendering of the bottom bar that shows a
// thumbnail of each pair's after image.
type PairStrip struct {
	pairs  *service.PairState
	images *service.ImageService
	log    *slog.Logger

	thumbCache    map[string]*ebiten.Image
	pendingJobs   map[string]bool
	jobQueue      chan thumbnailJob
	resultQueue   chan thumbnailResult
	cacheMu       sync.RWMutex
	pendingJobsMu sync.Mutex

	selectionBox *ebiten.Image

	done      chan struct{}
	closeOnce sync.Once
	workers   sync.WaitGroup
}

// NewPairStrip creates the strip and starts its background loaders. Call
// Close to stop them.
func NewPairStrip(ps *service.PairState, images *service.ImageService, log *slog.Logger) *PairStrip {
	s := newPairStrip(ps, images, log)

	// Create the selection box image
	s.selectionBox = ebiten.NewImage(layout.ThumbSize, layout.ThumbSize)
	borderColor := color.RGBA{R: 0xff, G: 0xff, B: 0, A: 0xff} // Yellow
	vector.StrokeRect(s.selectionBox, 0, 0, float32(layout.ThumbSize), float32(layout.ThumbSize), 3, borderColor, false)

	s.start(2)
	return s
}

func newPairStrip(ps *service.PairState, images *service.ImageService, log *slog.Logger) *PairStrip {
	return &PairStrip{
		pairs:       ps,
		images:      images,
		log:         log,
		thumbCache:  make(map[string]*ebiten.Image),
		pendingJobs: make(map[string]bool),
		jobQueue:    make(chan thumbnailJob, 50),
		resultQueue: make(chan thumbnailResult, 50),
		done:        make(chan struct{}),
	}
}

// start launches n background loader goroutines.
func (s *PairStrip) start(n int) {
	for range n {
		s.workers.Add(1)
		go func() {
			defer s.workers.Done()
			s.loader()
		}()
	}
}

// Close stops the background loaders, waits for them to exit and releases
// the cached thumbnails. It is safe to call more than once.
func (s *PairStrip) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.workers.Wait()

		s.cacheMu.Lock()
		defer s.cacheMu.Unlock()
		for path, img := range s.thumbCache {
			img.Deallocate()
			delete(s.thumbCache, path)
		}
		if s.selectionBox != nil {
			s.selectionBox.Deallocate()
		}
	})
}

// Height returns the total height of the strip.
func (s *PairStrip) Height() int {
	return layout.StripHeight
}

// loader is a background worker that processes thumbnail loading jobs.
// It returns once Close is called.
func (s *PairStrip) loader() {
	for {
		var job thumbnailJob
		select {
		case <-s.done:
			return
		case job = <-s.jobQueue:
		}

		img, err := s.images.Thumbnail(job.path, layout.ThumbSize)
		if err != nil {
			s.log.Debug("thumbnail failed", "path", job.path, "error", err)
			s.pendingJobsMu.Lock()
			delete(s.pendingJobs, job.path) // Un-pend on error so it can be retried
			s.pendingJobsMu.Unlock()
			continue
		}

		// Send the decoded standard image back to the main thread for processing.
		select {
		case s.resultQueue <- thumbnailResult{path: job.path, img: img}:
		case <-s.done:
			return
		}
	}
}

// Update processes loaded thumbnails, queues missing ones and handles clicks.
// It returns the index of a clicked pair, otherwise currentIndex.
func (s *PairStrip) Update(currentIndex int, in input.InputState, screenW, screenH int) int {
	// 1. Process any results that have come back from the loader goroutines.
	// This must be done in the main thread as ebiten.Image creation is not thread-safe.
	processing := true
	for processing {
		select {
		case result := <-s.resultQueue:
			ebitenImg := ebiten.NewImageFromImage(result.img)
			s.cacheMu.Lock()
			s.thumbCache[result.path] = ebitenImg
			s.cacheMu.Unlock()

			s.pendingJobsMu.Lock()
			delete(s.pendingJobs, result.path)
			s.pendingJobsMu.Unlock()
		default:
			processing = false
		}
	}

	// 2. Determine which thumbnails are needed for the current view.
	items, _ := s.pairs.Window(currentIndex, stripWindow)

	// 3. Queue jobs for any missing thumbnails.
	for _, item := range items {
		path := item.Pair.After

		s.cacheMu.RLock()
		_, inCache := s.thumbCache[path]
		s.cacheMu.RUnlock()

		if inCache {
			continue
		}

		s.pendingJobsMu.Lock()
		if !s.pendingJobs[path] {
			s.pendingJobs[path] = true
			select {
			case s.jobQueue <- thumbnailJob{path: path}:
			default:
				// Job queue is full, we'll try again on the next frame.
				delete(s.pendingJobs, path)
			}
		}
		s.pendingJobsMu.Unlock()
	}

	// 4. Handle mouse click
	if in.LeftJustPressed && len(items) > 0 {
		mx, my := float64(in.MouseX), float64(in.MouseY)
		for i, slot := range layout.StripSlots(screenW, screenH, len(items)) {
			if slot.Contains(mx, my) {
				return items[i].Index
			}
		}
	}

	return currentIndex
}

// Evict drops the cached thumbnail of path so that it is loaded again, for
// example after the file changed on disk.
func (s *PairStrip) Evict(path string) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if img, ok := s.thumbCache[path]; ok {
		img.Deallocate()
		delete(s.thumbCache, path)
	}
}

// Draw renders the strip along the bottom of the screen.
func (s *PairStrip) Draw(screen *ebiten.Image) {
	items, center := s.pairs.Window(s.pairs.Index(), stripWindow)
	if len(items) == 0 {
		return
	}
	slots := layout.StripSlots(screen.Bounds().Dx(), screen.Bounds().Dy(), len(items))

	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()

	for i, item := range items {
		slot := slots[i]
		if thumb, ok := s.thumbCache[item.Pair.After]; ok {
			b := thumb.Bounds()
			tr := layout.Fit(b.Dx(), b.Dy(), slot)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(tr.Scale, tr.Scale)
			op.GeoM.Translate(tr.TX, tr.TY)
			screen.DrawImage(thumb, op)
		}

		// Draw selection box over the current pair.
		if i == center {
			selOp := &ebiten.DrawImageOptions{}
			selOp.GeoM.Translate(slot.X, slot.Y)
			screen.DrawImage(s.selectionBox, selOp)
		}
	}
}
