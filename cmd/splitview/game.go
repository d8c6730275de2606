package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/zoobzio/capitan"

	"github.com/nicky-ayoub/splitview/internal/config"
	"github.com/nicky-ayoub/splitview/internal/input"
	"github.com/nicky-ayoub/splitview/internal/layout"
	"github.com/nicky-ayoub/splitview/internal/service"
	"github.com/nicky-ayoub/splitview/internal/signals"
	"github.com/nicky-ayoub/splitview/internal/splitview"
	"github.com/nicky-ayoub/splitview/internal/ui"
)

// viewRenderer draws a mounted split view. On screen it is a
// *ui.SplitViewRenderer.
type viewRenderer interface {
	Observe(v *splitview.SplitView) (cancel func())
	Snapshot() splitview.Snapshot
	Draw(screen *ebiten.Image, vp layout.Rect)
	Dispose()
}

type Game struct {
	ctx context.Context
	cfg config.Config
	log *slog.Logger

	pairs   *service.PairState
	images  *service.ImageService
	loader  *service.PairLoader
	watcher *service.PairWatcher

	pairStrip        *ui.PairStrip
	pairStripVisible bool

	poller     *ui.Poller
	translator *input.Translator
	scope      *splitview.ReleaseScope

	newRenderer func(res service.PairResult, styleClass string) viewRenderer

	current     *mountedPair
	loadingPair *service.Pair // Pair currently being loaded
	failedPair  *service.Pair // Last pair that failed to load, retried only on request
	loadErr     error

	// The watched pair outlives its view: a pair whose load failed stays
	// watched so that fixing its files retries it.
	watched   *service.Pair
	changes   <-chan string
	stopWatch context.CancelFunc

	// Renderers replaced in the previous frame, disposed at the start of the
	// next one so they are never in use by Draw.
	toDispose []viewRenderer

	screenW, screenH int
}

// mountedPair is a split view attached to the release scope together with
// everything that has to be released when it goes away.
type mountedPair struct {
	pair     service.Pair
	index    int
	details  string
	view     *splitview.SplitView
	renderer viewRenderer
	teardown []func()
}

// close runs the teardown functions in reverse order of acquisition.
func (m *mountedPair) close() {
	for i := len(m.teardown) - 1; i >= 0; i-- {
		m.teardown[i]()
	}
	m.teardown = nil
}

// NewGame wires the viewer for cfg. The pair loader is started by run.
func NewGame(ctx context.Context, cfg config.Config, log *slog.Logger) *Game {
	pairs := make([]service.Pair, 0, len(cfg.Pairs))
	for _, p := range cfg.Pairs {
		pairs = append(pairs, service.Pair{Title: p.Title, Before: p.Before, After: p.After})
	}

	g := &Game{
		ctx:        ctx,
		cfg:        cfg,
		log:        log,
		pairs:      service.NewPairState(pairs),
		images:     service.NewImageService(),
		watcher:    service.NewPairWatcher(log),
		poller:     ui.NewPoller(),
		translator: input.NewTranslator(),
		scope:      splitview.NewReleaseScope(),
	}
	g.loader = service.NewPairLoader(g.images, log)
	g.newRenderer = func(res service.PairResult, styleClass string) viewRenderer {
		return ui.NewSplitViewRenderer(
			ebiten.NewImageFromImage(res.Before),
			ebiten.NewImageFromImage(res.After),
			ui.Labels{Before: cfg.View.Labels.Before, After: cfg.View.Labels.After},
			styleClass,
		)
	}
	if len(pairs) > 1 {
		g.pairStrip = ui.NewPairStrip(g.pairs, g.images, log)
		g.pairStripVisible = true
	}
	return g
}

func (g *Game) Update() error {
	// Dispose of renderers that were replaced in the previous frame.
	for _, r := range g.toDispose {
		r.Dispose()
	}
	g.toDispose = g.toDispose[:0]

	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	// 1. Poll all input at the beginning of the frame.
	in := g.poller.Poll()

	// 2. Handle non-state-dependent inputs immediately.
	if in.Quit {
		return ebiten.Termination
	}
	if in.ToggleFullscreen {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if in.ToggleStrip && g.pairStrip != nil {
		g.pairStripVisible = !g.pairStripVisible
	}

	// 3. Process results from the background loader and the file watcher.
	g.processLoadResults()
	g.processFileChanges()

	// 4. Pair navigation.
	selected := g.pairs.Index()
	if g.pairs.Count() > 1 {
		if in.NextPair {
			g.pairs.Navigate(1)
		}
		if in.PrevPair {
			g.pairs.Navigate(-1)
		}
	}
	if g.pairStrip != nil && g.pairStripVisible {
		newIndex := g.pairStrip.Update(g.pairs.Index(), in, g.screenW, g.screenH)
		if newIndex != g.pairs.Index() {
			if err := g.pairs.SetIndex(newIndex); err != nil {
				g.log.Warn("selecting pair", "error", err)
			}
		}
	}
	if g.pairs.Index() != selected {
		g.log.Debug("pair selected", "pairs", g.pairs)
	}
	if in.Reload {
		if p := g.pairs.Current(); p != nil {
			g.requestLoad(*p)
		}
	}

	// 5. Request a load when the selected pair is neither shown nor loading.
	if p := g.pairs.Current(); p != nil && !g.isShowing(*p) && !g.isLoading(*p) && !g.hasFailed(*p) {
		g.requestLoad(*p)
	}

	// 6. Pointer and touch input for the split view. Releases go to the
	// application-wide scope so a drag ends wherever the release happens.
	events := g.translator.Translate(in, g.viewportRect())
	if g.current != nil {
		for _, ev := range events.Local {
			g.current.view.Handle(ev)
		}
	}
	for _, ev := range events.Global {
		g.scope.Dispatch(ev)
	}

	return nil
}

func (g *Game) isShowing(p service.Pair) bool {
	return g.current != nil && g.current.pair == p && g.current.index == g.pairs.Index()
}

func (g *Game) isLoading(p service.Pair) bool {
	return g.loadingPair != nil && *g.loadingPair == p
}

func (g *Game) hasFailed(p service.Pair) bool {
	return g.failedPair != nil && *g.failedPair == p
}

func (g *Game) requestLoad(p service.Pair) {
	g.loadingPair = &p
	g.failedPair = nil
	g.loadErr = nil
	g.loader.Request(p)
}

// processLoadResults mounts a freshly loaded pair, or records why it failed.
func (g *Game) processLoadResults() {
	select {
	case res := <-g.loader.Results():
		// Only apply the result if it's for the pair we are currently waiting for.
		if !g.isLoading(res.Pair) {
			g.log.Debug("discarding stale load", "title", res.Pair.Title)
			return
		}
		g.loadingPair = nil
		if res.Err != nil {
			capitan.Emit(g.ctx, signals.PairLoadFailed,
				signals.KeyTitle.Field(res.Pair.Title),
				signals.KeyError.Field(res.Err.Error()),
			)
			g.loadErr = res.Err
			g.failedPair = &res.Pair
			g.unmount()
			g.watch(res.Pair)
			return
		}
		if err := g.mount(res); err != nil {
			g.log.Error("mounting pair", "title", res.Pair.Title, "error", err)
			g.loadErr = err
			g.failedPair = &res.Pair
		}
	default:
		// Nothing loaded this frame.
	}
}

// processFileChanges reloads the watched pair when one of its files changed
// and it is still the selected pair.
func (g *Game) processFileChanges() {
	if g.changes == nil {
		return
	}
	select {
	case path, ok := <-g.changes:
		if !ok {
			g.stopWatching()
			return
		}
		p := *g.watched
		capitan.Emit(g.ctx, signals.PairChanged,
			signals.KeyTitle.Field(p.Title),
			signals.KeyPath.Field(path),
		)
		if g.pairStrip != nil {
			g.pairStrip.Evict(p.After)
		}
		if cur := g.pairs.Current(); cur != nil && *cur == p {
			g.requestLoad(p)
		}
	default:
	}
}

// watch keeps a watcher on the files of p, replacing the one on any other
// pair.
func (g *Game) watch(p service.Pair) {
	if !g.cfg.Watch || (g.watched != nil && *g.watched == p) {
		return
	}
	g.stopWatching()

	ctx, cancel := context.WithCancel(g.ctx)
	changes, err := g.watcher.Watch(ctx, p)
	if err != nil {
		cancel()
		g.log.Warn("watching pair", "title", p.Title, "error", err)
		return
	}
	g.watched, g.changes, g.stopWatch = &p, changes, cancel
}

func (g *Game) stopWatching() {
	if g.stopWatch != nil {
		g.stopWatch()
	}
	g.watched, g.changes, g.stopWatch = nil, nil, nil
}

// mount replaces the current view with a new one for res. Everything the
// view acquires is recorded on the mountedPair and released by unmount.
func (g *Game) mount(res service.PairResult) error {
	view, err := splitview.New(
		splitview.ImagePair{Before: res.Pair.Before, After: res.Pair.After},
		splitview.MeasureFunc(g.measure),
		splitview.Options{
			StyleClass:           g.cfg.View.Style,
			TouchMoveIgnoresDrag: !g.cfg.View.TouchMoveRequiresDrag,
		},
	)
	if err != nil {
		return fmt.Errorf("creating split view: %w", err)
	}

	g.unmount()

	renderer := g.newRenderer(res, view.StyleClass())
	m := &mountedPair{
		pair:     res.Pair,
		index:    g.pairs.Index(),
		details:  pairDetails(res),
		view:     view,
		renderer: renderer,
	}
	m.teardown = append(m.teardown, func() { g.toDispose = append(g.toDispose, renderer) })
	m.teardown = append(m.teardown, renderer.Observe(view))
	m.teardown = append(m.teardown, view.Subscribe(g.dragSignals(res.Pair)))

	unmount, err := view.Mount(g.scope)
	if err != nil {
		m.close()
		return fmt.Errorf("mounting split view: %w", err)
	}
	m.teardown = append(m.teardown, unmount)

	g.current = m
	g.translator.Reset()
	g.watch(res.Pair)

	capitan.Emit(g.ctx, signals.PairMounted,
		signals.KeyTitle.Field(res.Pair.Title),
		signals.KeyIndex.Field(m.index),
	)
	return nil
}

// unmount tears down the current view, if any.
func (g *Game) unmount() {
	if g.current == nil {
		return
	}
	title := g.current.pair.Title
	g.current.close()
	g.current = nil
	capitan.Emit(g.ctx, signals.PairUnmounted, signals.KeyTitle.Field(title))
}

// pairDetails describes both files of a loaded pair for the status line.
func pairDetails(res service.PairResult) string {
	describe := func(info service.ImageInfo) string {
		if info.Width == 0 {
			return "?"
		}
		return info.Summary()
	}
	return fmt.Sprintf("before %s | after %s", describe(res.BeforeInfo), describe(res.AfterInfo))
}

// dragSignals returns an observer that reports drag transitions.
func (g *Game) dragSignals(p service.Pair) func(splitview.Snapshot) {
	prev := splitview.Idle
	return func(s splitview.Snapshot) {
		if s.State == prev {
			return
		}
		prev = s.State
		pos := int(math.Round(s.Position))
		switch s.State {
		case splitview.Dragging:
			capitan.Emit(g.ctx, signals.DragStarted, signals.KeyTitle.Field(p.Title), signals.KeyPosition.Field(pos))
		case splitview.Idle:
			capitan.Emit(g.ctx, signals.DragEnded, signals.KeyTitle.Field(p.Title), signals.KeyPosition.Field(pos))
		}
	}
}

// measure reports the split view's current viewport. It is unavailable until
// ebiten has called Layout at least once.
func (g *Game) measure() (splitview.Viewport, bool) {
	r := g.viewportRect()
	if r.Empty() {
		return splitview.Viewport{}, false
	}
	return r.Viewport(), true
}

// viewportRect is the screen area of the split view, above the pair strip.
func (g *Game) viewportRect() layout.Rect {
	reserve := 0.0
	if g.pairStrip != nil && g.pairStripVisible {
		reserve = float64(g.pairStrip.Height()) - g.cfg.View.Padding
		if reserve < 0 {
			reserve = 0
		}
	}
	return layout.ViewportRect(g.screenW, g.screenH, g.cfg.View.Padding, reserve)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ui.ThemeFor(g.cfg.View.Style).Background)

	switch {
	case g.current != nil:
		g.current.renderer.Draw(screen, g.viewportRect())
	case g.loadingPair != nil:
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Loading: %s", g.loadingPair.Title), 8, 40)
	case g.loadErr != nil:
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Failed to load pair: %v", g.loadErr), 8, 40)
	default:
		ebitenutil.DebugPrintAt(screen, "No pair selected.", 8, 40)
	}

	title, details := "", ""
	position, state := splitview.InitialPosition, splitview.Idle
	if g.current != nil {
		title, details = g.current.pair.Title, g.current.details
		snap := g.current.renderer.Snapshot()
		position, state = snap.Position, snap.State
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  [%d/%d]  %.0f%%  %s\n%s",
		title,
		g.pairs.Index()+1,
		g.pairs.Count(),
		position,
		state,
		details))

	// Draw the pair strip at the bottom
	if g.pairStrip != nil && g.pairStripVisible {
		g.pairStrip.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	// A 1:1 pixel mapping keeps pointer coordinates and viewport
	// measurements in the same space.
	g.screenW, g.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close unmounts the current view, stops watching and loading, and releases
// all images.
func (g *Game) Close() {
	g.unmount()
	g.stopWatching()
	if g.pairStrip != nil {
		g.pairStrip.Close()
	}
	for _, r := range g.toDispose {
		r.Dispose()
	}
	g.toDispose = nil
}
