package service

import (
	"fmt"
	"log/slog"
	"sync"
)

// PairState manages the catalogue of comparison pairs and which one is on
// screen.
type PairState struct {
	mu sync.RWMutex

	pairs []Pair
	index int
}

// NewPairState creates a PairState positioned on the first pair.
func NewPairState(pairs []Pair) *PairState {
	ps := &PairState{pairs: make([]Pair, len(pairs))}
	copy(ps.pairs, pairs)
	return ps
}

// Count returns the number of pairs.
func (ps *PairState) Count() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.pairs)
}

// Index returns the current index.
func (ps *PairState) Index() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.index
}

// Current returns the current pair, or nil if the catalogue is empty.
func (ps *PairState) Current() *Pair {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	if ps.index < 0 || ps.index >= len(ps.pairs) {
		return nil
	}
	p := ps.pairs[ps.index]
	return &p
}

// SetIndex selects the pair at i.
func (ps *PairState) SetIndex(i int) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if i < 0 || i >= len(ps.pairs) {
		return fmt.Errorf("pair index %d out of bounds [0,%d)", i, len(ps.pairs))
	}
	ps.index = i
	return nil
}

// Navigate moves the index by delta, wrapping around the list, and returns
// the new index. A positive delta moves forward, a negative delta moves backward.
func (ps *PairState) Navigate(delta int) int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	n := len(ps.pairs)
	if n == 0 {
		return ps.index
	}
	// The formula `(a % n + n) % n` handles negative numbers correctly for modular arithmetic.
	ps.index = (ps.index + delta%n + n) % n
	return ps.index
}

// LogValue implements slog.LogValuer, reporting the position in the
// catalogue and the title of the current pair.
func (ps *PairState) LogValue() slog.Value {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	attrs := []slog.Attr{
		slog.Int("index", ps.index),
		slog.Int("count", len(ps.pairs)),
	}
	if ps.index < len(ps.pairs) {
		attrs = append(attrs, slog.String("title", ps.pairs[ps.index].Title))
	}
	return slog.GroupValue(attrs...)
}

// WindowItem is a pair together with its index in the catalogue.
type WindowItem struct {
	Pair  Pair
	Index int
}

// Window returns up to size pairs centred on center, shifted to stay inside
// the catalogue, along with the position of center within the result.
func (ps *PairState) Window(center, size int) ([]WindowItem, int) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	count := len(ps.pairs)
	if count == 0 || size <= 0 {
		return []WindowItem{}, -1
	}

	half := size / 2
	start := center - half
	end := start + size - 1

	// Adjust the window if it goes out of bounds.
	if start < 0 {
		end -= start
		start = 0
	}
	if end >= count {
		start -= end - (count - 1)
		end = count - 1
	}
	// Final check in case the list is smaller than the window.
	if start < 0 {
		start = 0
	}

	items := make([]WindowItem, 0, end-start+1)
	for i := start; i <= end; i++ {
		items = append(items, WindowItem{Pair: ps.pairs[i], Index: i})
	}
	return items, center - start
}
