package service

import (
	"context"
	"fmt"
	"image"
	"log/slog"
)

// PairResult holds the decoded images of a pair, ready to be converted to
// GPU images on the main thread.
type PairResult struct {
	Pair   Pair
	Before image.Image
	After  image.Image
	Err    error

	// File details of each half. Left zero when they cannot be read.
	BeforeInfo ImageInfo
	AfterInfo  ImageInfo
}

// LoadPair decodes both halves of p.
func (is *ImageService) LoadPair(p Pair) PairResult {
	res := PairResult{Pair: p}
	before, err := is.Load(p.Before)
	if err != nil {
		res.Err = fmt.Errorf("loading before image: %w", err)
		return res
	}
	after, err := is.Load(p.After)
	if err != nil {
		res.Err = fmt.Errorf("loading after image: %w", err)
		return res
	}
	res.Before, res.After = before, after
	res.BeforeInfo, _ = is.Info(p.Before)
	res.AfterInfo, _ = is.Info(p.After)
	return res
}

// PairLoader decodes pairs on a background goroutine. Only the most recent
// request is kept while the worker is busy.
type PairLoader struct {
	images  *ImageService
	log     *slog.Logger
	jobs    chan Pair
	results chan PairResult
}

// NewPairLoader creates a loader. Call Run to start the worker.
func NewPairLoader(images *ImageService, log *slog.Logger) *PairLoader {
	return &PairLoader{
		images:  images,
		log:     log,
		jobs:    make(chan Pair, 1),
		results: make(chan PairResult, 1),
	}
}

// Request asks for p to be loaded, replacing any request still waiting.
func (l *PairLoader) Request(p Pair) {
	for {
		select {
		case l.jobs <- p:
			return
		default:
		}
		// Drop the stale request and try again.
		select {
		case old := <-l.jobs:
			l.log.Debug("dropping superseded load", "title", old.Title)
		default:
		}
	}
}

// Results delivers finished loads in completion order.
func (l *PairLoader) Results() <-chan PairResult {
	return l.results
}

// Run is the background worker. It returns when ctx is done.
func (l *PairLoader) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case p := <-l.jobs:
			l.log.Debug("loading pair", "title", p.Title, "before", p.Before, "after", p.After)
			res := l.images.LoadPair(p)
			// Send the result back to the main thread.
			select {
			case l.results <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}
