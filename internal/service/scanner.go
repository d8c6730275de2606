package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Pair is a before/after comparison known to the viewer.
type Pair struct {
	Title  string
	Before string
	After  string
}

// ScannerService discovers comparison pairs on disk.
type ScannerService struct {
	Extensions map[string]bool // Supported image extensions
	// Suffixes mark the two halves of a pair in a file's base name,
	// e.g. kitchen-before.jpg and kitchen-after.jpg.
	BeforeSuffix string
	AfterSuffix  string
}

// NewScannerService constructs a ScannerService with the default extensions
// and suffixes.
func NewScannerService() *ScannerService {
	return &ScannerService{
		Extensions:   map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true},
		BeforeSuffix: "-before",
		AfterSuffix:  "-after",
	}
}

// ScanPairs lists dir (not recursively) and matches <name>-before.<ext> with
// <name>-after.<ext'>. The extensions of the two halves may differ. Pairs are
// returned sorted by name; unmatched halves are ignored.
func (s *ScannerService) ScanPairs(dir string) ([]Pair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	befores := make(map[string]string)
	afters := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !s.Extensions[ext] {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		lower := strings.ToLower(base)
		switch {
		case strings.HasSuffix(lower, s.BeforeSuffix):
			befores[base[:len(base)-len(s.BeforeSuffix)]] = filepath.Join(dir, name)
		case strings.HasSuffix(lower, s.AfterSuffix):
			afters[base[:len(base)-len(s.AfterSuffix)]] = filepath.Join(dir, name)
		}
	}

	pairs := make([]Pair, 0, len(befores))
	for title, before := range befores {
		after, ok := afters[title]
		if !ok {
			continue
		}
		pairs = append(pairs, Pair{Title: title, Before: before, After: after})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Title < pairs[j].Title })
	return pairs, nil
}
