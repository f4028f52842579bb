// File: pkg/keil/locate.go
package keil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// ErrNotFound is returned when no project descriptor matches the search pattern.
var ErrNotFound = errors.New("project descriptor not found")

// Location describes the descriptor chosen for a run.
type Location struct {
	Path       string   // Descriptor that will be parsed.
	Candidates []string // Every match, sorted. Len > 1 means the choice was ambiguous.
}

// Ambiguous reports whether more than one descriptor matched.
func (l Location) Ambiguous() bool {
	return len(l.Candidates) > 1
}

// Locate searches dir for files whose name matches pattern and picks one.
// Only names are matched, so glob metacharacters in dir are taken literally.
// Candidates are ordered lexicographically so the choice does not depend on
// directory listing order.
func Locate(dir, pattern string, logger *zap.Logger) (Location, error) {
	logger.Debug("Searching for project descriptor", zap.String("dir", dir), zap.String("pattern", pattern))

	if _, err := filepath.Match(pattern, ""); err != nil {
		logger.Error("Invalid descriptor pattern", zap.String("pattern", pattern), zap.Error(err))
		return Location{}, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return Location{}, fmt.Errorf("directory %s does not exist: %w", dir, ErrNotFound)
	}
	if err != nil {
		logger.Error("Failed to read project directory", zap.String("dir", dir), zap.Error(err))
		return Location{}, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(pattern, entry.Name()); ok {
			matches = append(matches, filepath.Join(dir, entry.Name()))
		}
	}
	if len(matches) == 0 {
		return Location{}, fmt.Errorf("no %s file in %s: %w", pattern, dir, ErrNotFound)
	}
	sort.Strings(matches)

	loc := Location{Path: matches[0], Candidates: matches}
	if loc.Ambiguous() {
		logger.Warn("Multiple project descriptors found, using the first",
			zap.Strings("candidates", matches),
			zap.String("chosen", loc.Path))
	}
	logger.Debug("Located project descriptor", zap.String("descriptor", loc.Path))
	return loc, nil
}
