package fs

import (
	"os"
	"path/filepath"

	"github.com/cathywu/sumosims/internal/core/domain"
	"github.com/cathywu/sumosims/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Cleaner = (*Cleaner)(nil)

// Cleaner implements ports.Cleaner by glob-deleting declared output patterns.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean deletes every file matching the patterns, resolved relative to root.
// It returns ErrNothingToClean when no pattern matches anything; callers
// decide whether that is a failure or a no-op.
func (c *Cleaner) Clean(root string, patterns []string) (ports.CleanResult, error) {
	var result ports.CleanResult

	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(root, pattern)
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return ports.CleanResult{}, zerr.With(zerr.Wrap(err, "bad clean pattern"), "pattern", pattern)
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return result, zerr.With(zerr.Wrap(err, "failed to stat clean match"), "path", match)
			}
			if info.IsDir() {
				continue
			}
			if err := os.Remove(match); err != nil {
				return result, zerr.With(zerr.Wrap(err, "failed to remove file"), "path", match)
			}
			result.Files++
			result.Bytes += uint64(info.Size())
		}
	}

	if result.Files == 0 {
		return result, domain.ErrNothingToClean
	}
	return result, nil
}
