// Package fs provides file system adapters for freshness checks, input
// fingerprinting, and output cleanup.
package fs

import (
	"errors"
	"io/fs"
	"os"

	"github.com/cathywu/sumosims/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Statter = (*Statter)(nil)

// Statter implements ports.Statter using os.Stat.
type Statter struct{}

// NewStatter creates a new Statter.
func NewStatter() *Statter {
	return &Statter{}
}

// Stat returns existence, modification time, and size for the file at path.
// A missing file is reported via FileStat.Exists, not as an error.
func (s *Statter) Stat(path string) (ports.FileStat, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ports.FileStat{Exists: false}, nil
		}
		return ports.FileStat{}, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}
	return ports.FileStat{
		Exists:  true,
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}, nil
}
