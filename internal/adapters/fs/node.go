package fs

import (
	"context"

	"github.com/cathywu/sumosims/internal/core/ports"
	"github.com/grindlemire/graft"
)

const (
	// StatterNodeID is the unique identifier for the Statter Graft node.
	StatterNodeID graft.ID = "adapter.fs.statter"
	// CleanerNodeID is the unique identifier for the Cleaner Graft node.
	CleanerNodeID graft.ID = "adapter.fs.cleaner"
	// FingerprinterNodeID is the unique identifier for the Fingerprinter Graft node.
	FingerprinterNodeID graft.ID = "adapter.fs.fingerprinter"
)

func init() {
	graft.Register(graft.Node[ports.Statter]{
		ID:        StatterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Statter, error) {
			return NewStatter(), nil
		},
	})

	graft.Register(graft.Node[ports.Cleaner]{
		ID:        CleanerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Cleaner, error) {
			return NewCleaner(), nil
		},
	})

	graft.Register(graft.Node[ports.Fingerprinter]{
		ID:        FingerprinterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Fingerprinter, error) {
			return NewFingerprinter(), nil
		},
	})
}
