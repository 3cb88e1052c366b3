package state

import (
	"context"
	"path/filepath"

	"github.com/cathywu/sumosims/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the run record store Graft node.
const NodeID graft.ID = "adapter.state"

// storeFile is where run records live, relative to the working directory.
const storeFile = ".sumake/state.json"

func init() {
	graft.Register(graft.Node[ports.RunRecordStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RunRecordStore, error) {
			return NewStore(filepath.Clean(storeFile))
		},
	})
}
