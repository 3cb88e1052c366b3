package shell

import (
	"context"
	"os"

	"github.com/cathywu/sumosims/internal/adapters/fs"
	"github.com/cathywu/sumosims/internal/adapters/logger"
	"github.com/cathywu/sumosims/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the executor Graft node.
const NodeID graft.ID = "adapter.executor"

func init() {
	graft.Register(graft.Node[ports.Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, fs.StatterNodeID},
		Run: func(ctx context.Context) (ports.Executor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			statter, err := graft.Dep[ports.Statter](ctx)
			if err != nil {
				return nil, err
			}
			root, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return NewExecutor(log, statter, root), nil
		},
	})
}
