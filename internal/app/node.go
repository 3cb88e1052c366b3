package app

import (
	"context"
	"os"

	"github.com/grindlemire/graft"

	"github.com/cathywu/sumosims/internal/adapters/config" //nolint:depguard // wired in app layer
	"github.com/cathywu/sumosims/internal/adapters/fs"     //nolint:depguard // wired in app layer
	"github.com/cathywu/sumosims/internal/adapters/logger" //nolint:depguard // wired in app layer
	"github.com/cathywu/sumosims/internal/adapters/shell"  //nolint:depguard // wired in app layer
	"github.com/cathywu/sumosims/internal/adapters/state"  //nolint:depguard // wired in app layer
	"github.com/cathywu/sumosims/internal/adapters/telemetry/progrock" //nolint:depguard // wired in app layer
	"github.com/cathywu/sumosims/internal/adapters/watcher" //nolint:depguard // wired in app layer
	"github.com/cathywu/sumosims/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the application with the adapters the entry point needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			shell.NodeID,
			fs.StatterNodeID,
			fs.CleanerNodeID,
			fs.FingerprinterNodeID,
			state.NodeID,
			progrock.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}
	statter, err := graft.Dep[ports.Statter](ctx)
	if err != nil {
		return nil, err
	}
	cleaner, err := graft.Dep[ports.Cleaner](ctx)
	if err != nil {
		return nil, err
	}
	fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.RunRecordStore](ctx)
	if err != nil {
		return nil, err
	}
	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}
	fsWatcher, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	return New(loader, statter, executor, log, telemetry, store, fingerprinter, cleaner, fsWatcher, cwd), nil
}
