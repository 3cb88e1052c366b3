// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/cathywu/sumosims/internal/adapters/config"
	_ "github.com/cathywu/sumosims/internal/adapters/fs"
	_ "github.com/cathywu/sumosims/internal/adapters/logger"
	_ "github.com/cathywu/sumosims/internal/adapters/shell"
	_ "github.com/cathywu/sumosims/internal/adapters/state"
	_ "github.com/cathywu/sumosims/internal/adapters/telemetry/progrock"
	_ "github.com/cathywu/sumosims/internal/adapters/watcher"
	// Register app nodes.
	_ "github.com/cathywu/sumosims/internal/app"
)
