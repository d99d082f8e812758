// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/stash/internal/adapters/config"
	_ "go.trai.ch/stash/internal/adapters/fs"
	_ "go.trai.ch/stash/internal/adapters/host"
	_ "go.trai.ch/stash/internal/adapters/logger"
	_ "go.trai.ch/stash/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/stash/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/stash/internal/app"
)
