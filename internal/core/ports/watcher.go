package ports

import (
	"context"
	"iter"
)

// WatchOp identifies the kind of file system change.
type WatchOp int

const (
	// OpWrite indicates file contents changed.
	OpWrite WatchOp = iota
	// OpCreate indicates a file or directory was created.
	OpCreate
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed away.
	OpRename
)

// WatchEvent is a single file system change.
type WatchEvent struct {
	Path      string
	Operation WatchOp
}

// Watcher reports file system changes below a root directory.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching root recursively until ctx is done.
	Start(ctx context.Context, root string) error
	// Stop releases the watcher's resources.
	Stop() error
	// Events yields changes until the watcher stops.
	Events() iter.Seq[WatchEvent]
}

// WatcherFactory creates a Watcher on demand.
type WatcherFactory func() (Watcher, error)
