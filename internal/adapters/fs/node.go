package fs

import (
	"context"

	"github.com/grindlemire/graft"
)

// WalkerNodeID is the unique identifier for the walker Graft node.
const WalkerNodeID graft.ID = "adapter.fs.walker"

// DefaultWalkIgnores are directory names never descended into during warm runs.
var DefaultWalkIgnores = []string{"node_modules", "bower_components"}

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(DefaultWalkIgnores...), nil
		},
	})
}
