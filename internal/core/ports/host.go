package ports

import (
	"context"

	"go.trai.ch/stash/internal/core/domain"
)

// ModuleHost executes resolved text within a module context.
//
//go:generate mockgen -source=host.go -destination=mocks/mock_host.go -package=mocks
type ModuleHost interface {
	Execute(ctx context.Context, mod *domain.ModuleContext, text []byte) error
}

// HandlerRegistry is a caller-owned table of per-extension load handlers.
type HandlerRegistry interface {
	Register(ext string, h domain.LoadHandler)
}
