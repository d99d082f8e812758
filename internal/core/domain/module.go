package domain

import "context"

// ModuleContext is the host-side context a resolved module executes in.
type ModuleContext struct {
	Path string
	Dir  string
	Args []string
	Env  map[string]string
}

// LoadHandler resolves the file at path and executes it within mod.
type LoadHandler func(ctx context.Context, mod *ModuleContext, path string) error
