package ports

import "go.trai.ch/stash/internal/core/domain"

// ConfigLoader defines the interface for loading the cache configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration at path. A directory is searched upwards for
	// the configuration file; when none exists the defaults rooted at path apply.
	Load(path string) (*domain.Config, error)
}
