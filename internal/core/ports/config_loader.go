package ports

import "github.com/cathywu/sumosims/internal/core/domain"

// ConfigLoader defines the interface for loading the build manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the manifest from the given working directory and returns
	// the target graph plus clean patterns.
	Load(cwd string) (*domain.Manifest, error)
}
