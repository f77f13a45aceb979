package metadata

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/concordia-labs/concordia/internal/config"
)

// Factory opens a Source for a validated connection configuration.
type Factory func(cfg config.ConnectionConfig, logger *slog.Logger) (Source, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a source factory to the registry. Called by source
// implementations in their init() functions.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Open creates a Source for the configured warehouse type.
func Open(cfg config.ConnectionConfig, logger *slog.Logger) (Source, error) {
	if cfg.Type == "" {
		return nil, fmt.Errorf("warehouse type not specified")
	}

	registryMu.RLock()
	factory, ok := registry[cfg.Type]
	registryMu.RUnlock()
	if !ok {
		return nil, &UnknownSourceError{Type: cfg.Type, Available: List()}
	}
	return factory(cfg, logger)
}

// List returns all registered source names, sorted.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownSourceError is returned when no source is registered for the
// configured warehouse type.
type UnknownSourceError struct {
	Type      string
	Available []string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unknown warehouse type %q\nAvailable types: %v\nHint: Check connection.type in concordia.yaml", e.Type, e.Available)
}
