package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
)

// ErrNoAdapterType is returned when a config names no adapter.
var ErrNoAdapterType = errors.New("adapter type not specified")

// Factory creates an unconnected adapter. A nil logger discards output.
type Factory func(*slog.Logger) Adapter

// factories maps lower-case adapter names to their constructors.
type factories struct {
	mu sync.RWMutex
	m  map[string]Factory
}

var registered = &factories{m: make(map[string]Factory)}

// Register makes an adapter available under name, case-insensitively.
// Adapter packages call it from init; registering a name again replaces
// the earlier factory.
func Register(name string, factory Factory) {
	registered.mu.Lock()
	defer registered.mu.Unlock()
	registered.m[strings.ToLower(name)] = factory
}

// Lookup returns the factory registered under name. Unknown names yield an
// *UnknownAdapterError listing what is available.
func Lookup(name string) (Factory, error) {
	if name == "" {
		return nil, ErrNoAdapterType
	}
	registered.mu.RLock()
	factory, ok := registered.m[strings.ToLower(name)]
	registered.mu.RUnlock()
	if !ok {
		return nil, &UnknownAdapterError{Type: name, Available: ListAdapters()}
	}
	return factory, nil
}

// ListAdapters returns the registered adapter names in sorted order.
func ListAdapters() []string {
	registered.mu.RLock()
	defer registered.mu.RUnlock()
	return slices.Sorted(maps.Keys(registered.m))
}

// NewAdapter builds the adapter named by cfg.Type without connecting it.
func NewAdapter(cfg Config, logger *slog.Logger) (Adapter, error) {
	factory, err := Lookup(cfg.Type)
	if err != nil {
		return nil, err
	}
	return factory(logger), nil
}

// Open builds the adapter named by cfg.Type and connects it. The adapter is
// closed again when Connect fails.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (Adapter, error) {
	adp, err := NewAdapter(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := adp.Connect(ctx, cfg); err != nil {
		_ = adp.Close()
		return nil, fmt.Errorf("connect %s: %w", cfg.Type, err)
	}
	return adp, nil
}

// UnknownAdapterError reports an adapter name with no registered factory.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unknown adapter type %q (available: %s); check --adapter or adapter in your profile",
		e.Type, strings.Join(e.Available, ", "))
}
