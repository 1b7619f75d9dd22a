// Package memory provides an in-process key-value medium. Nothing survives
// the process; it backs tests and ephemeral sessions.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/aretw0/memo/pkg/core"
)

// KV implements core.KV with a map.
type KV struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates an empty in-memory medium, optionally seeded with values.
func New(seed map[string]string) *KV {
	values := make(map[string]string, len(seed))
	maps.Copy(values, seed)
	return &KV{values: values}
}

func (m *KV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *KV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *KV) Initialize(ctx context.Context) error { return nil }

// ComponentType implements introspection.Component.
func (m *KV) ComponentType() string {
	return "memory"
}

var _ core.KV = (*KV)(nil)
