package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// KVState exposes internal state for observability.
type KVState struct {
	Path          string     `json:"path"`
	Extension     string     `json:"extension"`
	ReadOnly      bool       `json:"read_only"`
	Keys          []string   `json:"written_keys,omitempty"`
	WatcherActive bool       `json:"watcher_active"`
	LastEvent     *time.Time `json:"last_event,omitempty"`
}

// State implements introspection.Introspectable.
func (r *KV) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.written))
	for k := range r.written {
		keys = append(keys, k)
	}

	return KVState{
		Path:          r.Path,
		Extension:     r.config.Extension,
		ReadOnly:      r.config.ReadOnly,
		Keys:          keys,
		WatcherActive: r.watcherActive,
		LastEvent:     r.lastEvent,
	}
}

// ComponentType implements introspection.Component.
func (r *KV) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*KV)(nil)
var _ introspection.Component = (*KV)(nil)

func (r *KV) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}

func (r *KV) recordEvent() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastEvent = &now
}
