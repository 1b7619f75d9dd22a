package core

import (
	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Notes  int    `json:"notes"`
	LastID int64  `json:"last_id,omitempty"`
	Medium string `json:"medium"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	medium := "unknown"
	if r.store != nil && r.store.kv != nil {
		medium = "kv"
		// Try to get component type if the medium implements introspection.Component
		if comp, ok := r.store.kv.(introspection.Component); ok {
			medium = comp.ComponentType()
		}
	}

	var lastID int64
	if n := len(r.notes); n > 0 {
		lastID = r.notes[n-1].ID
	}

	return RepositoryState{
		Notes:  len(r.notes),
		LastID: lastID,
		Medium: medium,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
