package app

import (
	"slices"

	"github.com/aretw0/introspection"
)

// ControllerState exposes internal state for observability.
type ControllerState struct {
	Theme         string  `json:"theme"`
	Query         string  `json:"query,omitempty"`
	Visible       int     `json:"visible"`
	Editing       []int64 `json:"editing,omitempty"`
	PendingDelete int64   `json:"pending_delete,omitempty"`
	Alert         string  `json:"alert,omitempty"`
	Repository    any     `json:"repository"`
}

// State implements introspection.Introspectable.
func (c *Controller) State() any {
	editing := make([]int64, 0, len(c.editing))
	for id := range c.editing {
		editing = append(editing, id)
	}
	slices.Sort(editing)

	return ControllerState{
		Theme:         string(c.theme),
		Query:         c.query,
		Visible:       len(c.filtered),
		Editing:       editing,
		PendingDelete: c.pendingDelete,
		Alert:         c.alert,
		Repository:    c.repo.State(),
	}
}

// ComponentType implements introspection.Component.
func (c *Controller) ComponentType() string {
	return "controller"
}

var _ introspection.Introspectable = (*Controller)(nil)
var _ introspection.Component = (*Controller)(nil)
