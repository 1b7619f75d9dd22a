package platform

import (
	"context"

	"github.com/aretw0/memo/pkg/app"
	"github.com/aretw0/memo/pkg/core"
)

// New opens the storage medium, loads the persisted state and returns a
// ready Controller.
//
//	ctrl, err := platform.New("./notes", platform.WithAdapter("sqlite"))
func New(uri string, opts ...Option) (*app.Controller, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	// 1. Initialize storage
	kv, err := initKV(uri, o)
	if err != nil {
		return nil, err
	}

	// 2. Load state (fails soft)
	store := core.NewStore(kv, o.log())
	notes, theme := store.Load(context.Background())

	// 3. Wiring
	repoOpts := []core.RepositoryOption{core.WithRepositoryLogger(o.log())}
	if o.clock != nil {
		repoOpts = append(repoOpts, core.WithClock(o.clock))
	}
	repo := core.NewRepository(store, notes, repoOpts...)

	o.log().Debug("state loaded", "notes", len(notes), "theme", theme)
	return app.New(repo, theme, o.log()), nil
}

// Close releases resources held by the controller's storage medium.
func Close(ctrl *app.Controller) error {
	if c, ok := ctrl.Repository().Store().KV().(core.Closer); ok {
		return c.Close()
	}
	return nil
}
