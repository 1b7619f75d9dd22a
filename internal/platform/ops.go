package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/memo/pkg/adapters/fs"
	"github.com/aretw0/memo/pkg/adapters/memory"
	"github.com/aretw0/memo/pkg/adapters/sqlite"
	"github.com/aretw0/memo/pkg/core"
)

// Init opens and initializes the storage medium.
// The 'uri' argument is adapter-specific (a data directory for 'fs' and
// 'sqlite', ignored for 'memory').
func Init(uri string, opts ...Option) (core.KV, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initKV(uri, o)
}

func initKV(uri string, o *options) (core.KV, error) {
	// 1. Check for injected medium
	if o.kv != nil {
		return o.kv, nil
	}

	// 2. Select the adapter
	var kv core.KV
	switch o.adapter {
	case AdapterFS:
		kv = fs.NewKV(fs.Config{
			Path:         resolvePath(uri, o),
			MustExist:    flag(o, "must_exist"),
			ReadOnly:     flag(o, "read_only"),
			Logger:       o.log(),
			ErrorHandler: errorHandler(o),
			Debounce:     debounce(o),
		})
	case AdapterSQLite:
		kv = sqlite.NewKV(sqlite.Config{
			Path:     resolvePath(uri, o),
			ReadOnly: flag(o, "read_only"),
			Logger:   o.log(),
		})
	case AdapterMemory:
		kv = memory.New(nil)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	// 3. Run Initialization
	if err := kv.Initialize(context.Background()); err != nil {
		return nil, err
	}

	o.log().Debug("storage initialized", "adapter", o.adapter)
	return kv, nil
}

// resolvePath applies the dev safety rules to the user's data path.
func resolvePath(path string, o *options) string {
	isReadOnly := flag(o, "read_only")
	// Default to safe when dev_safety is not set.
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	bypassSafety := isReadOnly || !devSafety
	useTemp := flag(o, "temp_dir") || (IsDevRun() && !bypassSafety)
	resolved := ResolveDataPath(path, useTemp)

	if useTemp {
		o.log().Warn("running in SAFE MODE (Dev/Test)", "requested_path", path, "resolved_path", resolved)
	} else if IsDevRun() && bypassSafety {
		o.log().Debug("bypassing dev sandbox", "path", resolved, "read_only", isReadOnly)
	}
	return resolved
}

func flag(o *options, key string) bool {
	v, _ := o.config[key].(bool)
	return v
}

func errorHandler(o *options) func(error) {
	fn, _ := o.config["watcher_error_handler"].(func(error))
	return fn
}

func debounce(o *options) time.Duration {
	d, _ := o.config["debounce"].(time.Duration)
	return d
}
