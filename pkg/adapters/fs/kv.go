package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/memo/pkg/core"
)

// DefaultExtension is appended to a key to build its file name.
const DefaultExtension = ".json"

// KV implements core.KV on a directory, storing each key in its own file.
type KV struct {
	Path   string
	config Config

	mu            sync.RWMutex
	written       map[string]string // last value written per key, to skip our own watch echoes
	watcherActive bool
	lastEvent     *time.Time
}

// Config holds the configuration for the filesystem medium.
type Config struct {
	Path         string
	MustExist    bool
	ReadOnly     bool
	Extension    string // e.g. ".json"
	Logger       *slog.Logger
	ErrorHandler func(error) // Receives runtime watcher failures
	Debounce     time.Duration
}

// NewKV creates a new filesystem-backed medium.
func NewKV(config Config) *KV {
	if config.Extension == "" {
		config.Extension = DefaultExtension
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}
	return &KV{
		Path:    config.Path,
		config:  config,
		written: make(map[string]string),
	}
}

// Initialize ensures the data directory exists.
func (r *KV) Initialize(ctx context.Context) error {
	if r.config.MustExist || r.config.ReadOnly {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			if r.config.ReadOnly && !r.config.MustExist {
				// Nothing stored yet; reads will fail soft.
				return nil
			}
			return fmt.Errorf("data path does not exist: %s", r.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat data path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", r.Path)
		}
		return nil
	}

	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Get reads the value stored under key.
func (r *KV) Get(ctx context.Context, key string) (string, bool, error) {
	filename, err := r.filename(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set overwrites the value stored under key atomically.
func (r *KV) Set(ctx context.Context, key, value string) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}

	filename, err := r.filename(key)
	if err != nil {
		return err
	}

	// Record before writing so the watcher never sees an unknown echo.
	r.mu.Lock()
	r.written[key] = value
	r.mu.Unlock()

	if err := writeFileAtomic(filename, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	r.config.Logger.Debug("key written", "key", key, "bytes", len(value))
	return nil
}

// filename maps a key to its file, rejecting keys that would escape the directory.
func (r *KV) filename(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key: %q", key)
	}
	return filepath.Join(r.Path, key+r.config.Extension), nil
}

// keyOf maps a file path back to its key. ok is false for foreign files.
func (r *KV) keyOf(path string) (string, bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, TempFilePrefix) {
		return "", false
	}
	if !strings.HasSuffix(base, r.config.Extension) {
		return "", false
	}
	key := strings.TrimSuffix(base, r.config.Extension)
	return key, key != ""
}

// isEcho reports whether the file for key holds exactly what this process
// last wrote.
func (r *KV) isEcho(key string) bool {
	r.mu.RLock()
	last, ok := r.written[key]
	r.mu.RUnlock()
	if !ok {
		return false
	}

	current, exists, err := r.Get(context.Background(), key)
	return err == nil && exists && current == last
}

var _ core.KV = (*KV)(nil)
var _ core.Watchable = (*KV)(nil)
