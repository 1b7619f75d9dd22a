package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// SystemDir is the per-project directory holding local notes and config.
const SystemDir = ".memo"

// FindRoot recursively looks upwards for a project holding a .memo directory.
// If found, returns the absolute path to the directory containing it.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if isDir(filepath.Join(dir, SystemDir)) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
