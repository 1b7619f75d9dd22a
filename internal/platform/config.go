package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the YAML configuration file.
const ConfigFile = "config.yaml"

// Config is the on-disk configuration.
type Config struct {
	DataDir   string    `yaml:"data_dir"`
	Adapter   string    `yaml:"adapter" default:"fs"`
	DevSafety bool      `yaml:"dev_safety" default:"true"`
	Log       LogConfig `yaml:"log"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level" default:"info"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() (Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to apply config defaults: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads the YAML file at path on top of the defaults.
// A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Locate resolves where configuration and data live when nothing is given
// explicitly. A project with a .memo directory above startDir wins;
// otherwise the user config directory is used.
//
// It returns the config file path and the default data directory.
func Locate(startDir string) (configPath, dataDir string, err error) {
	if root, rerr := FindRoot(startDir); rerr == nil {
		dir := filepath.Join(root, SystemDir)
		return filepath.Join(dir, ConfigFile), dir, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	dir := filepath.Join(base, "memo")
	return filepath.Join(dir, ConfigFile), dir, nil
}
