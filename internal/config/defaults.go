package config

import (
	"os"
	"path/filepath"

	"github.com/kornellapacz/vis-plug/internal/plugin"
)

const (
	// EnvRoot overrides the install root directly.
	EnvRoot = "VIS_PLUG_PATH"

	// EnvCacheHome is the XDG cache root the default install root derives from.
	EnvCacheHome = "XDG_CACHE_HOME"

	// EnvConfigHome is the XDG config root the default config path derives from.
	EnvConfigHome = "XDG_CONFIG_HOME"
)

// DefaultRoot computes the default install root: $VIS_PLUG_PATH if set,
// else $XDG_CACHE_HOME/vis-plug, else $HOME/.cache/vis-plug.
func DefaultRoot() string {
	if root := os.Getenv(EnvRoot); root != "" {
		return root
	}
	if cache := os.Getenv(EnvCacheHome); cache != "" {
		return filepath.Join(cache, "vis-plug")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "vis-plug")
	}
	return filepath.Join(home, ".cache", "vis-plug")
}

// DefaultConfigPath computes the default config file location:
// $XDG_CONFIG_HOME/vis-plug/config.yaml, else $HOME/.config/vis-plug/config.yaml.
func DefaultConfigPath() string {
	if cfg := os.Getenv(EnvConfigHome); cfg != "" {
		return filepath.Join(cfg, "vis-plug", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "vis-plug", "config.yaml")
	}
	return filepath.Join(home, ".config", "vis-plug", "config.yaml")
}

// ApplyDefaults fills unset fields with their defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Root == "" {
		cfg.Root = DefaultRoot()
	}
	if cfg.ParallelLimit == 0 {
		cfg.ParallelLimit = plugin.DefaultParallelLimit
	}
	if cfg.OperationTimeout == 0 {
		cfg.OperationTimeout = plugin.DefaultOperationTimeout
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// Default returns a configuration with every field at its default and an
// empty plugin list.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
