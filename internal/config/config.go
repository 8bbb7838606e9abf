package config

import (
	"time"

	"github.com/kornellapacz/vis-plug/internal/plugin"
)

// Config is the root configuration for vis-plug. The plugin list itself is
// handed to the core as an in-memory slice; this file format is owned by
// the CLI host, not by the manager core.
type Config struct {
	// Root is the install root; plugins/ and themes/ live under it.
	Root string `mapstructure:"root" yaml:"root"`

	// ParallelLimit caps concurrent git processes during batch phases.
	ParallelLimit int `mapstructure:"parallel_limit" yaml:"parallel_limit" validate:"omitempty,min=1,max=64"`

	// OperationTimeout bounds each external git invocation.
	OperationTimeout time.Duration `mapstructure:"operation_timeout" yaml:"operation_timeout"`

	// CloneDepth enables shallow clones when positive (0 = full clone).
	CloneDepth int `mapstructure:"clone_depth" yaml:"clone_depth" validate:"omitempty,min=0"`

	// SelfUpdateURL is the fixed remote URL the self-update command fetches
	// a replacement binary from.
	SelfUpdateURL string `mapstructure:"self_update_url" yaml:"self_update_url" validate:"omitempty,url"`

	// Logging configures the slog handler.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Plugins is the declarative plugin list.
	Plugins []plugin.Spec `mapstructure:"plugins" yaml:"plugins" validate:"dive"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=text json"`
}
