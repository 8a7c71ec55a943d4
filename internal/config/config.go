// Package config loads tool settings from MOTIONCORE_* environment
// variables. Flags on the CLIs override anything set here.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "motioncore"

// Config holds runtime settings shared by the CLIs and the session.
type Config struct {
	// WorkspacePath overrides the default workspace file location.
	// Empty means the per-user config directory.
	WorkspacePath string `envconfig:"WORKSPACE_PATH"`

	// ArchivePath is the SQLite telemetry archive. Empty disables
	// archiving.
	ArchivePath string `envconfig:"ARCHIVE_PATH"`

	// ExportDir receives timestamped workspace exports.
	ExportDir string `envconfig:"EXPORT_DIR"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// SaveDebounce is how long the session waits after a mutation
	// before flushing to disk.
	SaveDebounce time.Duration `envconfig:"SAVE_DEBOUNCE" default:"600ms"`

	// Default release policy, overridable per check invocation.
	MinRuns        int    `envconfig:"MIN_RUNS" default:"5"`
	RequireGrade   string `envconfig:"REQUIRE_GRADE" default:"B"`
	RequireQuality string `envconfig:"REQUIRE_QUALITY" default:"healthy"`
	AllowAttention bool   `envconfig:"ALLOW_ATTENTION" default:"false"`
}

// Load reads the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
