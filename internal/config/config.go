// Package config loads the application configuration from an optional YAML
// file with environment variable overrides.
package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"pycheck/pkg/serrors"
)

// Output formats accepted by Run.Format.
const (
	// FormatText prints tool output as it is produced plus a summary line.
	FormatText = "text"
	// FormatJSON suppresses tool output and prints a single JSON report.
	FormatJSON = "json"
)

// CheckerConfig describes one external checking tool to dispatch targets to.
type CheckerConfig struct {
	// Name is the display name used in logs and reports.
	Name string `yaml:"name"`
	// Command is the executable to run, resolved against PATH.
	Command string `yaml:"command"`
	// Args are extra arguments placed before the targets.
	Args []string `yaml:"args"`
}

// Config represents the application configuration structure.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// DefaultTarget is the single target dispatched when the caller supplies
	// no arguments.
	DefaultTarget string `env:"DEFAULT_TARGET" env-default:"plugin.py" yaml:"defaultTarget"`

	// Run contains settings for a single dispatch.
	Run struct {
		// Timeout bounds each checker invocation; zero disables the bound.
		Timeout time.Duration `env:"RUN_TIMEOUT" env-default:"5m" yaml:"timeout"`
		// Parallel runs the configured checkers concurrently when more than
		// one is configured. Result and exit-code ordering stay deterministic.
		Parallel bool `env:"RUN_PARALLEL" yaml:"parallel"`
		// Format selects the report output: "text" or "json".
		Format string `env:"RUN_FORMAT" env-default:"text" yaml:"format"`
		// Quiet suppresses streaming of tool output to stdout. The json
		// format is always quiet so the report stays parseable.
		Quiet bool `env:"RUN_QUIET" yaml:"quiet"`
	} `yaml:"run"`

	// Watch contains settings for watch mode.
	Watch struct {
		// Debounce is how long to wait after a filesystem event before
		// re-dispatching, so editor save bursts trigger one run.
		Debounce time.Duration `env:"WATCH_DEBOUNCE" env-default:"300ms" yaml:"debounce"`
		// DigestCacheSize bounds the content-digest cache used to skip
		// re-dispatching when file contents did not actually change.
		DigestCacheSize int `env:"WATCH_DIGEST_CACHE_SIZE" env-default:"1024" yaml:"digestCacheSize"`
	} `yaml:"watch"`

	// Checkers lists the tools to dispatch to, in order. When empty, a
	// single mypy checker is assumed.
	Checkers []CheckerConfig `yaml:"checkers"`
}

// Load reads the config file at the given path and applies environment
// overrides. A missing file is not an error: the tool then runs on defaults
// and environment variables alone, which is the common case for a CLI.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, serrors.Wrap(serrors.ErrBadConfig, err, "could not read config %q", configPath)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, serrors.Wrap(serrors.ErrBadConfig, err, "could not read environment")
		}
	}

	if len(cfg.Checkers) == 0 {
		cfg.Checkers = []CheckerConfig{{Name: "mypy", Command: "mypy"}}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Run.Format != FormatText && c.Run.Format != FormatJSON {
		return serrors.With(serrors.ErrBadConfig, "unknown run format %q", c.Run.Format)
	}
	if c.DefaultTarget == "" {
		return serrors.With(serrors.ErrBadConfig, "defaultTarget must not be empty")
	}
	for i, chk := range c.Checkers {
		if chk.Name == "" {
			return serrors.With(serrors.ErrBadConfig, "checker %d has no name", i)
		}
		if chk.Command == "" {
			return serrors.With(serrors.ErrBadConfig, "checker %q has no command", chk.Name)
		}
	}

	return nil
}
