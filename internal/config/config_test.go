package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pycheck/internal/config"
	"pycheck/pkg/serrors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err, "a missing config file should not be an error")

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, "plugin.py", cfg.DefaultTarget)
	require.Equal(t, config.FormatText, cfg.Run.Format)
	require.Equal(t, 5*time.Minute, cfg.Run.Timeout)
	require.False(t, cfg.Run.Parallel)
	require.False(t, cfg.Run.Quiet)
	require.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)

	require.Len(t, cfg.Checkers, 1, "should default to a single mypy checker")
	require.Equal(t, "mypy", cfg.Checkers[0].Name)
	require.Equal(t, "mypy", cfg.Checkers[0].Command)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
environment: production
defaultTarget: src/main.py
run:
  parallel: true
  format: json
checkers:
  - name: mypy
    command: mypy
    args: ["--strict"]
  - name: pyright
    command: pyright
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, "src/main.py", cfg.DefaultTarget)
	require.Equal(t, 5*time.Minute, cfg.Run.Timeout, "unset fields keep their defaults")
	require.True(t, cfg.Run.Parallel)
	require.Equal(t, config.FormatJSON, cfg.Run.Format)

	require.Len(t, cfg.Checkers, 2)
	require.Equal(t, []string{"--strict"}, cfg.Checkers[0].Args)
	require.Equal(t, "pyright", cfg.Checkers[1].Command)
}

func TestLoadRejectsBadFormat(t *testing.T) {
	path := writeConfig(t, `
run:
  format: xml
`)

	_, err := config.Load(path)
	require.ErrorIs(t, err, serrors.ErrBadConfig)
}

func TestLoadRejectsCheckerWithoutCommand(t *testing.T) {
	path := writeConfig(t, `
checkers:
  - name: broken
`)

	_, err := config.Load(path)
	require.ErrorIs(t, err, serrors.ErrBadConfig)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "checkers: [\n")

	_, err := config.Load(path)
	require.ErrorIs(t, err, serrors.ErrBadConfig)
}
