package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishReveal_Go/internal/config"
)

func keepDefaultLogger(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func loggerConfig(dir string) *config.Config {
	return &config.Config{
		LogLevel:    "debug",
		LogFormat:   "json",
		Environment: "test",
		ServiceName: "reveal-test",
		Version:     "test",
		LogDir:      dir,
		DBHost:      "db",
	}
}

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("reveal_2026-01-01_00-00-%02d.log", i)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o600))

	cleanupLogs(dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var logs []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), LogFileExtension) {
			logs = append(logs, e.Name())
		}
	}
	assert.Len(t, logs, LogFileRetentionCount)
	assert.Equal(t, "reveal_2026-01-01_00-00-03.log", logs[0], "oldest files go first")
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestCleanupLogs_BelowLimit(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("a%d.log", i)), nil, 0o600))
	}
	cleanupLogs(dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	// a missing directory is ignored
	cleanupLogs(filepath.Join(dir, "missing"))
}

func TestSetupLogger_WritesFile(t *testing.T) {
	keepDefaultLogger(t)
	dir := filepath.Join(t.TempDir(), "logs")

	f, err := SetupLogger(loggerConfig(dir))
	require.NoError(t, err)
	require.NotNil(t, f)

	slog.Info("hello from test")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), LogMsgLoggingInitialized)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), `"service":"reveal-test"`)
}

func TestSetupLogger_StdoutOnly(t *testing.T) {
	keepDefaultLogger(t)

	f, err := SetupLogger(loggerConfig(""))
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestSetupLogger_BadDir(t *testing.T) {
	keepDefaultLogger(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := SetupLogger(loggerConfig(filepath.Join(blocker, "logs")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), LogMsgFailedCreateLogsDir)
}
