package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/osse101/BrandishReveal_Go/internal/config"
	"github.com/osse101/BrandishReveal_Go/internal/logger"
)

// SetupLogger installs the default logger. Logs go to stdout and, when
// cfg.LogDir is set, also to a timestamped file in that directory. Old files
// are pruned so at most LogFileRetentionLimit remain.
// Returns the log file handle (caller must close), nil when no file is used.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	lcfg := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		logger.IsDevelopment(cfg.Environment),
	)

	var (
		w       io.Writer = os.Stdout
		logFile *os.File
	)
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateLogsDir, err)
		}
		cleanupLogs(cfg.LogDir)

		name := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, time.Now().Format(LogFileTimestampFormat)))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", LogMsgFailedOpenLogFile, err)
		}
		logFile = f
		w = io.MultiWriter(os.Stdout, f)
	}

	logger.InitLoggerWithWriter(lcfg, w)

	slog.Info(LogMsgLoggingInitialized, "level", lcfg.LogLevel(), "file", logFile != nil)
	slog.Info(LogMsgStartingService,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_name", cfg.DBName,
		"port", cfg.Port,
		"workers", cfg.WorkerCount,
		"frame_interval", cfg.FrameInterval)

	for _, w := range cfg.Warnings() {
		slog.Warn(LogMsgConfigWarning, "warning", w)
	}

	return logFile, nil
}

// cleanupLogs removes the oldest log files once LogFileRetentionLimit is
// reached, keeping LogFileRetentionCount. File names carry a sortable
// timestamp so directory order is age order.
func cleanupLogs(logDir string) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var logFiles []os.DirEntry
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			logFiles = append(logFiles, entry)
		}
	}

	if len(logFiles) < LogFileRetentionLimit {
		return
	}
	toDelete := len(logFiles) - LogFileRetentionCount
	for i := 0; i < toDelete; i++ {
		if err := os.Remove(filepath.Join(logDir, logFiles[i].Name())); err != nil {
			fmt.Fprintf(os.Stderr, LogMsgFailedDeleteOldLog, logFiles[i].Name(), err)
		}
	}
}
