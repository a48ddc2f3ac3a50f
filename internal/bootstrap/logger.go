package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/neo84716/ro-data/internal/config"
	"github.com/neo84716/ro-data/internal/logger"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogger initializes the default logger from cfg. When file logging is
// enabled output goes to stdout and a rotated file under cfg.LogDir.
// The returned closer releases the file and must be closed on exit.
func SetupLogger(cfg *config.Config) (io.Closer, error) {
	return setupLogger(cfg, os.Stdout)
}

func setupLogger(cfg *config.Config, stdout io.Writer) (io.Closer, error) {
	lc := logger.ForEnvironment(cfg.Environment, cfg.Version).WithOverrides(cfg.LogLevel, cfg.LogFormat)
	lc.ServiceName = cfg.ServiceName
	lc.AddSource = false

	var (
		w      io.Writer = stdout
		closer io.Closer = nopCloser{}
	)
	if cfg.LogToFile {
		fw, err := logger.NewFileWriter(cfg.LogDir, lc.Rotation)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgSetupLogFile, err)
		}
		w = io.MultiWriter(stdout, fw)
		closer = fw
	}
	logger.InitLoggerWithWriter(lc, w)

	slog.Info(LogMsgLoggingInitialized, "level", lc.LogLevel(), "file", cfg.LogToFile)
	slog.Info(LogMsgStarting,
		"environment", cfg.Environment,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"db_driver", cfg.DBDriver,
		"port", cfg.Port,
		"session_cache_size", cfg.SessionCacheSize,
		"session_ttl", cfg.SessionTTL,
		"seek_hard_cap", cfg.SeekHardCap)

	for _, warning := range cfg.Warnings() {
		slog.Warn(LogMsgConfigWarning, "warning", warning)
	}

	return closer, nil
}
