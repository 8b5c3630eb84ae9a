package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"salescli/internal/config"
)

var (
	loggerMu   sync.Mutex
	logger     *slog.Logger
	logFile    *os.File
	loggerInit bool

	// Stdout carries the report narration, so console logs go to stderr.
	consoleWriter io.Writer = os.Stderr
)

// InitializeLogger builds the process logger from cfg and installs it as the
// slog default. Later calls return the first logger unchanged.
func InitializeLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if loggerInit {
		return logger, nil
	}

	out, err := logOutput(cfg)
	if err != nil {
		return nil, err
	}

	logger = slog.New(&traceHandler{Handler: newHandler(cfg.Format, out, parseLogLevel(cfg.Level))})
	loggerInit = true
	slog.SetDefault(logger)
	return logger, nil
}

// GetLogger returns the process logger, or slog.Default before initialization
func GetLogger() *slog.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// logOutput resolves cfg.Output to a writer. File output opens cfg.FilePath
// in append mode and keeps it for CloseLogFile.
func logOutput(cfg config.LoggingConfig) (io.Writer, error) {
	output := strings.ToLower(cfg.Output)
	if output != "file" && output != "both" {
		return consoleWriter, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", cfg.FilePath, err)
	}
	logFile = file

	if output == "both" {
		return io.MultiWriter(consoleWriter, file), nil
	}
	return file, nil
}

func newHandler(format string, out io.Writer, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{AddSource: true, Level: level}
	if strings.EqualFold(format, "text") {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// traceHandler stamps every record with the run's trace_id
type traceHandler struct {
	slog.Handler
}

func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if traceID := GetTraceID(ctx); traceID != "" {
		r.AddAttrs(slog.String("trace_id", traceID))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithGroup(name)}
}

// CloseLogFile closes the log file opened by InitializeLogger, if any.
func CloseLogFile() error {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	return closeLogFile()
}

func closeLogFile() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// ResetLoggerForTesting drops the process logger so the next
// InitializeLogger builds a fresh one.
func ResetLoggerForTesting() {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	closeLogFile()
	logger = nil
	loggerInit = false
}
