package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"salescli/internal/config"
)

// captureConsole redirects console log output for the duration of a test
func captureConsole(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	original := consoleWriter
	consoleWriter = &buf
	t.Cleanup(func() { consoleWriter = original })
	return &buf
}

func TestInitializeLogger(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()
	console := captureConsole(t)

	logFile := filepath.Join(t.TempDir(), "logs", "test.log")

	cfg := config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "both",
		FilePath: logFile,
	}

	logger, err := InitializeLogger(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if logger == nil {
		t.Fatal("Logger is nil")
	}

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		t.Error("Log file was not created")
	}

	logger.Info("test message", "key", "value")
	CloseLogFile()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	var logEntry map[string]interface{}
	if err := json.Unmarshal(content, &logEntry); err != nil {
		t.Errorf("Log output is not valid JSON: %v", err)
	}

	if logEntry["msg"] != "test message" {
		t.Errorf("Expected msg='test message', got %v", logEntry["msg"])
	}
	if logEntry["key"] != "value" {
		t.Errorf("Expected key='value', got %v", logEntry["key"])
	}
	if logEntry["level"] != "INFO" {
		t.Errorf("Expected level='INFO', got %v", logEntry["level"])
	}

	if !strings.Contains(console.String(), `"msg":"test message"`) {
		t.Errorf("Expected console to receive the record, got %q", console.String())
	}
}

func TestInitializeLogger_ConsoleOnly(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()
	console := captureConsole(t)

	logFile := filepath.Join(t.TempDir(), "never.log")
	logger, err := InitializeLogger(config.LoggingConfig{Level: "info", Output: "console", FilePath: logFile})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logger.Info("console only")

	if _, err := os.Stat(logFile); !os.IsNotExist(err) {
		t.Error("Console output must not create a log file")
	}
	if !strings.Contains(console.String(), "console only") {
		t.Errorf("Expected console output, got %q", console.String())
	}
}

func TestInitializeLogger_TextFormat(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()
	console := captureConsole(t)

	logger, err := InitializeLogger(config.LoggingConfig{Level: "debug", Format: "text", Output: "console"})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logger.DebugContext(WithTraceID(context.Background(), "run-7"), "text record", "rows", 12)

	out := console.String()
	for _, want := range []string{"level=DEBUG", `msg="text record"`, "rows=12", "trace_id=run-7"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in %q", want, out)
		}
	}

	again, err := InitializeLogger(config.LoggingConfig{Level: "error", Output: "console"})
	if err != nil || again != logger {
		t.Error("Expected a second initialization to return the first logger")
	}
}

func TestTraceIDInjection(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	logFile := filepath.Join(t.TempDir(), "test.log")

	cfg := config.LoggingConfig{
		Level:    "debug",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	}

	logger, err := InitializeLogger(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	ctx := WithTraceID(context.Background(), "test-trace-123")
	logger.InfoContext(ctx, "test with trace")
	CloseLogFile()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	var logEntry map[string]interface{}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &logEntry); err != nil {
		t.Fatalf("Failed to parse log JSON: %v", err)
	}

	if logEntry["trace_id"] != "test-trace-123" {
		t.Errorf("Expected trace_id='test-trace-123', got %v", logEntry["trace_id"])
	}
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := parseLogLevel(tt.level); got != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.level, got, tt.expected)
			}
		})
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := EnsureTraceID(context.Background())
	traceID := GetTraceID(ctx)
	if traceID == "" {
		t.Fatal("Expected trace ID to be generated")
	}

	if GetTraceID(EnsureTraceID(ctx)) != traceID {
		t.Error("EnsureTraceID changed existing trace ID")
	}

	if GetTraceID(context.Background()) != "" {
		t.Error("Expected empty trace ID on bare context")
	}

	if GenerateTraceID() == GenerateTraceID() {
		t.Error("Expected unique trace IDs")
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	WithComponent(logger, "loader").Info("test message")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse log JSON: %v", err)
	}
	if logEntry["component"] != "loader" {
		t.Errorf("Expected component='loader', got %v", logEntry["component"])
	}
}
