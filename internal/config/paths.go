package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the file paths of a report run.
// Every file name is fixed; only the base directory varies.
type Paths struct {
	BaseDir string
	LogsDir string

	InputCSV          string
	ClassificationCSV string
	SummaryCSV        string
	ChartWorkbook     string
}

// GetPaths returns the run paths relative to the current working directory,
// the same place the input file is expected to sit.
func GetPaths() (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewPaths(wd), nil
}

// NewPaths returns the run paths rooted at baseDir
func NewPaths(baseDir string) *Paths {
	return &Paths{
		BaseDir:           baseDir,
		LogsDir:           filepath.Join(baseDir, DefaultLogsDir),
		InputCSV:          filepath.Join(baseDir, InputFileName),
		ClassificationCSV: filepath.Join(baseDir, ClassificationFileName),
		SummaryCSV:        filepath.Join(baseDir, SummaryFileName),
		ChartWorkbook:     filepath.Join(baseDir, ChartWorkbookFileName),
	}
}

// Resolve returns path unchanged when absolute, otherwise joined to BaseDir
func (p *Paths) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.BaseDir, path)
}

// EnsureDirectories creates the logs directory if it doesn't exist
func (p *Paths) EnsureDirectories() error {
	if err := os.MkdirAll(p.LogsDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", p.LogsDir, err)
	}
	slog.Debug("Ensured directory exists", slog.String("directory", p.LogsDir))
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("base", p.BaseDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("files",
			slog.String("input", p.InputCSV),
			slog.Bool("input_exists", FileExists(p.InputCSV)),
			slog.String("classification", p.ClassificationCSV),
			slog.String("summary", p.SummaryCSV),
			slog.String("chart_workbook", p.ChartWorkbook),
		))
}
