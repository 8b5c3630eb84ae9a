package exporter

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	"salescli/internal/config"
	"salescli/internal/errors"
)

// utf8BOM lets spreadsheet applications recognize the files as UTF-8
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options. An existing file
// is truncated.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return errors.NewIOError("failed to create directory", filepath.Dir(fullPath), err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return errors.NewIOError("failed to open file", fullPath, err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write(utf8BOM); err != nil {
			return errors.NewIOError("failed to write BOM", fullPath, err)
		}
	}

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return errors.NewIOError("failed to write headers", fullPath, err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return errors.NewIOError("failed to write record", fullPath, err).WithContext("record", i)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewIOError("failed to flush CSV", fullPath, err)
	}
	return file.Close()
}

// WriteSimpleCSV writes a simple CSV file with headers and records
func (w *CSVWriter) WriteSimpleCSV(filePath string, headers []string, records [][]string) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

// StreamWriter writes records one at a time
type StreamWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer
	count  int
}

// CreateStreamWriter creates the file, writes the BOM and header row, and
// returns a writer for the records that follow.
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string) (*StreamWriter, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("Creating CSV stream writer",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("header_count", len(headers)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, errors.NewIOError("failed to create directory", filepath.Dir(fullPath), err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, errors.NewIOError("failed to create file", fullPath, err)
	}

	if _, err := file.Write(utf8BOM); err != nil {
		file.Close()
		return nil, errors.NewIOError("failed to write BOM", fullPath, err)
	}

	writer := csv.NewWriter(file)

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, errors.NewIOError("failed to write headers", fullPath, err)
		}
	}

	return &StreamWriter{path: fullPath, file: file, writer: writer}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	if err := s.writer.Write(record); err != nil {
		return errors.NewIOError("failed to write record", s.path, err).WithContext("record", s.count)
	}
	s.count++
	return nil
}

// Count returns the number of records written so far
func (s *StreamWriter) Count() int {
	return s.count
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return errors.NewIOError("failed to flush CSV", s.path, err)
	}
	if err := s.file.Close(); err != nil {
		return errors.NewIOError("failed to close file", s.path, err)
	}
	return nil
}

// resolvePath resolves relative paths against the run's base directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if w.paths == nil {
		return filePath
	}
	return w.paths.Resolve(filePath)
}
