// Package scan runs the sanitizer over files and aggregates the
// outcomes into a single report.
package scan

import (
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/Easy-Infra-Ltd/svg-scanner/src/sanitizer"
)

// FileScanner sanitizes one file at a time.
type FileScanner struct {
	fs     afero.Fs
	engine sanitizer.Engine
	logger *slog.Logger
}

// NewFileScanner creates a FileScanner reading from fs.
func NewFileScanner(fs afero.Fs, engine sanitizer.Engine, logger *slog.Logger) *FileScanner {
	return &FileScanner{
		fs:     fs,
		engine: engine,
		logger: logger.With("area", "scanner", "engine", engine.Name()),
	}
}

// Scan reads path and classifies the engine's verdict on it. A file that
// cannot be read never reaches the engine.
func (s *FileScanner) Scan(path string) FileResult {
	doc, err := s.read(path)
	if err != nil {
		s.logger.Debug("read failed", "path", path, "error", err)
		return failure(path, fmt.Sprintf("File specified could not be read (%s)", path))
	}

	res := s.engine.Sanitize(doc)
	if res.Failed() {
		s.logger.Debug("sanitize failed", "path", path, "error", res.Err)
	}
	return Classify(path, res)
}

func (s *FileScanner) read(path string) ([]byte, error) {
	fi, err := s.fs.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "stat")
	}
	if fi.IsDir() {
		return nil, errors.Newf("%s is a directory", path)
	}
	doc, err := afero.ReadFile(s.fs, path)
	return doc, errors.Wrap(err, "read")
}

// Classify turns an engine result into a FileResult. A failed result
// wins over any issues the engine reported alongside it.
func Classify(path string, res sanitizer.Result) FileResult {
	switch res.Outcome {
	case sanitizer.OutcomeClean:
		return FileResult{Path: path, Errors: 0, Messages: []sanitizer.Issue{}}
	case sanitizer.OutcomeIssues:
		issues := make([]sanitizer.Issue, len(res.Issues))
		copy(issues, res.Issues)
		return FileResult{Path: path, Errors: len(issues), Messages: issues}
	default:
		return failure(path, fmt.Sprintf("Unable to sanitize file '%s'", path))
	}
}

func failure(path, message string) FileResult {
	return FileResult{
		Path:     path,
		Errors:   1,
		Messages: []sanitizer.Issue{{Message: message}},
	}
}
