package scan

import (
	"log/slog"

	"github.com/google/uuid"
)

// Aggregator scans a list of paths in order and builds one Report.
type Aggregator struct {
	scanner *FileScanner
	logger  *slog.Logger
}

// NewAggregator creates an Aggregator driving scanner.
func NewAggregator(scanner *FileScanner, logger *slog.Logger) *Aggregator {
	return &Aggregator{scanner: scanner, logger: logger.With("area", "aggregator")}
}

// RunAll scans every path sequentially and returns the finished report.
//
// Each scan adds its own error count to the totals. When a path repeats,
// its entry in Files holds the last scan while the totals still include
// every scan, so the two can disagree.
func (a *Aggregator) RunAll(paths []string) *Report {
	report := NewReport()
	log := a.logger.With("run", uuid.NewString())

	if len(paths) == 0 {
		report.Totals.Errors++
		report.Messages = [][]string{{MessageNoFiles}}
		log.Warn("no files to scan")
		return report
	}

	log.Info("scan started", "files", len(paths))
	for _, path := range paths {
		fr := a.scanner.Scan(path)
		report.Totals.Errors += fr.Errors
		report.Files.Set(fr)
		log.Debug("file scanned", "path", path, "errors", fr.Errors)
	}
	log.Info("scan finished", "files", report.Files.Len(), "errors", report.Totals.Errors)

	return report
}
