// Package reportfile writes generated reports to disk.
package reportfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/ports/driving"
	"github.com/custodia-labs/motocheck/internal/logger"
)

// OutputDir picks the directory a report is written to: dir when set,
// otherwise report.output_dir from settings, otherwise the working directory.
// settings may be nil.
func OutputDir(dir string, settings driving.SettingsService) (string, error) {
	if dir != "" {
		return dir, nil
	}
	if settings != nil {
		s, err := settings.Get()
		if err != nil {
			return "", fmt.Errorf("loading settings: %w", err)
		}
		if s.Report.OutputDir != "" {
			return s.Report.OutputDir, nil
		}
	}
	return ".", nil
}

// Write creates dir if needed and writes the report under its file name.
// It returns the written path.
func Write(dir string, report *domain.Report) (string, error) {
	if report == nil || report.FileName == "" {
		return "", fmt.Errorf("%w: report has no file name", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	path := filepath.Join(dir, report.FileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, report.Data, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("writing report: %w", err)
	}

	logger.Debug("wrote %s report to %s (%d bytes)", report.Format, path, len(report.Data))
	return path, nil
}
