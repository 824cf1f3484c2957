// Package tui provides an interactive terminal user interface for motocheck.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/motocheck/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Inspections edits the inspection in progress. Required.
	Inspections driving.InspectionService

	// Reports renders the inspection. Without it the report view only validates.
	Reports driving.ReportService

	// Settings manages application settings.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Inspections == nil {
		return ErrMissingInspectionService
	}
	return nil
}
