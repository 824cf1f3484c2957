package mcp

import (
	"github.com/custodia-labs/motocheck/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Inspections manages the inspection in progress.
	Inspections driving.InspectionService

	// Photos runs the photo pipeline for add_photos.
	Photos driving.PhotoService

	// Reports renders reports for generate_report.
	Reports driving.ReportService

	// Settings supplies the default report output directory.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.Inspections == nil {
		return ErrMissingInspectionService
	}
	// Photos, Reports and Settings are optional; their tools are not registered without them.
	return nil
}
