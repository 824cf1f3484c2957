// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/motocheck/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewIdentity edits the date and identity fields.
	ViewIdentity
	// ViewChecklist answers checklist items.
	ViewChecklist
	// ViewReport validates the inspection and renders reports.
	ViewReport
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewIdentity:
		return "identity"
	case ViewChecklist:
		return "checklist"
	case ViewReport:
		return "report"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// InspectionLoaded carries the current inspection record and its progress.
type InspectionLoaded struct {
	Inspection *domain.Inspection
	Completion domain.Completion
	Err        error
}

// InspectionUpdated signals a write to the inspection finished.
// Views reload the record when they receive it.
type InspectionUpdated struct {
	Err error
}

// ValidationCompleted carries the outcome of validating the inspection.
type ValidationCompleted struct {
	Result domain.ValidationResult
	Err    error
}

// ReportGenerated signals a report was rendered and written to Path.
type ReportGenerated struct {
	Format domain.ReportFormat
	Path   string
	Pages  int
	Err    error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
