// Package report provides the view that validates the inspection and
// renders reports.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/ports/driving"
	"github.com/custodia-labs/motocheck/internal/reportfile"
)

// View shows readiness and renders the report on request.
type View struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	inspections driving.InspectionService
	reports     driving.ReportService
	settings    driving.SettingsService

	formats    []domain.ReportFormat
	format     int
	validation *domain.ValidationResult
	generating bool
	last       *messages.ReportGenerated
	err        error

	width  int
	height int
	ready  bool
}

// NewView creates a new report view. reports and settings may be nil.
func NewView(
	s *styles.Styles,
	inspections driving.InspectionService,
	reports driving.ReportService,
	settings driving.SettingsService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	var formats []domain.ReportFormat
	if reports != nil {
		formats = reports.Formats()
	}

	return &View{
		styles:      s,
		keymap:      keymap.DefaultKeyMap(),
		inspections: inspections,
		reports:     reports,
		settings:    settings,
		formats:     formats,
	}
}

// Init validates the inspection.
func (v *View) Init() tea.Cmd {
	return v.validate()
}

func (v *View) validate() tea.Cmd {
	return func() tea.Msg {
		if v.inspections == nil {
			return messages.ValidationCompleted{Err: errors.New("inspection service not available")}
		}
		result, err := v.inspections.Validate(context.Background())
		return messages.ValidationCompleted{Result: result, Err: err}
	}
}

func (v *View) generate(format domain.ReportFormat) tea.Cmd {
	v.generating = true
	v.err = nil
	return func() tea.Msg {
		dir, err := reportfile.OutputDir("", v.settings)
		if err != nil {
			return messages.ReportGenerated{Format: format, Err: err}
		}
		report, err := v.reports.Generate(context.Background(), format)
		if err != nil {
			return messages.ReportGenerated{Format: format, Err: err}
		}
		path, err := reportfile.Write(dir, report)
		if err != nil {
			return messages.ReportGenerated{Format: format, Err: err}
		}
		return messages.ReportGenerated{Format: format, Path: path, Pages: report.Pages}
	}
}

// Update handles messages for the report view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ValidationCompleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		result := msg.Result
		v.validation = &result
		return v, nil

	case messages.ReportGenerated:
		v.generating = false
		if msg.Err != nil {
			v.err = msg.Err
			v.last = nil
		} else {
			v.err = nil
			v.last = &msg
		}
		return v, v.validate()

	case tea.KeyMsg:
		return v.handleKeys(msg)
	}
	return v, nil
}

func (v *View) handleKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(k, v.keymap.Format):
		if len(v.formats) > 0 {
			v.format = (v.format + 1) % len(v.formats)
		}
	case keymap.Matches(k, v.keymap.Generate):
		if v.reports == nil || v.generating || len(v.formats) == 0 {
			return v, nil
		}
		return v, v.generate(v.formats[v.format])
	}
	return v, nil
}

// Format returns the selected report format.
func (v *View) Format() (domain.ReportFormat, bool) {
	if len(v.formats) == 0 {
		return "", false
	}
	return v.formats[v.format], true
}

// View renders the report view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Report"))
	b.WriteString("\n\n")

	b.WriteString(v.renderValidation())
	b.WriteString("\n")

	if v.reports == nil {
		b.WriteString(v.styles.Warning.Render("Report rendering is not configured"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	}

	b.WriteString(v.styles.Subtitle.Render("Format"))
	b.WriteString("\n")
	for i, f := range v.formats {
		indicator := "  "
		if i == v.format {
			indicator = "> "
		}
		line := fmt.Sprintf("%s%-5s %s", indicator, f, f.MIMEType())
		if f.RequiresValidation() {
			line += " (complete inspection required)"
		}
		if i == v.format {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case v.generating:
		b.WriteString(v.styles.Muted.Render("Generating..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.renderError())
	case v.last != nil:
		line := fmt.Sprintf("Report written to %s", v.last.Path)
		if v.last.Pages > 0 {
			line += fmt.Sprintf(" (%d pages)", v.last.Pages)
		}
		b.WriteString(v.styles.Success.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[f] format  [g] generate  [esc] back"))
	return b.String()
}

func (v *View) renderValidation() string {
	if v.validation == nil {
		if v.err != nil && v.reports == nil {
			return v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)) + "\n"
		}
		return v.styles.Muted.Render("Checking inspection...") + "\n"
	}
	if v.validation.OK {
		return v.styles.Success.Render("Ready for report") + "\n"
	}
	var b strings.Builder
	b.WriteString(v.styles.Warning.Render("Not ready for a PDF report"))
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render("  Reason: " + v.validation.Reason))
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render("  Fix:    " + v.validation.Focus))
	b.WriteString("\n")
	return b.String()
}

func (v *View) renderError() string {
	var verr *domain.ValidationError
	if errors.As(v.err, &verr) {
		return v.styles.Error.Render("Inspection is not ready: "+verr.Result.Reason) + "\n"
	}
	if errors.Is(v.err, domain.ErrReportInProgress) {
		return v.styles.Warning.Render("A report is already being generated") + "\n"
	}
	return v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)) + "\n"
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.validation = nil
	v.generating = false
	v.last = nil
	v.err = nil
}
