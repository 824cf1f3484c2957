// Package identity provides the view that edits the inspection date and
// the renter and motorcycle details.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/ports/driving"
)

// fields lists the editable rows, date first.
var fields = append([]domain.IdentityField{domain.FieldDate}, domain.IdentityFields()...)

// View edits the identity block of the inspection.
type View struct {
	styles      *styles.Styles
	inspections driving.InspectionService

	record *domain.Inspection
	err    error

	selected int
	editing  bool
	input    *input.FieldInput

	width  int
	height int
	ready  bool
}

// NewView creates a new identity view.
func NewView(s *styles.Styles, inspections driving.InspectionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:      s,
		inspections: inspections,
		input:       input.NewFieldInput(s, ""),
	}
}

// Init loads the current inspection.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.inspections == nil {
			return messages.InspectionLoaded{Err: errors.New("inspection service not available")}
		}
		ctx := context.Background()
		record, err := v.inspections.Current(ctx)
		if err != nil {
			return messages.InspectionLoaded{Err: err}
		}
		return messages.InspectionLoaded{Inspection: record, Completion: record.Completion(v.inspections.Schema())}
	}
}

// save writes one row and reports the outcome.
func (v *View) save(field domain.IdentityField, value string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if field != domain.FieldDate {
			return messages.InspectionUpdated{Err: v.inspections.SetIdentityField(ctx, field, value)}
		}

		date := domain.Today()
		if !strings.EqualFold(strings.TrimSpace(value), "today") {
			var err error
			if date, err = domain.ParseDate(value); err != nil {
				return messages.InspectionUpdated{Err: err}
			}
		}
		return messages.InspectionUpdated{Err: v.inspections.SetDate(ctx, date)}
	}
}

// Update handles messages for the identity view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.InspectionLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.record = msg.Inspection
		return v, nil

	case messages.InspectionUpdated:
		v.err = msg.Err
		return v, v.load()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKeys(msg)
		}
		return v.handleListKeys(msg)
	}
	return v, nil
}

func (v *View) handleListKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(fields)-1 {
			v.selected++
		}
	case "enter", "e":
		if v.record == nil || v.inspections == nil {
			return v, nil
		}
		field := fields[v.selected]
		v.editing = true
		v.err = nil
		if field == domain.FieldDate {
			v.input.SetPlaceholder("YYYY-MM-DD or today")
			return v, v.input.Edit(field.Label(), v.record.Date.String())
		}
		v.input.SetPlaceholder("")
		return v, v.input.Edit(field.Label(), v.record.Identity.Get(field))
	case "x", "delete":
		if v.record == nil || v.inspections == nil {
			return v, nil
		}
		return v, v.save(fields[v.selected], "")
	}
	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.editing = false
		v.input.Reset()
		return v, nil
	case "enter":
		value := v.input.Value()
		v.editing = false
		v.input.Reset()
		return v, v.save(fields[v.selected], value)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the identity form.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Identity"))
	b.WriteString("\n\n")

	if v.record == nil {
		if v.err != nil {
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		} else {
			b.WriteString(v.styles.Muted.Render("Loading inspection..."))
		}
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	}

	for i, field := range fields {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		value := v.record.Identity.Get(field)
		if field == domain.FieldDate {
			value = v.record.Date.Display()
		}
		rendered := value
		if value == "" {
			rendered = v.styles.Muted.Render("-")
		}

		label := fmt.Sprintf("%s%-10s", indicator, field.Label())
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(label))
		} else {
			b.WriteString(v.styles.Normal.Render(label))
		}
		b.WriteString(" ")
		b.WriteString(rendered)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.editing {
		b.WriteString(v.input.View())
		b.WriteString("\n\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		b.WriteString("\n")
	}

	if v.editing {
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] edit  [x] clear  [esc] back"))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
}

// Editing reports whether a field is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.selected = 0
	v.editing = false
	v.err = nil
	v.input.Reset()
}
