// Package checklist provides the view that answers checklist items.
package checklist

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/ports/driving"
)

// reservedLines is the space taken by the title, input, error and status bar.
const reservedLines = 9

// View lists the checklist grouped by category.
type View struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	inspections driving.InspectionService
	statusBar   *status.Bar

	items  []domain.ChecklistItem
	record *domain.Inspection
	err    error

	selected int
	editing  bool
	input    *input.FieldInput

	width  int
	height int
	ready  bool
}

// NewView creates a new checklist view.
func NewView(s *styles.Styles, inspections driving.InspectionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	bar := status.NewBar(s, km)
	bar.SetHints(km.ChecklistHelp())

	var items []domain.ChecklistItem
	if inspections != nil {
		items = inspections.Schema().Items()
	}

	return &View{
		styles:      s,
		keymap:      km,
		inspections: inspections,
		statusBar:   bar,
		items:       items,
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
		record, err := v.inspections.Current(context.Background())
		if err != nil {
			return messages.InspectionLoaded{Err: err}
		}
		return messages.InspectionLoaded{Inspection: record, Completion: record.Completion(v.inspections.Schema())}
	}
}

func (v *View) setAnswer(itemID string, answer domain.Answer) tea.Cmd {
	v.statusBar.SetState(status.StateSaving)
	return func() tea.Msg {
		return messages.InspectionUpdated{Err: v.inspections.SetAnswer(context.Background(), itemID, answer)}
	}
}

// Update handles messages for the checklist view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.InspectionLoaded:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.record = msg.Inspection
		v.statusBar.SetCompletion(msg.Completion)
		if v.err == nil {
			v.statusBar.SetState(status.StateReady)
		}
		return v, nil

	case messages.InspectionUpdated:
		if msg.Err != nil {
			v.setError(msg.Err)
		} else {
			v.err = nil
			v.statusBar.SetState(status.StateReady)
		}
		return v, v.load()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKeys(msg)
		}
		return v.handleListKeys(msg)
	}
	return v, nil
}

func (v *View) setError(err error) {
	v.err = err
	v.statusBar.SetState(status.StateError)
	v.statusBar.SetMessage(err.Error())
}

func (v *View) handleListKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
		return v, nil
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.items)-1 {
			v.selected++
		}
		return v, nil
	}

	item, ok := v.current()
	if !ok || v.record == nil {
		return v, nil
	}

	switch {
	case keymap.Matches(k, v.keymap.RateGood):
		return v, v.rate(item, domain.ConditionGood)
	case keymap.Matches(k, v.keymap.RateFair):
		return v, v.rate(item, domain.ConditionFair)
	case keymap.Matches(k, v.keymap.RateReplace):
		return v, v.rate(item, domain.ConditionNeedsReplacement)
	case keymap.Matches(k, v.keymap.Clear):
		answer, err := domain.ParseAnswer(item, "")
		if err != nil {
			return v, nil
		}
		return v, v.setAnswer(item.ID, answer)
	case keymap.Matches(k, v.keymap.Edit):
		if !item.Kind.IsTextual() && item.Kind != domain.ItemKindTextAndPhotoOptional {
			return v, nil
		}
		v.editing = true
		return v, v.input.Edit(item.Name, v.record.AnswerFor(item).Text)
	}
	return v, nil
}

func (v *View) rate(item domain.ChecklistItem, c domain.Condition) tea.Cmd {
	if item.Kind != domain.ItemKindRated {
		return nil
	}
	return v.setAnswer(item.ID, domain.RatedAnswer(c))
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.editing = false
		v.input.Reset()
		return v, nil
	case "enter":
		item, _ := v.current()
		value := v.input.Value()
		v.editing = false
		v.input.Reset()
		answer, err := domain.ParseAnswer(item, value)
		if err != nil {
			v.setError(err)
			return v, nil
		}
		return v, v.setAnswer(item.ID, answer)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) current() (domain.ChecklistItem, bool) {
	if v.selected < 0 || v.selected >= len(v.items) {
		return domain.ChecklistItem{}, false
	}
	return v.items[v.selected], true
}

// View renders the checklist.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Checklist"))
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

	lines, cursor := v.renderRows()
	for _, line := range window(lines, cursor, v.height-reservedLines) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.editing {
		b.WriteString(v.input.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
		b.WriteString("\n")
	} else if item, ok := v.current(); ok {
		b.WriteString(v.styles.Muted.Render(v.describe(item)))
		b.WriteString("\n")
	}

	v.statusBar.SetWidth(v.width)
	b.WriteString(v.statusBar.View())
	return b.String()
}

// renderRows returns one line per category header and item, plus the
// line index of the selected item.
func (v *View) renderRows() ([]string, int) {
	mandatory := v.inspections.Schema().MandatoryPhotoItems()

	var (
		lines    []string
		cursor   int
		category domain.Category
	)
	for i, item := range v.items {
		if item.Category != category {
			if category != "" {
				lines = append(lines, "")
			}
			category = item.Category
			lines = append(lines, v.styles.Category.Render(category.String()))
		}

		indicator := "  "
		if i == v.selected {
			indicator = "> "
			cursor = len(lines)
		}
		name := fmt.Sprintf("%s%-28s", indicator, item.Name)
		if i == v.selected {
			name = v.styles.Selected.Render(name)
		} else {
			name = v.styles.Normal.Render(name)
		}

		lines = append(lines, name+" "+v.renderValue(item, slices.Contains(mandatory, item.ID)))
	}
	return lines, cursor
}

func (v *View) renderValue(item domain.ChecklistItem, mandatoryPhotos bool) string {
	photos := len(v.record.Photos[item.ID])
	var photoNote string
	if photos > 0 {
		photoNote = v.styles.Muted.Render(fmt.Sprintf("  [%d/%d photos]", photos, domain.MaxPhotosPerItem))
	}

	answer := v.record.AnswerFor(item)
	switch item.Kind {
	case domain.ItemKindRated:
		if answer.Condition == "" {
			return v.styles.Muted.Render("not evaluated") + photoNote
		}
		return v.styles.Condition(answer.Condition).Render(answer.Condition.Label()) + photoNote
	case domain.ItemKindPhotoOnly:
		text := fmt.Sprintf("%d/%d photos", photos, domain.MaxPhotosPerItem)
		switch {
		case photos > 0:
			return v.styles.Success.Render(text)
		case mandatoryPhotos:
			return v.styles.Warning.Render(text + " (required)")
		default:
			return v.styles.Muted.Render(text)
		}
	default:
		if answer.IsEmpty() {
			return v.styles.Muted.Render("-") + photoNote
		}
		return truncate(answer.Text, 40) + photoNote
	}
}

func (v *View) describe(item domain.ChecklistItem) string {
	switch item.Kind {
	case domain.ItemKindRated:
		return "Rate with 1 good, 2 fair, 3 needs replacement"
	case domain.ItemKindPhotoOnly:
		return "Attach photos with: motocheck photo add " + item.ID + " <files>"
	default:
		return item.Kind.Description() + ": press enter to edit"
	}
}

// window returns at most size lines around cursor.
func window(lines []string, cursor, size int) []string {
	if size <= 0 || len(lines) <= size {
		return lines
	}
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	if start+size > len(lines) {
		start = len(lines) - size
	}
	return lines[start : start+size]
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
	v.statusBar.SetWidth(width)
}

// Selected returns the selected item, if any.
func (v *View) Selected() (domain.ChecklistItem, bool) {
	return v.current()
}

// Editing reports whether an answer is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.selected = 0
	v.editing = false
	v.err = nil
	v.input.Reset()
	v.statusBar.Clear()
}
