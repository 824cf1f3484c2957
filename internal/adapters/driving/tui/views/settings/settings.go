// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/ports/driving"
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"

	keyStorageBackend = "storage.backend"
)

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	// Current settings
	settings *domain.AppSettings
	keys     []string
	err      error
	saved    string

	// Navigation state
	selected int
	editing  bool
	input    *input.FieldInput

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	var keys []string
	if settingsService != nil {
		keys = settingsService.Keys()
	}

	return &View{
		styles:          s,
		settingsService: settingsService,
		keys:            keys,
		input:           input.NewFieldInput(s, ""),
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// setValue returns a command that writes one setting.
func (v *View) setValue(key, value string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Err: v.settingsService.Set(key, value)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			v.saved = ""
			return v, nil
		}
		v.err = nil
		v.saved = "Saved"
		// Reload settings after save
		return v, v.loadSettings()

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
	case keyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(v.keys)-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil || v.selected >= len(v.keys) {
			return v, nil
		}
		key := v.keys[v.selected]
		v.saved = ""
		if key == keyStorageBackend {
			return v, v.setValue(key, nextBackend(v.settings.Storage.Backend).String())
		}
		v.editing = true
		return v, v.input.Edit(key, Value(v.settings, key))
	}
	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		v.editing = false
		v.input.Reset()
		return v, nil
	case keyEnter:
		key := v.keys[v.selected]
		value := v.input.Value()
		v.editing = false
		v.input.Reset()
		return v, v.setValue(key, value)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// nextBackend cycles through the supported storage backends.
func nextBackend(current domain.StorageBackend) domain.StorageBackend {
	backends := domain.AllStorageBackends()
	for i, b := range backends {
		if b == current {
			return backends[(i+1)%len(backends)]
		}
	}
	return backends[0]
}

// Value returns the current value of a config key.
func Value(s *domain.AppSettings, key string) string {
	switch key {
	case "company.name":
		return s.Company.Name
	case "company.product_name":
		return s.Company.ProductName
	case "company.tax_id":
		return s.Company.TaxID
	case "company.phone":
		return s.Company.Phone
	case "company.address":
		return s.Company.Address
	case "company.logo_url":
		return s.Company.LogoURL
	case keyStorageBackend:
		return s.Storage.Backend.String()
	case "storage.data_dir":
		return s.Storage.DataDir
	case "report.output_dir":
		return s.Report.OutputDir
	case "photos.max_concurrency":
		return strconv.Itoa(s.Photos.MaxConcurrency)
	default:
		return ""
	}
}

// View renders the settings view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.settings == nil {
		if v.err != nil {
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		} else {
			b.WriteString(v.styles.Muted.Render("Loading settings..."))
		}
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	}

	section := ""
	for i, key := range v.keys {
		if prefix, _, _ := strings.Cut(key, "."); prefix != section {
			if section != "" {
				b.WriteString("\n")
			}
			section = prefix
			b.WriteString(v.styles.Subtitle.Render(titleCase(prefix)))
			b.WriteString("\n")
		}

		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		value := Value(v.settings, key)
		if value == "" {
			value = "(not set)"
		}
		if key == keyStorageBackend {
			value = v.settings.Storage.Backend.Description()
		}

		line := fmt.Sprintf("%s%-24s %s", indicator, key, value)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
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
	} else if v.saved != "" {
		b.WriteString(v.styles.Success.Render(v.saved))
		b.WriteString("\n")
	}

	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	if v.editing {
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	}
	return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.selected = 0
	v.editing = false
	v.err = nil
	v.saved = ""
	v.input.Reset()
}
