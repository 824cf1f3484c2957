package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/views/checklist"
	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/views/identity"
	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/views/report"
	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/motocheck/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView      *menu.View
	identityView  *identity.View
	checklistView *checklist.View
	reportView    *report.View
	settingsView  *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		menuView:      menu.NewView(s),
		identityView:  identity.NewView(s, ports.Inspections),
		checklistView: checklist.NewView(s, ports.Inspections),
		reportView:    report.NewView(s, ports.Inspections, ports.Reports, ports.Settings),
		settingsView:  settings.NewView(s, ports.Settings),
		currentView:   messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("motocheck"),
		a.loadProgress(),
	)
}

// loadProgress fetches the completion summary shown on the menu.
func (a *App) loadProgress() tea.Cmd {
	ctx := a.ctx
	inspections := a.ports.Inspections
	return func() tea.Msg {
		status, err := inspections.Status(ctx)
		return messages.InspectionLoaded{Completion: status, Err: err}
	}
}

func progressLine(c domain.Completion) string {
	photos := "photos missing"
	if c.PhotoComplete {
		photos = "photos ok"
	}
	signed := "unsigned"
	if c.Signed {
		signed = "signed"
	}
	return fmt.Sprintf("%d/%d answered · %s · %s", c.Answered, c.Required, photos, signed)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				return a.Update(messages.ViewChanged{View: messages.ViewMenu})
			}
			return a, nil
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		a.err = nil
		switch msg.View {
		case messages.ViewMenu:
			return a, a.loadProgress()
		case messages.ViewIdentity:
			a.identityView.Reset()
			return a, a.identityView.Init()
		case messages.ViewChecklist:
			a.checklistView.Reset()
			return a, a.checklistView.Init()
		case messages.ViewReport:
			a.reportView.Reset()
			return a, a.reportView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewHelp:
		}
		return a, nil

	case messages.InspectionLoaded:
		if a.currentView == messages.ViewMenu {
			if msg.Err != nil {
				a.err = msg.Err
				a.menuView.SetProgress("")
			} else {
				a.menuView.SetProgress(progressLine(msg.Completion))
			}
			return a, nil
		}
		return a, a.forward(msg)

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.forward(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	cmd = a.forward(msg)
	return a, cmd
}

// forward passes a message to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewIdentity:
		a.identityView, cmd = a.identityView.Update(msg)
	case messages.ViewChecklist:
		a.checklistView, cmd = a.checklistView.Update(msg)
	case messages.ViewReport:
		a.reportView, cmd = a.reportView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewIdentity:
		return a.identityView.View()
	case messages.ViewChecklist:
		return a.checklistView.View()
	case messages.ViewReport:
		return a.reportView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  j/k, ↑/↓    Move
  enter       Select or edit
  esc         Back to Menu
  ctrl+c      Quit

Identity:
  enter       Edit field ("today" sets the date)
  x           Clear field

Checklist:
  1 / 2 / 3   Good / Fair / Needs replacement
  enter, e    Edit text answer or final notes
  x           Clear answer

Report:
  f, tab      Switch between PDF and XLSX
  g, enter    Generate

Photos and signatures are captured from the command line:
  motocheck photo add <item> <files...>
  motocheck signature set <inspector|renter> <image>

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.identityView.SetDimensions(width, height)
	a.checklistView.SetDimensions(width, height)
	a.reportView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
