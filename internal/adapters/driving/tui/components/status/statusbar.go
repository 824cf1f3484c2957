// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/motocheck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/motocheck/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady  State = "ready"
	StateSaving State = "saving"
	StateError  State = "error"
	StateHelp   State = "help"
)

// Bar displays inspection progress and keybinding hints.
type Bar struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	state      State
	message    string
	completion *domain.Completion
	hints      []key.Binding
	width      int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is mostly passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the left side of the status bar.
func (s *Bar) renderLeft() string {
	switch s.state {
	case StateSaving:
		return s.styles.Muted.Render("Saving...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateReady:
		if s.completion != nil {
			return s.renderCompletion(*s.completion)
		}
		if s.message != "" {
			return s.styles.Normal.Render(s.message)
		}
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) renderCompletion(c domain.Completion) string {
	answered := fmt.Sprintf("%d/%d answered", c.Answered, c.Required)
	if c.Required > 0 && c.Answered == c.Required {
		answered = s.styles.Success.Render(answered)
	} else {
		answered = s.styles.Normal.Render(answered)
	}

	photos := s.styles.Warning.Render("photos missing")
	if c.PhotoComplete {
		photos = s.styles.Success.Render("photos ok")
	}

	signed := s.styles.Warning.Render("unsigned")
	if c.Signed {
		signed = s.styles.Success.Render("signed")
	}

	return answered + s.styles.Muted.Render(" · ") + photos + s.styles.Muted.Render(" · ") + signed
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := s.hints
	if len(bindings) == 0 {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetCompletion sets the inspection progress shown in the ready state.
func (s *Bar) SetCompletion(c domain.Completion) {
	s.completion = &c
}

// Completion returns the progress shown, if any.
func (s *Bar) Completion() (domain.Completion, bool) {
	if s.completion == nil {
		return domain.Completion{}, false
	}
	return *s.completion, true
}

// SetHints replaces the keybinding hints. Nil restores the short help.
func (s *Bar) SetHints(bindings []key.Binding) {
	s.hints = bindings
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.completion = nil
}
