package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Message     string // Main confirmation message
	Destructive bool   // If true, Yes is red, No is green
	YesLabel    string // Custom label for Yes (default: "Yes")
	NoLabel     string // Custom label for No (default: "No")
}

// ConfirmationModel handles inline yes/no prompts
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation with the given configuration
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel

	if m.config.YesLabel == "" {
		m.config.YesLabel = "Yes"
	}
	if m.config.NoLabel == "" {
		m.config.NoLabel = "No"
	}
}

// Hide deactivates the confirmation
func (m *ConfirmationModel) Hide() {
	m.active = false
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events for the confirmation
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
		return nil

	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
		return nil
	}

	return nil
}

// View renders the prompt on one line
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}
	return fmt.Sprintf("%s %s", m.config.Message, m.formatOptions())
}

func (m *ConfirmationModel) formatOptions() string {
	yesColor, noColor := ColorSuccess, ColorDanger
	if m.config.Destructive {
		yesColor, noColor = ColorDanger, ColorSuccess
	}
	yes := lipgloss.NewStyle().Foreground(lipgloss.Color(yesColor)).Bold(true).
		Render(fmt.Sprintf("[y] %s", m.config.YesLabel))
	no := lipgloss.NewStyle().Foreground(lipgloss.Color(noColor)).Bold(true).
		Render(fmt.Sprintf("[n] %s", m.config.NoLabel))
	return yes + " / " + no
}
