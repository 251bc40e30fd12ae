package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/dicomscan/cmd/dicomscan/wizard/components"
	"github.com/mrsinham/dicomscan/cmd/dicomscan/wizard/types"
)

// SummaryAction represents the action selected on the summary screen
type SummaryAction int

const (
	// SummaryActionBack returns to the options screen
	SummaryActionBack SummaryAction = iota
	// SummaryActionScan starts the scan
	SummaryActionScan
	// SummaryActionSaveConfig saves configuration to YAML file
	SummaryActionSaveConfig
	// SummaryActionCancel exits the wizard
	SummaryActionCancel
)

const (
	actionBack       = "back"
	actionScan       = "scan"
	actionSaveConfig = "save_config"
	actionCancel     = "cancel"
)

var (
	summaryPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2)

	summaryTitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("63")).
		Bold(true).
		MarginBottom(1)

	summaryLabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	summaryValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Bold(true)

	cliCommandStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("252")).
		Padding(0, 1)
)

// SummaryScreen displays the scan configuration before starting
type SummaryScreen struct {
	form      *huh.Form
	config    *types.ScanConfig
	action    string
	done      bool
	cancelled bool
	width     int
	height    int
}

// NewSummaryScreen creates a new summary screen
func NewSummaryScreen(config *types.ScanConfig) *SummaryScreen {
	s := &SummaryScreen{
		config: config,
		action: actionScan, // Default action
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("action").
				Title("Select an action").
				Options(
					huh.NewOption("Start scan", actionScan),
					huh.NewOption("Save configuration to YAML", actionSaveConfig),
					huh.NewOption("Back to edit", actionBack),
					huh.NewOption("Cancel and exit", actionCancel),
				).
				Value(&s.action),
		),
	).WithShowHelp(false)

	return s
}

// Init implements tea.Model
func (s *SummaryScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *SummaryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		case "esc":
			// Esc goes back instead of cancelling
			s.action = actionBack
			s.done = true
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.done = true
	}

	return s, cmd
}

// View implements tea.Model
func (s *SummaryScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("SUMMARY - Review Scan Configuration")

	panel := summaryPanelStyle.Width(50).Render(s.buildParameterSummary())
	cliSection := s.buildCLICommand()

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		panel,
		"",
		cliSection,
		"",
		s.form.View(),
		"",
		"Enter: Select action | Esc: Back",
	)

	return content
}

// buildParameterSummary builds the panel showing the configured scan
func (s *SummaryScreen) buildParameterSummary() string {
	var sb strings.Builder

	sb.WriteString(summaryTitleStyle.Render("Scan Configuration"))
	sb.WriteString("\n\n")

	columns := s.config.Columns
	if columns == "" {
		columns = "(default)"
	}
	workers := "CPU cores"
	if s.config.Workers > 0 {
		workers = fmt.Sprintf("%d", s.config.Workers)
	}

	rows := []struct {
		label string
		value string
	}{
		{"Input directory", s.config.InputDir},
		{"Recursive", fmt.Sprintf("%t", s.config.Recursive)},
		{"Workers", workers},
		{"Columns", columns},
		{"Intensity analysis", fmt.Sprintf("%t", !s.config.NoIntensity)},
	}
	if s.config.PreviewsDir != "" {
		rows = append(rows, struct{ label, value string }{"Previews", s.config.PreviewsDir})
	}
	if s.config.Limit > 0 {
		rows = append(rows, struct{ label, value string }{"File limit", fmt.Sprintf("%d", s.config.Limit)})
	}
	if s.config.CSVPath != "" {
		rows = append(rows, struct{ label, value string }{"CSV export", s.config.CSVPath})
	}

	for _, row := range rows {
		sb.WriteString(summaryLabelStyle.Render(row.label + ": "))
		sb.WriteString(summaryValueStyle.Render(row.value))
		sb.WriteString("\n")
	}

	return sb.String()
}

// buildCLICommand shows the equivalent non-interactive command
func (s *SummaryScreen) buildCLICommand() string {
	var parts []string
	parts = append(parts, "dicomscan", "--input", s.config.InputDir)
	if s.config.Recursive {
		parts = append(parts, "--recursive")
	}
	if s.config.Workers > 0 {
		parts = append(parts, "--workers", fmt.Sprintf("%d", s.config.Workers))
	}
	if s.config.Columns != "" {
		parts = append(parts, "--columns", fmt.Sprintf("%q", s.config.Columns))
	}
	if s.config.NoIntensity {
		parts = append(parts, "--no-intensity")
	}
	if s.config.PreviewsDir != "" {
		parts = append(parts, "--previews", s.config.PreviewsDir)
	}
	if s.config.Limit > 0 {
		parts = append(parts, "--limit", fmt.Sprintf("%d", s.config.Limit))
	}
	if s.config.CSVPath != "" {
		parts = append(parts, "--csv", s.config.CSVPath)
	}

	return "Equivalent command:\n" + cliCommandStyle.Render(strings.Join(parts, " "))
}

// Action returns the selected action
func (s *SummaryScreen) Action() SummaryAction {
	switch s.action {
	case actionScan:
		return SummaryActionScan
	case actionSaveConfig:
		return SummaryActionSaveConfig
	case actionCancel:
		return SummaryActionCancel
	default:
		return SummaryActionBack
	}
}

// Done returns true if an action was selected
func (s *SummaryScreen) Done() bool {
	return s.done
}

// Cancelled returns true if the user cancelled
func (s *SummaryScreen) Cancelled() bool {
	return s.cancelled
}
