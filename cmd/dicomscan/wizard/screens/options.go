package screens

import (
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/dicomscan/cmd/dicomscan/wizard/components"
	"github.com/mrsinham/dicomscan/cmd/dicomscan/wizard/types"
	"github.com/mrsinham/dicomscan/internal/extract"
)

// OptionsScreen is the first wizard screen for scan configuration
type OptionsScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	config    *types.ScanConfig
	width     int
	height    int
	done      bool
	cancelled bool

	// String versions for form binding (huh binds to strings)
	workersStr string
	limitStr   string
}

// NewOptionsScreen creates a new scan options screen
func NewOptionsScreen(config *types.ScanConfig) *OptionsScreen {
	s := &OptionsScreen{
		helpPanel:  components.NewHelpPanel(),
		config:     config,
		workersStr: strconv.Itoa(config.Workers),
		limitStr:   strconv.Itoa(config.Limit),
	}

	// Create form fields
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("input_dir").
				Title("Input Directory").
				Placeholder("e.g., ./dicom_series").
				Value(&config.InputDir).
				Validate(validateDirectory),

			huh.NewConfirm().
				Key("recursive").
				Title("Scan Recursively").
				Value(&config.Recursive),

			huh.NewInput().
				Key("workers").
				Title("Workers (0 = CPU cores)").
				Value(&s.workersStr).
				Validate(validateNonNegativeInt),

			huh.NewInput().
				Key("columns").
				Title("Columns (empty = default)").
				Placeholder("e.g., Filename,Modality,MeanIntensity").
				Value(&config.Columns).
				Validate(validateColumns),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Key("no_intensity").
				Title("Skip Intensity Analysis").
				Value(&config.NoIntensity),

			huh.NewInput().
				Key("previews").
				Title("Previews Directory (empty = none)").
				Value(&config.PreviewsDir),

			huh.NewInput().
				Key("limit").
				Title("File Limit (0 = no limit)").
				Value(&s.limitStr).
				Validate(validateNonNegativeInt),

			huh.NewInput().
				Key("csv_path").
				Title("CSV Export Path (empty = none)").
				Value(&config.CSVPath),
		),
	).WithShowHelp(false).WithShowErrors(true)

	return s
}

func validateDirectory(s string) error {
	if s == "" {
		return fmt.Errorf("input directory is required")
	}
	info, err := os.Stat(s)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("not a directory")
	}
	return nil
}

func validateNonNegativeInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validateColumns(s string) error {
	_, err := extract.ParseColumns(s)
	return err
}

// Init implements tea.Model
func (s *OptionsScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *OptionsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.helpPanel.SetSize(msg.Width/3, msg.Height/2)
	}

	// Update form
	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	// Update help panel based on focused field
	focused := s.form.GetFocusedField()
	if focused != nil {
		s.helpPanel.SetField(focused.GetKey())
	}

	// Check if form is complete
	if s.form.State == huh.StateCompleted {
		s.done = true
		s.syncConfigFromForm()
	}

	return s, cmd
}

// syncConfigFromForm parses form values back to config
func (s *OptionsScreen) syncConfigFromForm() {
	if n, err := strconv.Atoi(s.workersStr); err == nil {
		s.config.Workers = n
	}
	if n, err := strconv.Atoi(s.limitStr); err == nil {
		s.config.Limit = n
	}
}

// View implements tea.Model
func (s *OptionsScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("DICOMSCAN WIZARD - Scan Configuration")

	// Layout: form on left, help panel on right
	formView := s.form.View()
	helpView := s.helpPanel.View()

	// Simple vertical layout for now
	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		formView,
		"",
		helpView,
		"",
		"Tab: Next field | Enter: Submit | Esc: Cancel",
	)

	return content
}

// Done returns true if the form was completed
func (s *OptionsScreen) Done() bool {
	return s.done
}

// Cancelled returns true if the user cancelled
func (s *OptionsScreen) Cancelled() bool {
	return s.cancelled
}

// Config returns the configured scan settings
func (s *OptionsScreen) Config() *types.ScanConfig {
	return s.config
}
