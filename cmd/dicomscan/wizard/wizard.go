package wizard

import (
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/dicomscan/cmd/dicomscan/wizard/components"
	"github.com/mrsinham/dicomscan/cmd/dicomscan/wizard/screens"
	"github.com/mrsinham/dicomscan/internal/scan"
)

// Phase represents the current phase/screen of the wizard.
type Phase int

const (
	PhaseOptions Phase = iota
	PhaseSummary
	PhaseSaveConfig
	PhaseProgress
	PhaseResults
	PhaseSaveCSV
	PhaseError
)

// Wizard is the main orchestrator for the wizard interface.
type Wizard struct {
	state *ScanState

	// Current phase
	phase Phase

	// Screen instances
	optionsScreen  *screens.OptionsScreen
	summaryScreen  *screens.SummaryScreen
	progressScreen *screens.ProgressScreen
	resultsScreen  *screens.ResultsScreen
	errorScreen    *screens.ErrorScreen

	// Save config form
	saveConfigForm *huh.Form
	configPath     string

	// Save CSV form
	saveCSVForm *huh.Form
	csvPath     string

	// Window size
	width  int
	height int

	// Final state
	cancelled bool
	finished  bool
	err       error
}

// NewWizard creates a new wizard with default or loaded state.
func NewWizard(state *ScanState) *Wizard {
	if state == nil {
		state = &ScanState{}
		state.Scan.InputDir = "."
	}

	w := &Wizard{
		state: state,
		phase: PhaseOptions,
	}

	w.optionsScreen = screens.NewOptionsScreen(&w.state.Scan)

	return w
}

// Init implements tea.Model.
func (w *Wizard) Init() tea.Cmd {
	return w.optionsScreen.Init()
}

// Update implements tea.Model.
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window size for all phases
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = wsm.Width
		w.height = wsm.Height
	}

	switch w.phase {
	case PhaseOptions:
		return w.updateOptions(msg)
	case PhaseSummary:
		return w.updateSummary(msg)
	case PhaseSaveConfig:
		return w.updateSaveConfig(msg)
	case PhaseProgress:
		return w.updateProgress(msg)
	case PhaseResults:
		return w.updateResults(msg)
	case PhaseSaveCSV:
		return w.updateSaveCSV(msg)
	case PhaseError:
		return w.updateError(msg)
	}

	return w, nil
}

// View implements tea.Model.
func (w *Wizard) View() string {
	switch w.phase {
	case PhaseOptions:
		return w.optionsScreen.View()
	case PhaseSummary:
		return w.summaryScreen.View()
	case PhaseSaveConfig:
		return w.viewSaveConfig()
	case PhaseProgress:
		return w.progressScreen.View()
	case PhaseResults:
		return w.resultsScreen.View()
	case PhaseSaveCSV:
		return w.viewSaveCSV()
	case PhaseError:
		return w.errorScreen.View()
	}

	return ""
}

// updateOptions handles updates in the scan configuration phase.
func (w *Wizard) updateOptions(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.optionsScreen.Update(msg)
	if os, ok := model.(*screens.OptionsScreen); ok {
		w.optionsScreen = os
	}

	if w.optionsScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	if w.optionsScreen.Done() {
		return w.transitionToSummary()
	}

	return w, cmd
}

// transitionToSummary moves to the summary screen.
func (w *Wizard) transitionToSummary() (tea.Model, tea.Cmd) {
	w.phase = PhaseSummary
	w.summaryScreen = screens.NewSummaryScreen(&w.state.Scan)
	return w, w.summaryScreen.Init()
}

// transitionToOptions goes back to the scan configuration screen.
func (w *Wizard) transitionToOptions() (tea.Model, tea.Cmd) {
	w.phase = PhaseOptions
	w.optionsScreen = screens.NewOptionsScreen(&w.state.Scan)
	return w, w.optionsScreen.Init()
}

// updateSummary handles updates in the summary phase.
func (w *Wizard) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.summaryScreen.Update(msg)
	if ss, ok := model.(*screens.SummaryScreen); ok {
		w.summaryScreen = ss
	}

	if w.summaryScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	if w.summaryScreen.Done() {
		switch w.summaryScreen.Action() {
		case screens.SummaryActionBack:
			return w.transitionToOptions()

		case screens.SummaryActionScan:
			return w.startScan()

		case screens.SummaryActionSaveConfig:
			return w.transitionToSaveConfig()

		case screens.SummaryActionCancel:
			w.cancelled = true
			return w, tea.Quit
		}
	}

	return w, cmd
}

// transitionToSaveConfig shows the save config dialog.
func (w *Wizard) transitionToSaveConfig() (tea.Model, tea.Cmd) {
	w.phase = PhaseSaveConfig
	w.configPath = "dicomscan-config.yaml"

	w.saveConfigForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("config_path").
				Title("Save configuration to").
				Description("Enter the path for the YAML config file").
				Value(&w.configPath).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("path is required")
					}
					return nil
				}),
		),
	).WithShowHelp(false)

	return w, w.saveConfigForm.Init()
}

// updateSaveConfig handles updates in the save config phase.
func (w *Wizard) updateSaveConfig(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Go back to summary
			return w.transitionToSummary()
		case "ctrl+c":
			w.cancelled = true
			return w, tea.Quit
		}
	}

	form, cmd := w.saveConfigForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.saveConfigForm = f
	}

	if w.saveConfigForm.State == huh.StateCompleted {
		if err := SaveToYAML(w.state, w.configPath); err != nil {
			w.err = err
			w.phase = PhaseError
			w.errorScreen = screens.NewErrorScreen(err)
			return w, nil
		}

		return w.transitionToSummary()
	}

	return w, cmd
}

// viewSaveConfig renders the save config dialog.
func (w *Wizard) viewSaveConfig() string {
	title := components.TitleStyle.Render("Save Configuration")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		w.saveConfigForm.View(),
		"",
		"Enter: Save | Esc: Back",
	)

	return content
}

// startScan begins the scan process.
func (w *Wizard) startScan() (tea.Model, tea.Cmd) {
	w.phase = PhaseProgress
	w.progressScreen = screens.NewProgressScreen(0)

	// Run the scan in a command and send the final message
	return w, func() tea.Msg {
		startTime := time.Now()

		opts, err := ToScanOptions(w.state)
		if err != nil {
			return screens.ErrorMsg{Error: err}
		}
		opts.Quiet = true // Suppress output for TUI integration

		rep, err := scan.Scan(opts)
		if err != nil {
			return screens.ErrorMsg{Error: err}
		}

		return screens.ResultsMsg{
			Report:   rep,
			Duration: time.Since(startTime),
		}
	}
}

// updateProgress handles updates in the progress phase.
func (w *Wizard) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case screens.ProgressMsg:
		w.progressScreen.SetProgress(msg.Current, msg.Total, msg.Path)
		return w, nil

	case screens.ResultsMsg:
		w.phase = PhaseResults
		w.resultsScreen = screens.NewResultsScreen(msg)
		if w.state.Scan.CSVPath != "" {
			// CSV export was configured up front, save immediately
			if err := msg.Report.SaveCSV(w.state.Scan.CSVPath); err != nil {
				w.phase = PhaseError
				w.err = err
				w.errorScreen = screens.NewErrorScreen(err)
				return w, nil
			}
			w.resultsScreen.SetCSVSaved(w.state.Scan.CSVPath)
		}
		return w, nil

	case screens.ErrorMsg:
		w.phase = PhaseError
		w.err = msg.Error
		w.errorScreen = screens.NewErrorScreen(msg.Error)
		return w, nil
	}

	model, cmd := w.progressScreen.Update(msg)
	if ps, ok := model.(*screens.ProgressScreen); ok {
		w.progressScreen = ps
	}

	if w.progressScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	return w, cmd
}

// updateResults handles updates in the results phase.
func (w *Wizard) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.resultsScreen.Update(msg)
	if rs, ok := model.(*screens.ResultsScreen); ok {
		w.resultsScreen = rs
	}

	if w.resultsScreen.SaveCSVRequested() {
		return w.transitionToSaveCSV()
	}

	if w.resultsScreen.Done() {
		w.finished = true
		return w, tea.Quit
	}

	return w, cmd
}

// transitionToSaveCSV shows the save CSV dialog.
func (w *Wizard) transitionToSaveCSV() (tea.Model, tea.Cmd) {
	w.phase = PhaseSaveCSV
	w.csvPath = "report.csv"
	if w.state.Scan.CSVPath != "" {
		w.csvPath = w.state.Scan.CSVPath
	}

	w.saveCSVForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("csv_path").
				Title("Export report to").
				Description("Enter the path for the CSV file").
				Value(&w.csvPath).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("path is required")
					}
					return nil
				}),
		),
	).WithShowHelp(false)

	return w, w.saveCSVForm.Init()
}

// updateSaveCSV handles updates in the save CSV phase.
func (w *Wizard) updateSaveCSV(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Go back to results
			w.phase = PhaseResults
			return w, nil
		case "ctrl+c":
			w.cancelled = true
			return w, tea.Quit
		}
	}

	form, cmd := w.saveCSVForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.saveCSVForm = f
	}

	if w.saveCSVForm.State == huh.StateCompleted {
		if err := w.resultsScreen.Report().SaveCSV(w.csvPath); err != nil {
			w.err = err
			w.phase = PhaseError
			w.errorScreen = screens.NewErrorScreen(err)
			return w, nil
		}

		w.resultsScreen.SetCSVSaved(w.csvPath)
		w.phase = PhaseResults
		return w, nil
	}

	return w, cmd
}

// viewSaveCSV renders the save CSV dialog.
func (w *Wizard) viewSaveCSV() string {
	title := components.TitleStyle.Render("Export CSV")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		w.saveCSVForm.View(),
		"",
		"Enter: Save | Esc: Back",
	)

	return content
}

// updateError handles updates in the error phase.
func (w *Wizard) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.errorScreen.Update(msg)
	if es, ok := model.(*screens.ErrorScreen); ok {
		w.errorScreen = es
	}

	if w.errorScreen.Done() {
		w.finished = true
		return w, tea.Quit
	}

	return w, cmd
}

// Run starts the interactive wizard for DICOM scan configuration.
// If fromConfig is provided, it loads the configuration from that YAML file.
func Run(fromConfig string) error {
	var state *ScanState

	// Load config if provided
	if fromConfig != "" {
		absPath, err := filepath.Abs(fromConfig)
		if err != nil {
			return fmt.Errorf("resolving config path: %w", err)
		}

		loaded, err := LoadFromYAML(absPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		state = loaded
	}

	// Create and run the wizard
	wizard := NewWizard(state)
	p := tea.NewProgram(wizard, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}

	// Check final state
	if w, ok := finalModel.(*Wizard); ok {
		if w.cancelled {
			return nil // User cancelled, not an error
		}
		if w.err != nil {
			return w.err
		}
	}

	return nil
}
