package screens

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mrsinham/dicomscan/cmd/dicomscan/wizard/components"
	"github.com/mrsinham/dicomscan/internal/report"
)

// ProgressMsg is sent to update the progress screen during the scan
type ProgressMsg struct {
	Current int    // Current file number
	Total   int    // Total files to scan
	Path    string // Current file path being parsed
}

// ResultsMsg is sent when the scan completes successfully
type ResultsMsg struct {
	Report   *report.Report
	Duration time.Duration
}

// ErrorMsg is sent when an error occurs during the scan
type ErrorMsg struct {
	Error error
}

var (
	progressBarStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("63"))

	progressBarEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	progressPercentStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("63")).
				Bold(true)

	progressFileStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))

	progressElapsedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))

	cancelHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// ProgressScreen displays scan progress
type ProgressScreen struct {
	current   int
	total     int
	path      string
	startTime time.Time
	cancelled bool
	width     int
	height    int
}

// NewProgressScreen creates a new progress screen
func NewProgressScreen(total int) *ProgressScreen {
	return &ProgressScreen{
		current:   0,
		total:     total,
		startTime: time.Now(),
	}
}

// Init implements tea.Model
func (s *ProgressScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *ProgressScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	case ProgressMsg:
		s.current = msg.Current
		s.total = msg.Total
		s.path = msg.Path
	}

	return s, nil
}

// View implements tea.Model
func (s *ProgressScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("Scanning DICOM files...")

	// Calculate progress
	var percent float64
	if s.total > 0 {
		percent = float64(s.current) / float64(s.total) * 100
	}

	// Build progress bar
	barWidth := 40
	if s.width > 60 {
		barWidth = s.width / 2
		if barWidth > 60 {
			barWidth = 60
		}
	}
	progressBar := s.renderProgressBar(percent, barWidth)

	// Percentage display
	percentStr := progressPercentStyle.Render(fmt.Sprintf("%d%%", int(percent)))

	// File counter
	fileCounter := progressFileStyle.Render(fmt.Sprintf("File %d/%d", s.current, s.total))

	// Current path
	var pathDisplay string
	if s.path != "" {
		// Truncate path if too long
		displayPath := s.path
		maxPathLen := barWidth
		if len(displayPath) > maxPathLen {
			displayPath = "..." + displayPath[len(displayPath)-maxPathLen+3:]
		}
		pathDisplay = progressFileStyle.Render(displayPath)
	}

	// Elapsed time
	elapsed := time.Since(s.startTime)
	elapsedStr := progressElapsedStyle.Render(fmt.Sprintf("Elapsed: %.1fs", elapsed.Seconds()))

	// Cancel hint
	cancelHint := cancelHintStyle.Render("Press Ctrl+C to cancel")

	// Build the view
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n\n")
	sb.WriteString(progressBar)
	sb.WriteString(" ")
	sb.WriteString(percentStr)
	sb.WriteString("\n\n")
	sb.WriteString(fileCounter)
	if pathDisplay != "" {
		sb.WriteString(": ")
		sb.WriteString(pathDisplay)
	}
	sb.WriteString("\n")
	sb.WriteString(elapsedStr)
	sb.WriteString("\n\n")
	sb.WriteString(cancelHint)

	return sb.String()
}

// renderProgressBar creates a visual progress bar
func (s *ProgressScreen) renderProgressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	empty := width - filled

	bar := progressBarStyle.Render("[" + strings.Repeat("█", filled))
	bar += progressBarEmptyStyle.Render(strings.Repeat("░", empty) + "]")

	return bar
}

// Cancelled returns true if the user cancelled
func (s *ProgressScreen) Cancelled() bool {
	return s.cancelled
}

// SetProgress updates the progress (for external updates)
func (s *ProgressScreen) SetProgress(current, total int, path string) {
	s.current = current
	s.total = total
	s.path = path
}

// Results screen styles
var (
	resultsSuccessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)

	resultsLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))

	resultsValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Bold(true)

	resultsHintStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244")).
				Italic(true)
)

// ResultsScreen displays the scan report after completion
type ResultsScreen struct {
	report   *report.Report
	duration time.Duration
	csvPath  string // Set once a CSV export succeeded
	done     bool
	saveCSV  bool
	width    int
	height   int
}

// NewResultsScreen creates a new results screen
func NewResultsScreen(msg ResultsMsg) *ResultsScreen {
	return &ResultsScreen{
		report:   msg.Report,
		duration: msg.Duration,
	}
}

// Init implements tea.Model
func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *ResultsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "enter", "q":
			s.done = true
			return s, tea.Quit
		case "s":
			s.saveCSV = true
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	return s, nil
}

// View implements tea.Model
func (s *ResultsScreen) View() string {
	var sb strings.Builder

	successIcon := resultsSuccessStyle.Render("✓")
	successText := resultsSuccessStyle.Render("Scan complete!")
	sb.WriteString(successIcon)
	sb.WriteString(" ")
	sb.WriteString(successText)
	sb.WriteString("\n\n")

	summary := s.report.Summary()
	stats := []struct {
		label string
		value string
	}{
		{"Files found", fmt.Sprintf("%d", summary.Found)},
		{"Files parsed", fmt.Sprintf("%d", summary.Parsed)},
		{"Files skipped", fmt.Sprintf("%d", summary.Skipped)},
		{"Total size", humanize.Bytes(uint64(summary.TotalBytes))},
		{"Duration", fmt.Sprintf("%.1fs", s.duration.Seconds())},
	}

	sb.WriteString(components.TitleStyle.Render("Summary:"))
	sb.WriteString("\n")
	for _, stat := range stats {
		sb.WriteString("  ")
		sb.WriteString(resultsLabelStyle.Render(stat.label + ":"))
		sb.WriteString(" ")
		sb.WriteString(resultsValueStyle.Render(stat.value))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	// Report table, truncated to fit the terminal
	table := s.report.Render()
	lines := strings.Split(table, "\n")
	maxLines := 20
	if s.height > 0 && s.height-16 > 0 {
		maxLines = s.height - 16
	}
	if len(lines) > maxLines {
		truncated := len(lines) - maxLines
		lines = lines[:maxLines]
		lines = append(lines, resultsHintStyle.Render(fmt.Sprintf("... %d more rows (export as CSV to see all)", truncated)))
	}
	sb.WriteString(strings.Join(lines, "\n"))
	sb.WriteString("\n\n")

	if s.csvPath != "" {
		sb.WriteString(resultsSuccessStyle.Render(fmt.Sprintf("✓ CSV saved to %s", s.csvPath)))
		sb.WriteString("\n\n")
	}

	sb.WriteString(resultsHintStyle.Render("s: Save CSV | Enter or q: Exit"))

	return sb.String()
}

// Done returns true if the user is finished
func (s *ResultsScreen) Done() bool {
	return s.done
}

// SaveCSVRequested reports and clears a pending CSV save request
func (s *ResultsScreen) SaveCSVRequested() bool {
	if s.saveCSV {
		s.saveCSV = false
		return true
	}
	return false
}

// SetCSVSaved records a successful CSV export for display
func (s *ResultsScreen) SetCSVSaved(path string) {
	s.csvPath = path
}

// Report returns the scan report
func (s *ResultsScreen) Report() *report.Report {
	return s.report
}

// ErrorScreen displays an error that occurred during the scan
type ErrorScreen struct {
	err    error
	done   bool
	width  int
	height int
}

var (
	errorTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	errorMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	errorHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)
)

// NewErrorScreen creates a new error screen
func NewErrorScreen(err error) *ErrorScreen {
	return &ErrorScreen{
		err: err,
	}
}

// Init implements tea.Model
func (s *ErrorScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *ErrorScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "enter", "q":
			s.done = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	return s, nil
}

// View implements tea.Model
func (s *ErrorScreen) View() string {
	var sb strings.Builder

	errorIcon := errorTitleStyle.Render("✗")
	errorText := errorTitleStyle.Render("Scan failed")
	sb.WriteString(errorIcon)
	sb.WriteString(" ")
	sb.WriteString(errorText)
	sb.WriteString("\n\n")

	sb.WriteString(components.TitleStyle.Render("Error:"))
	sb.WriteString("\n")
	sb.WriteString("  ")
	sb.WriteString(errorMessageStyle.Render(s.err.Error()))
	sb.WriteString("\n\n")

	sb.WriteString(errorHintStyle.Render("Press Enter or q to exit"))

	return sb.String()
}

// Done returns true if the user is finished
func (s *ErrorScreen) Done() bool {
	return s.done
}

// Error returns the error
func (s *ErrorScreen) Error() error {
	return s.err
}
