package styles

import "github.com/charmbracelet/lipgloss"

// color returns a lipgloss.Color, choosing light or dark variant based on the
// current theme set by SetDarkTheme.
func color(light, dark string) lipgloss.Color {
	if isDark {
		return lipgloss.Color(dark)
	}
	return lipgloss.Color(light)
}

// isDark tracks the current theme. Default is dark.
var isDark = true

// SetDarkTheme switches the color palette. Call this before the TUI starts.
// Passing false selects the light palette; true selects the dark palette.
func SetDarkTheme(dark bool) {
	isDark = dark
	applyTheme()
}

// IsDarkTheme returns the current theme setting.
func IsDarkTheme() bool {
	return isDark
}

func applyTheme() {
	// --- palette ---
	colorYellow := color("136", "226")
	colorBlue := color("27", "39")
	colorGreen := color("28", "42")
	colorRed := color("160", "196")
	colorGray := color("243", "240")
	colorWhite := color("16", "255")
	colorFocused := color("62", "62")
	colorCyan := color("30", "51")
	colorSelectedBg := color("254", "237")

	// --- header ---
	HeaderTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	HeaderServerStyle = lipgloss.NewStyle().Foreground(colorBlue)
	HeaderVersionStyle = lipgloss.NewStyle().Foreground(colorWhite)
	HeaderHintStyle = lipgloss.NewStyle().Foreground(colorGray)

	// --- system / connection state ---
	SystemRunningStyle = lipgloss.NewStyle().Foreground(colorGreen)
	SystemStoppedStyle = lipgloss.NewStyle().Foreground(colorGray)
	ConnOnlineStyle = lipgloss.NewStyle().Foreground(colorGreen)
	ConnOfflineStyle = lipgloss.NewStyle().Foreground(colorRed)

	// --- task status ---
	TaskRunningStyle = lipgloss.NewStyle().Foreground(colorYellow)
	TaskCompletedStyle = lipgloss.NewStyle().Foreground(colorGreen)
	TaskFailedStyle = lipgloss.NewStyle().Foreground(colorRed)

	// --- log levels ---
	LogErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	LogWarnStyle = lipgloss.NewStyle().Foreground(colorYellow)
	LogInfoStyle = lipgloss.NewStyle().Foreground(colorGreen)
	LogDebugStyle = lipgloss.NewStyle().Foreground(colorBlue)
	LogTimestampStyle = lipgloss.NewStyle().Foreground(colorGray)

	// --- table ---
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	TableSelectedStyle = lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorWhite)

	// --- status panel ---
	StatusLabelStyle = lipgloss.NewStyle().Foreground(colorGray)
	StatusValueStyle = lipgloss.NewStyle().Foreground(colorWhite)

	// --- status bar ---
	StatusBarStyle = lipgloss.NewStyle().Foreground(colorWhite)
	StatusBarErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	StatusBarHelpStyle = lipgloss.NewStyle().Foreground(colorGray)

	// --- help modal ---
	HelpModalStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorFocused).Padding(1, 2)
	HelpTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow).MarginBottom(1)
	HelpKeyStyle = lipgloss.NewStyle().Foreground(colorBlue).Width(12)
	HelpDescStyle = lipgloss.NewStyle().Foreground(colorWhite)

	// --- submit modal ---
	SubmitModalStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorFocused).Padding(1, 2)
	SubmitTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	SubmitLabelStyle = lipgloss.NewStyle().Foreground(colorGray)
	SubmitModeStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	SubmitErrorStyle = lipgloss.NewStyle().Foreground(colorRed)

	// --- section ---
	SectionTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	FocusAccentStyle = lipgloss.NewStyle().Foreground(colorCyan)
}

// All style variables — initialized with dark theme (default).
var (
	// Header styles
	HeaderTitleStyle   lipgloss.Style
	HeaderServerStyle  lipgloss.Style
	HeaderVersionStyle lipgloss.Style
	HeaderHintStyle    lipgloss.Style

	// System and connection state styles
	SystemRunningStyle lipgloss.Style
	SystemStoppedStyle lipgloss.Style
	ConnOnlineStyle    lipgloss.Style
	ConnOfflineStyle   lipgloss.Style

	// Task status styles
	TaskRunningStyle   lipgloss.Style
	TaskCompletedStyle lipgloss.Style
	TaskFailedStyle    lipgloss.Style

	// Log level styles
	LogErrorStyle     lipgloss.Style
	LogWarnStyle      lipgloss.Style
	LogInfoStyle      lipgloss.Style
	LogDebugStyle     lipgloss.Style
	LogTimestampStyle lipgloss.Style

	// Table styles
	TableHeaderStyle   lipgloss.Style
	TableSelectedStyle lipgloss.Style

	// Status panel styles
	StatusLabelStyle lipgloss.Style
	StatusValueStyle lipgloss.Style

	// Status bar styles
	StatusBarStyle      lipgloss.Style
	StatusBarErrorStyle lipgloss.Style
	StatusBarHelpStyle  lipgloss.Style

	// Help modal styles
	HelpModalStyle lipgloss.Style
	HelpTitleStyle lipgloss.Style
	HelpKeyStyle   lipgloss.Style
	HelpDescStyle  lipgloss.Style

	// Submit modal styles
	SubmitModalStyle lipgloss.Style
	SubmitTitleStyle lipgloss.Style
	SubmitLabelStyle lipgloss.Style
	SubmitModeStyle  lipgloss.Style
	SubmitErrorStyle lipgloss.Style

	// Section styles
	SectionTitleStyle lipgloss.Style
	FocusAccentStyle  lipgloss.Style
)

func init() {
	applyTheme()
}
