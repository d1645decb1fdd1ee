package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/masa-umich/limewire/internal/version"
)

// AppName is the dashboard's header branding.
const AppName = "LIMEWIRE BRIDGE"

// Layout constants for responsive terminal width.
const (
	MinTerminalWidth = 60
	MaxContentWidth  = 120
)

// Color palette, one state color per supervisor State.
var (
	PrimaryColor   = lipgloss.Color("#7D56F4")
	ConnectedColor = lipgloss.Color("#43BF6D")
	PendingColor   = lipgloss.Color("#FFA500")
	ErrorColor     = lipgloss.Color("#FF0000")
	TextColor      = lipgloss.Color("#FFFFFF")
	SubtleColor    = lipgloss.Color("#626262")
	BorderColor    = lipgloss.Color("#7D56F4")
)

var (
	LabelStyle = lipgloss.NewStyle().Foreground(SubtleColor)
	ValueStyle = lipgloss.NewStyle().Foreground(TextColor).Bold(true)
)

// IsTerminal reports whether stdout is an interactive terminal. The
// dashboard falls back to plain log lines when it is not (e.g. output
// piped to a file or running under a process supervisor).
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalSize returns the current terminal width and height, clamped to
// a sane range, with a fallback when the size can't be determined.
func TerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, 24
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if width > MaxContentWidth {
		width = MaxContentWidth
	}
	return width, height
}

func buildHeaderContent(fcAddress string) string {
	left := lipgloss.NewStyle().Foreground(TextColor).Bold(true).
		Render(AppName + " v" + version.Version)
	right := lipgloss.NewStyle().Foreground(SubtleColor).
		Render(fcAddress)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func buildFooterContent(helpText string) string {
	return lipgloss.NewStyle().Foreground(SubtleColor).Render(helpText)
}

// renderContainer wraps content in the bordered header/content/footer
// layout used for every dashboard frame.
func renderContainer(content, footerText string, width, height int) string {
	header := buildHeaderContent("")
	footer := buildFooterContent(footerText)

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(width - 4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(width - 4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().Width(width - 4).Padding(0, 1)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(header),
		contentStyle.Render(content),
		footerStyle.Render(footer),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(width - 2).
		Height(height - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, bordered)
}

// stateColor returns the color associated with a state label, matching the
// bridge.State string values ("connected", "connecting", "disconnected").
func stateColor(state string) lipgloss.Color {
	switch state {
	case "connected":
		return ConnectedColor
	case "connecting":
		return PendingColor
	default:
		return ErrorColor
	}
}
