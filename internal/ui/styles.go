// internal/ui/styles.go
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Cyan    = lipgloss.Color("#00FFFF")
	Green   = lipgloss.Color("#00FF00")
	Yellow  = lipgloss.Color("#FFD700")
	Red     = lipgloss.Color("#FF6B6B")
	SkyBlue = lipgloss.Color("#87CEEB")
	Dim     = lipgloss.Color("#555555")
	White   = lipgloss.Color("#FFFFFF")

	// Text styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Cyan)

	UserStyle = lipgloss.NewStyle().
			Foreground(SkyBlue).
			Bold(true)

	AssistantStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	ToolStyle = lipgloss.NewStyle().
			Foreground(Yellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(Dim)
)

// EntryStyle returns the header style for a transcript entry.
func EntryStyle(isUser, isTool, isError bool) lipgloss.Style {
	switch {
	case isUser:
		return UserStyle
	case isError:
		return ErrorStyle
	case isTool:
		return ToolStyle
	default:
		return AssistantStyle
	}
}
