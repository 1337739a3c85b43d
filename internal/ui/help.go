// internal/ui/help.go
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vetchat/internal/commands"
)

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Cyan)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Yellow)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)
)

// HelpContent returns the formatted help overlay content.
func HelpContent() string {
	var content strings.Builder

	content.WriteString(helpTitleStyle.Render("VETCHAT HELP"))
	content.WriteString("\n\n")

	content.WriteString(helpSectionStyle.Render("KEYBINDINGS"))
	content.WriteString("\n\n")
	keys := [][2]string{
		{"enter", "send message / run command"},
		{"up/down", "scroll the transcript"},
		{"esc", "return to the chat"},
		{"ctrl+c", "quit"},
	}
	for _, k := range keys {
		content.WriteString("  ")
		content.WriteString(helpKeyStyle.Render(k[0]))
		content.WriteString(strings.Repeat(" ", 12-len(k[0])))
		content.WriteString(k[1])
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(helpSectionStyle.Render("COMMANDS"))
	content.WriteString("\n\n")
	content.WriteString(commands.HelpText())
	content.WriteString("\n\n")
	content.WriteString(DimStyle.Render("Everything else you type is sent to the clinic assistant."))

	return content.String()
}
