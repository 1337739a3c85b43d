// internal/ui/render.go
package ui

import (
	"fmt"
	"strings"

	"vetchat/internal/chat"
)

// RenderTranscript renders transcript entries in display order: a styled
// header line per entry, content indented beneath it.
func RenderTranscript(entries []chat.Entry) string {
	var sb strings.Builder

	for _, e := range entries {
		ts := e.Timestamp.Format("15:04")
		style := EntryStyle(e.Origin == chat.OriginUser, e.IsTool, e.IsError)
		sb.WriteString(style.Render(fmt.Sprintf("[%s] %s:", ts, entryLabel(e))))
		sb.WriteString("\n")

		for _, line := range strings.Split(e.Content, "\n") {
			sb.WriteString("  ")
			if e.IsError {
				sb.WriteString(ErrorStyle.Render(line))
			} else if e.IsTool {
				sb.WriteString(ToolStyle.Render(line))
			} else {
				sb.WriteString(line)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func entryLabel(e chat.Entry) string {
	switch {
	case e.Origin == chat.OriginUser:
		return "You"
	case e.IsTool:
		return "Tool"
	case e.IsError:
		return "Assistant error"
	default:
		return "Assistant"
	}
}
