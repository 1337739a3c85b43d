// internal/export/markdown.go
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vetchat/internal/chat"
)

// Transcript generates a formatted markdown string from a conversation
// transcript.
func Transcript(entries []chat.Entry) string {
	var sb strings.Builder

	sb.WriteString("# vetchat transcript\n\n")
	sb.WriteString("---\n\n")

	for i, e := range entries {
		ts := e.Timestamp.Format("15:04:05")
		sb.WriteString(fmt.Sprintf("### [%s] %s\n\n", ts, entryLabel(e)))

		content := strings.TrimSpace(e.Content)
		switch {
		case e.IsTool:
			// Tool blocks keep their fixed layout inside a code fence
			sb.WriteString("```\n")
			sb.WriteString(content)
			sb.WriteString("\n```\n")
		default:
			for _, line := range strings.Split(content, "\n") {
				sb.WriteString("> ")
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
		sb.WriteString("\n")

		if i < len(entries)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from vetchat on %s*\n", time.Now().Format("2006-01-02 15:04:05")))

	return sb.String()
}

// WriteTranscript exports a transcript to a markdown file under baseDir
// and returns the written path.
func WriteTranscript(entries []chat.Entry, baseDir string) (string, error) {
	dir := filepath.Join(baseDir, "transcripts")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create transcripts directory: %w", err)
	}

	filename := fmt.Sprintf("%s-transcript.md", time.Now().Format("2006-01-02-150405"))
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(Transcript(entries)), 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return path, nil
}

// entryLabel returns the display heading for one transcript entry.
func entryLabel(e chat.Entry) string {
	switch {
	case e.Origin == chat.OriginUser:
		return "You"
	case e.IsTool:
		return "Assistant (tool)"
	case e.IsError:
		return "Assistant (error)"
	default:
		return "Assistant"
	}
}
