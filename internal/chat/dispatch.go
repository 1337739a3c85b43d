// internal/chat/dispatch.go
package chat

import (
	"encoding/json"
	"fmt"
)

// Rendered is the display form of one response unit: the content string plus
// at most one of the two modifiers. It is a pure function of the unit, so
// replaying a batch always produces identical output.
type Rendered struct {
	Content string
	IsTool  bool
	IsError bool
}

// RenderUnit maps one response unit to its display form.
func RenderUnit(u ResponseUnit) Rendered {
	switch u.Kind {
	case UnitTool:
		return Rendered{
			Content: fmt.Sprintf("Tool: %s\nArgs: %s\nResult: %s", u.Name, formatArgs(u.Args), u.Result),
			IsTool:  true,
		}
	case UnitError:
		return Rendered{
			Content: "Error: " + u.Content,
			IsError: true,
		}
	default:
		return Rendered{Content: u.Content}
	}
}

// Expand converts an ordered reply batch into transcript entries, one per
// unit, preserving order. An empty batch is a legal no-op turn.
func Expand(units []ResponseUnit) []Entry {
	entries := make([]Entry, 0, len(units))
	for _, u := range units {
		r := RenderUnit(u)
		switch {
		case r.IsTool:
			entries = append(entries, toolEntry(r.Content))
		case r.IsError:
			entries = append(entries, errorEntry(r.Content))
		default:
			entries = append(entries, assistantEntry(r.Content))
		}
	}
	return entries
}

// formatArgs renders a tool's argument mapping as compact JSON.
// encoding/json sorts map keys, so equal mappings render identically.
func formatArgs(args map[string]any) string {
	if len(args) == 0 {
		return "{}"
	}
	data, err := json.Marshal(args)
	if err != nil {
		return "{}"
	}
	return string(data)
}
