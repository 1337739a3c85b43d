// internal/chat/unit.go
package chat

import (
	"encoding/json"
	"fmt"
)

// UnitKind tags one item in a backend reply batch.
type UnitKind string

const (
	UnitText  UnitKind = "text"
	UnitTool  UnitKind = "tool"
	UnitError UnitKind = "error"
)

// ResponseUnit is one typed item in the backend's reply to a chat message.
// A single turn may yield several units; their order is meaningful and must
// be preserved all the way into the transcript.
type ResponseUnit struct {
	Kind    UnitKind
	Content string

	// Tool invocation fields, populated only for UnitTool.
	Name   string
	Args   map[string]any
	Result string
}

// TextUnit builds a plain assistant reply unit.
func TextUnit(content string) ResponseUnit {
	return ResponseUnit{Kind: UnitText, Content: content}
}

// ToolUnit builds a unit describing a tool the backend invoked.
func ToolUnit(name string, args map[string]any, result string) ResponseUnit {
	if args == nil {
		args = map[string]any{}
	}
	return ResponseUnit{Kind: UnitTool, Name: name, Args: args, Result: result}
}

// ErrorUnit builds a backend-reported failure unit. This is an ordinary
// transcript item, not a transport failure.
func ErrorUnit(content string) ResponseUnit {
	return ResponseUnit{Kind: UnitError, Content: content}
}

// wireUnit is the JSON shape units travel in on POST /chat.
type wireUnit struct {
	Type    string         `json:"type"`
	Content string         `json:"content,omitempty"`
	Name    string         `json:"name,omitempty"`
	Args    map[string]any `json:"args,omitempty"`
	Result  string         `json:"result,omitempty"`
}

func (u ResponseUnit) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireUnit{
		Type:    string(u.Kind),
		Content: u.Content,
		Name:    u.Name,
		Args:    u.Args,
		Result:  u.Result,
	})
}

func (u *ResponseUnit) UnmarshalJSON(data []byte) error {
	var w wireUnit
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	switch UnitKind(w.Type) {
	case UnitText, UnitTool, UnitError:
	default:
		return fmt.Errorf("unknown response unit type %q", w.Type)
	}

	// A tool unit may omit args or result on the wire; default them so
	// downstream rendering never has to nil-check.
	if w.Args == nil {
		w.Args = map[string]any{}
	}

	u.Kind = UnitKind(w.Type)
	u.Content = w.Content
	u.Name = w.Name
	u.Args = w.Args
	u.Result = w.Result
	return nil
}
