// internal/chat/entry.go
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Origin marks which side of the conversation produced an entry.
type Origin string

const (
	OriginUser      Origin = "user"
	OriginAssistant Origin = "assistant"
)

// Entry is one rendered line of the conversation transcript.
// IsTool and IsError are mutually exclusive; user entries carry neither.
type Entry struct {
	ID        string
	Origin    Origin
	Content   string
	IsTool    bool
	IsError   bool
	Timestamp time.Time
}

func newEntry(origin Origin, content string) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Origin:    origin,
		Content:   content,
		Timestamp: time.Now(),
	}
}

func userEntry(content string) Entry {
	return newEntry(OriginUser, content)
}

func assistantEntry(content string) Entry {
	return newEntry(OriginAssistant, content)
}

func toolEntry(content string) Entry {
	e := newEntry(OriginAssistant, content)
	e.IsTool = true
	return e
}

func errorEntry(content string) Entry {
	e := newEntry(OriginAssistant, content)
	e.IsError = true
	return e
}
