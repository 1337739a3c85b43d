// internal/chat/session.go
// Conversation state for one vetchat session: the ordered transcript, the
// in-flight flag, and the last transport error. All mutation happens here;
// the UI only reads.
package chat

import (
	"context"
	"strings"
	"sync"
)

const (
	// WelcomeMessage seeds every new session.
	WelcomeMessage = "Welcome to the clinic assistant. Ask about any patient, or type /help for commands."

	// FallbackErrorMessage is appended when the transport itself fails,
	// as opposed to the backend reporting an error of its own.
	FallbackErrorMessage = "Sorry, I couldn't reach the assistant. Please try again."
)

// Sender delivers one chat message and returns the backend's ordered
// reply batch. *api.Client satisfies this.
type Sender interface {
	SendChat(ctx context.Context, message string) ([]ResponseUnit, error)
}

// Session owns the transcript for one conversation. The transcript is
// append-only: entries are never reordered or removed, so append order is
// the only ordering guarantee and it matches send order across turns and
// unit order within a turn.
//
// At most one send is outstanding at a time. The busy flag is held for the
// whole window between a send and its resolution, and further sends during
// that window are rejected. The mutex makes the busy check-and-set a real
// single-permit guard rather than an unsynchronized boolean.
type Session struct {
	mu      sync.Mutex
	sender  Sender
	entries []Entry
	busy    bool
	lastErr string
}

// NewSession creates a session seeded with the welcome entry.
func NewSession(sender Sender) *Session {
	return &Session{
		sender:  sender,
		entries: []Entry{assistantEntry(WelcomeMessage)},
	}
}

// Send delivers one user message and appends the expanded reply to the
// transcript. It blocks until the turn resolves.
//
// Illegal calls are no-ops with no state change: text that trims to empty,
// or a call while a previous send is still in flight. On transport failure
// exactly one fallback error entry is appended and the last-error string is
// set; the session always returns to idle and stays usable.
func (s *Session) Send(ctx context.Context, text string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return
	}
	s.busy = true
	s.lastErr = ""
	s.entries = append(s.entries, userEntry(trimmed))
	s.mu.Unlock()

	// The only suspension point: one network round trip, no retries.
	units, err := s.sender.SendChat(ctx, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.busy = false }()

	if err != nil {
		s.lastErr = err.Error()
		s.entries = append(s.entries, errorEntry(FallbackErrorMessage))
		return
	}
	s.entries = append(s.entries, Expand(units)...)
}

// Reset discards the transcript and starts over with a fresh welcome
// entry, clearing any recorded transport error. A reset while a send is
// in flight is a no-op, like any other operation during that window.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return
	}
	s.entries = []Entry{assistantEntry(WelcomeMessage)}
	s.lastErr = ""
}

// Busy reports whether a send is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// LastError returns the most recent transport failure message, or ""
// if the last turn resolved cleanly. Backend-reported error units do
// not set this.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Entries returns a snapshot of the transcript in append order.
func (s *Session) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the current transcript length.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
