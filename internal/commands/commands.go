// Package commands handles slash command parsing for the vetchat TUI.
package commands

import (
	"strings"
)

// Command interface for all command types
type Command interface {
	Type() string
}

// Help shows the help overlay
type Help struct{}

func (Help) Type() string { return "help" }

// ListPatients opens the patient browser
type ListPatients struct{}

func (ListPatients) Type() string { return "patients" }

// ShowPatient opens one patient record
type ShowPatient struct {
	Identifier string
}

func (ShowPatient) Type() string { return "patient" }

// AddPatient creates a new patient record
type AddPatient struct {
	Name    string
	Species string
	Breed   string
}

func (AddPatient) Type() string { return "add" }

// Clear resets the transcript to a fresh session
type Clear struct{}

func (Clear) Type() string { return "clear" }

// Export writes the current transcript to a markdown file
type Export struct{}

func (Export) Type() string { return "export" }

// Quit exits the program
type Quit struct{}

func (Quit) Type() string { return "quit" }

// ParseError represents a command parsing error
type ParseError struct {
	Message string
}

func (ParseError) Type() string { return "error" }

// Parse parses user input and returns the appropriate Command.
// Returns nil if the input is not a slash command.
func Parse(input string) Command {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return nil
	}

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/help":
		return Help{}

	case "/patients":
		return ListPatients{}

	case "/patient":
		identifier := strings.Join(args, " ")
		if identifier == "" {
			return ParseError{Message: "/patient requires a patient ID or name"}
		}
		return ShowPatient{Identifier: identifier}

	case "/add":
		if len(args) < 2 {
			return ParseError{Message: "/add requires a name and a species"}
		}
		cmd := AddPatient{Name: args[0], Species: args[1]}
		if len(args) > 2 {
			cmd.Breed = strings.Join(args[2:], " ")
		}
		return cmd

	case "/clear":
		return Clear{}

	case "/export":
		return Export{}

	case "/quit", "/exit":
		return Quit{}

	default:
		return ParseError{Message: "unknown command: " + cmd}
	}
}

// HelpText returns the help text for all available commands.
func HelpText() string {
	return `Available commands:
  /help              - Show this help
  /patients          - Browse all patient records
  /patient <id|name> - Show one patient record
  /add <name> <species> [breed] - Register a new patient
  /clear             - Start a fresh transcript
  /export            - Save the transcript as markdown
  /quit              - Exit vetchat`
}
