// internal/ui/chat.go
// The vetchat terminal surface: a transcript viewport over the chat
// session, a single input line, and overlays for the patient browser
// and help. Input is disabled while a send is in flight; the session
// itself also rejects re-entrant sends.
package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"vetchat/internal/api"
	"vetchat/internal/chat"
	"vetchat/internal/commands"
	"vetchat/internal/export"
	"vetchat/internal/patients"
)

// ViewMode represents the current view state
type ViewMode int

const (
	ViewChat ViewMode = iota
	ViewPatients
	ViewPatientDetail
	ViewHelp
)

type sendDoneMsg struct{}

type patientsLoadedMsg struct {
	list []patients.Patient
	err  error
	show bool
}

type patientLoadedMsg struct {
	patient *patients.Patient
	err     error
}

type patientCreatedMsg struct {
	message string
	err     error
}

type exportDoneMsg struct {
	path string
	err  error
}

type tickMsg time.Time

type Model struct {
	client  *api.Client
	session *chat.Session

	viewport viewport.Model
	input    textinput.Model
	browser  *PatientBrowser
	detail   *patients.Patient

	mode          ViewMode
	width, height int
	ready         bool
	frame         int
	notice        string
}

func New(client *api.Client, session *chat.Session) Model {
	input := textinput.New()
	input.Placeholder = "Ask about a patient, or /help"
	input.Focus()

	return Model{
		client:  client,
		session: session,
		input:   input,
		browser: NewPatientBrowser(),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.browser.SetMaxHeight(msg.Height)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 4
		}
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.refreshTranscript()
		m.viewport.GotoBottom()
		if m.session.Busy() {
			m.frame = (m.frame + 1) % 4
			return m, tick()
		}
		return m, nil

	case sendDoneMsg:
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, nil

	case patientsLoadedMsg:
		if msg.err != nil {
			m.notice = "failed to load patients: " + msg.err.Error()
			return m, nil
		}
		m.browser.SetPatients(msg.list)
		if msg.show {
			m.mode = ViewPatients
		}
		return m, nil

	case patientLoadedMsg:
		if msg.err != nil {
			m.notice = "failed to load patient: " + msg.err.Error()
			return m, nil
		}
		m.detail = msg.patient
		m.mode = ViewPatientDetail
		return m, nil

	case patientCreatedMsg:
		if msg.err != nil {
			m.notice = "failed to add patient: " + msg.err.Error()
			return m, nil
		}
		m.notice = msg.message
		// Keep the browser current for the next /patients
		return m, m.loadPatients(false)

	case exportDoneMsg:
		if msg.err != nil {
			m.notice = "export failed: " + msg.err.Error()
		} else {
			m.notice = "transcript saved to " + msg.path
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ViewPatients:
		switch msg.String() {
		case "esc", "q":
			m.mode = ViewChat
		case "up", "k":
			m.browser.Up()
		case "down", "j":
			m.browser.Down()
		case "enter":
			if p := m.browser.Selected(); p != nil {
				return m, m.loadPatient(p.ID)
			}
		}
		return m, nil

	case ViewPatientDetail:
		if msg.String() == "esc" || msg.String() == "q" {
			m.mode = ViewPatients
		}
		return m, nil

	case ViewHelp:
		if msg.String() == "esc" || msg.String() == "q" {
			m.mode = ViewChat
		}
		return m, nil
	}

	// Chat view
	switch msg.String() {
	case "esc":
		m.notice = ""
		return m, nil
	case "up", "pgup":
		m.viewport.LineUp(1)
		return m, nil
	case "down", "pgdown":
		m.viewport.LineDown(1)
		return m, nil
	case "enter":
		return m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	m.notice = ""

	if cmd := commands.Parse(text); cmd != nil {
		m.input.SetValue("")
		return m.runCommand(cmd)
	}

	if strings.TrimSpace(text) == "" || m.session.Busy() {
		return m, nil
	}

	m.input.SetValue("")
	return m, tea.Batch(m.send(text), tick())
}

func (m Model) runCommand(cmd commands.Command) (tea.Model, tea.Cmd) {
	switch c := cmd.(type) {
	case commands.Help:
		m.mode = ViewHelp
		return m, nil
	case commands.ListPatients:
		return m, m.loadPatients(true)
	case commands.ShowPatient:
		return m, m.loadPatient(c.Identifier)
	case commands.AddPatient:
		return m, m.createPatient(c)
	case commands.Clear:
		m.session.Reset()
		m.refreshTranscript()
		m.viewport.GotoTop()
		return m, nil
	case commands.Export:
		return m, m.export()
	case commands.Quit:
		return m, tea.Quit
	case commands.ParseError:
		m.notice = c.Message
		return m, nil
	}
	return m, nil
}

func (m Model) send(text string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		session.Send(context.Background(), text)
		return sendDoneMsg{}
	}
}

func (m Model) loadPatients(show bool) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		list, err := client.ListPatients(context.Background())
		return patientsLoadedMsg{list: list, err: err, show: show}
	}
}

func (m Model) createPatient(c commands.AddPatient) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		msg, err := client.CreatePatient(context.Background(), patients.Patient{
			Name:    c.Name,
			Species: c.Species,
			Breed:   c.Breed,
		})
		return patientCreatedMsg{message: msg, err: err}
	}
}

func (m Model) loadPatient(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		p, err := client.GetPatient(context.Background(), id)
		return patientLoadedMsg{patient: p, err: err}
	}
}

func (m Model) export() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		home, err := os.UserHomeDir()
		if err != nil {
			return exportDoneMsg{err: err}
		}
		path, err := export.WriteTranscript(session.Entries(), home)
		return exportDoneMsg{path: path, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(RenderTranscript(m.session.Entries()))
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.mode {
	case ViewPatients:
		return m.browser.Render()
	case ViewPatientDetail:
		if m.detail != nil {
			return RenderPatient(m.detail)
		}
		return m.browser.Render()
	case ViewHelp:
		return HelpContent()
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("vetchat"))
	sb.WriteString(DimStyle.Render("  clinic assistant"))
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.statusLine())
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	return sb.String()
}

func (m Model) statusLine() string {
	if m.session.Busy() {
		frames := []string{"", ".", "..", "..."}
		return DimStyle.Render(fmt.Sprintf("assistant is thinking%s", frames[m.frame]))
	}
	if m.notice != "" {
		return DimStyle.Render(m.notice)
	}
	if lastErr := m.session.LastError(); lastErr != "" {
		return ErrorStyle.Render(lastErr)
	}
	return ""
}
