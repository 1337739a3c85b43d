// internal/engine/engine.go
// The clinic agent: turns one user message into an ordered batch of
// response units by routing keyword intents to patient-record tools.
package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"vetchat/internal/chat"
	"vetchat/internal/patients"
)

// Tool names reported in tool units.
const (
	ToolListPatients  = "list_patients"
	ToolGetPatient    = "get_patient"
	ToolAppointments  = "get_appointments"
	ToolWeightHistory = "get_weight_history"
	ToolVaccinations  = "get_vaccinations"
	ToolRecordWeight  = "record_weight"
)

const helpReply = "I can look up clinic patients for you. Try \"list patients\", " +
	"\"show me P001\", or ask about a patient's weight, vaccinations, or appointments."

// patientIDPattern matches clinic patient IDs like P001.
var patientIDPattern = regexp.MustCompile(`(?i)\b(P\d{3})\b`)

// weightValuePattern matches a weight with a unit, like "31 kg" or "4.5kg".
var weightValuePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:kg|kilos?|kilograms?)\b`)

type Agent struct {
	store *patients.Store
}

func New(store *patients.Store) *Agent {
	return &Agent{store: store}
}

// Reply produces the ordered reply batch for one user message. Internal
// failures become error units; Reply itself never fails.
func (a *Agent) Reply(message string) []chat.ResponseUnit {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return []chat.ResponseUnit{chat.TextUnit(helpReply)}
	}

	if isGreeting(msg) {
		return []chat.ResponseUnit{chat.TextUnit("Hello! " + helpReply)}
	}

	if wantsList(msg) {
		return a.listPatients()
	}

	identifier := a.findIdentifier(message)

	// A weight with a unit plus a record marker is a write, not a lookup.
	if weight, ok := parseWeightValue(msg); ok && wantsRecord(msg) && strings.Contains(msg, "weight") {
		return a.recordWeight(identifier, weight)
	}

	switch {
	case strings.Contains(msg, "weight"):
		return a.patientDetail(identifier, ToolWeightHistory, "weight history")
	case strings.Contains(msg, "vaccin"):
		return a.patientDetail(identifier, ToolVaccinations, "vaccination records")
	case strings.Contains(msg, "appointment") || strings.Contains(msg, "visit"):
		return a.patientDetail(identifier, ToolAppointments, "appointments")
	case identifier != "":
		return a.patientDetail(identifier, ToolGetPatient, "record")
	default:
		return []chat.ResponseUnit{chat.TextUnit(helpReply)}
	}
}

func (a *Agent) listPatients() []chat.ResponseUnit {
	list, err := a.store.List()
	if err != nil {
		return []chat.ResponseUnit{chat.ErrorUnit("failed to list patients: " + err.Error())}
	}

	result, ok := toolResult(list)
	if !ok {
		return []chat.ResponseUnit{chat.ErrorUnit("failed to encode patient list")}
	}

	summary := fmt.Sprintf("The clinic has %d patients on file.", len(list))
	if len(list) == 0 {
		summary = "There are no patients on file yet."
	}

	return []chat.ResponseUnit{
		chat.ToolUnit(ToolListPatients, nil, result),
		chat.TextUnit(summary),
	}
}

// patientDetail runs one of the per-patient tools and appends a short
// prose summary after the tool unit.
func (a *Agent) patientDetail(identifier, tool, what string) []chat.ResponseUnit {
	if identifier == "" {
		return []chat.ResponseUnit{chat.ErrorUnit(
			"I couldn't tell which patient you meant. Use a patient ID like P001 or the patient's name.")}
	}

	p, err := a.store.Find(identifier)
	if errors.Is(err, patients.ErrNotFound) {
		return []chat.ResponseUnit{chat.ErrorUnit(
			fmt.Sprintf("No patient found matching %q.", identifier))}
	}
	if err != nil {
		return []chat.ResponseUnit{chat.ErrorUnit("patient lookup failed: " + err.Error())}
	}

	args := map[string]any{"identifier": identifier}
	var payload any
	var summary string

	switch tool {
	case ToolWeightHistory:
		payload = p.WeightHistory
		if n := len(p.WeightHistory); n == 0 {
			summary = fmt.Sprintf("%s has no weight records.", p.Name)
		} else {
			latest := p.WeightHistory[n-1]
			summary = fmt.Sprintf("%s's latest weight is %.1f kg, recorded %s.", p.Name, latest.Weight, latest.Date)
		}
	case ToolVaccinations:
		payload = p.Vaccinations
		summary = fmt.Sprintf("%s has %d %s on file.", p.Name, len(p.Vaccinations), what)
	case ToolAppointments:
		payload = p.Appointments
		summary = fmt.Sprintf("%s has %d %s on file.", p.Name, len(p.Appointments), what)
	default:
		payload = p
		summary = fmt.Sprintf("%s is a %s (%s), patient ID %s.", p.Name, strings.ToLower(p.Species), p.Breed, p.ID)
	}

	result, ok := toolResult(payload)
	if !ok {
		return []chat.ResponseUnit{chat.ErrorUnit("failed to encode " + what)}
	}

	return []chat.ResponseUnit{
		chat.ToolUnit(tool, args, result),
		chat.TextUnit(summary),
	}
}

// recordWeight appends a weight measurement dated today to the patient's
// history.
func (a *Agent) recordWeight(identifier string, weight float64) []chat.ResponseUnit {
	if identifier == "" {
		return []chat.ResponseUnit{chat.ErrorUnit(
			"I couldn't tell which patient you meant. Use a patient ID like P001 or the patient's name.")}
	}

	p, err := a.store.Find(identifier)
	if errors.Is(err, patients.ErrNotFound) {
		return []chat.ResponseUnit{chat.ErrorUnit(
			fmt.Sprintf("No patient found matching %q.", identifier))}
	}
	if err != nil {
		return []chat.ResponseUnit{chat.ErrorUnit("patient lookup failed: " + err.Error())}
	}

	rec := patients.WeightRecord{Weight: weight, Date: time.Now().Format("2006-01-02")}
	if err := a.store.AddWeight(p.ID, rec); err != nil {
		return []chat.ResponseUnit{chat.ErrorUnit("failed to record weight: " + err.Error())}
	}

	result, ok := toolResult(rec)
	if !ok {
		return []chat.ResponseUnit{chat.ErrorUnit("failed to encode weight record")}
	}

	args := map[string]any{"identifier": identifier, "weight": weight}
	return []chat.ResponseUnit{
		chat.ToolUnit(ToolRecordWeight, args, result),
		chat.TextUnit(fmt.Sprintf("Recorded %.1f kg for %s on %s.", weight, p.Name, rec.Date)),
	}
}

// findIdentifier pulls a patient reference out of the message: an explicit
// P-number if present, otherwise a known patient name.
func (a *Agent) findIdentifier(message string) string {
	if m := patientIDPattern.FindString(message); m != "" {
		return strings.ToUpper(m)
	}

	list, err := a.store.List()
	if err != nil {
		return ""
	}
	msg := strings.ToLower(message)
	for _, p := range list {
		if containsWord(msg, strings.ToLower(p.Name)) {
			return p.Name
		}
	}
	return ""
}

func containsWord(text, word string) bool {
	for _, field := range strings.FieldsFunc(text, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if field == word {
			return true
		}
	}
	return false
}

func isGreeting(msg string) bool {
	for _, greeting := range []string{"hello", "hi", "hey", "good morning", "good afternoon"} {
		if msg == greeting || strings.HasPrefix(msg, greeting+" ") || strings.HasPrefix(msg, greeting+",") {
			return true
		}
	}
	return false
}

func wantsRecord(msg string) bool {
	for _, marker := range []string{"record", "log", "weighed"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func parseWeightValue(msg string) (float64, bool) {
	m := weightValuePattern.FindStringSubmatch(msg)
	if m == nil {
		return 0, false
	}
	w, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return w, true
}

func wantsList(msg string) bool {
	if !strings.Contains(msg, "patient") {
		return false
	}
	for _, marker := range []string{"list", "all", "how many", "show me the"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// toolResult renders a tool payload as compact JSON.
func toolResult(payload any) (string, bool) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", false
	}
	return string(data), true
}
