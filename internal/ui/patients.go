// internal/ui/patients.go
package ui

import (
	"fmt"
	"strings"

	"vetchat/internal/patients"
)

// PatientBrowser holds the state for the patient list overlay.
type PatientBrowser struct {
	list      []patients.Patient
	cursor    int
	scrollTop int
	maxHeight int
}

// NewPatientBrowser creates an empty browser.
func NewPatientBrowser() *PatientBrowser {
	return &PatientBrowser{maxHeight: 20}
}

// SetPatients replaces the browser contents and resets the cursor.
func (b *PatientBrowser) SetPatients(list []patients.Patient) {
	b.list = list
	b.cursor = 0
	b.scrollTop = 0
}

// Up moves the cursor up.
func (b *PatientBrowser) Up() {
	if b.cursor > 0 {
		b.cursor--
		if b.cursor < b.scrollTop {
			b.scrollTop = b.cursor
		}
	}
}

// Down moves the cursor down.
func (b *PatientBrowser) Down() {
	if b.cursor < len(b.list)-1 {
		b.cursor++
		if b.cursor >= b.scrollTop+b.maxHeight {
			b.scrollTop = b.cursor - b.maxHeight + 1
		}
	}
}

// Selected returns the currently selected patient, or nil if none.
func (b *PatientBrowser) Selected() *patients.Patient {
	if b.cursor >= 0 && b.cursor < len(b.list) {
		return &b.list[b.cursor]
	}
	return nil
}

// SetMaxHeight updates the max visible rows.
func (b *PatientBrowser) SetMaxHeight(height int) {
	b.maxHeight = height - 10 // Leave room for header/footer
	if b.maxHeight < 5 {
		b.maxHeight = 5
	}
}

// Render renders the patient list overlay.
func (b *PatientBrowser) Render() string {
	var content strings.Builder

	content.WriteString(TitleStyle.Render("PATIENTS"))
	content.WriteString("\n")
	content.WriteString(DimStyle.Render("Select a patient to view the full record"))
	content.WriteString("\n\n")

	if len(b.list) == 0 {
		content.WriteString(DimStyle.Render("No patients on file."))
		content.WriteString("\n")
	} else {
		header := fmt.Sprintf("  %-6s  %-16s  %-10s  %s", "ID", "Name", "Species", "Breed")
		content.WriteString(DimStyle.Render(header))
		content.WriteString("\n")

		visibleEnd := b.scrollTop + b.maxHeight
		if visibleEnd > len(b.list) {
			visibleEnd = len(b.list)
		}

		for i := b.scrollTop; i < visibleEnd; i++ {
			p := b.list[i]
			line := fmt.Sprintf("  %-6s  %-16s  %-10s  %s", p.ID, p.Name, p.Species, p.Breed)
			if i == b.cursor {
				content.WriteString(UserStyle.Render(">" + line[1:]))
			} else {
				content.WriteString(line)
			}
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(DimStyle.Render("up/down: move  enter: open  esc: back"))
	return content.String()
}

// RenderPatient renders one full patient record.
func RenderPatient(p *patients.Patient) string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render(fmt.Sprintf("%s  (%s)", p.Name, p.ID)))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Species:   %s\n", p.Species))
	if p.Breed != "" {
		sb.WriteString(fmt.Sprintf("  Breed:     %s\n", p.Breed))
	}
	if p.Gender != "" {
		sb.WriteString(fmt.Sprintf("  Gender:    %s\n", p.Gender))
	}
	if p.BirthDate != "" {
		sb.WriteString(fmt.Sprintf("  Born:      %s\n", p.BirthDate))
	}
	if p.Microchip != "" {
		sb.WriteString(fmt.Sprintf("  Microchip: %s\n", p.Microchip))
	}

	if len(p.Appointments) > 0 {
		sb.WriteString("\n")
		sb.WriteString(ToolStyle.Render("  Appointments"))
		sb.WriteString("\n")
		for _, a := range p.Appointments {
			sb.WriteString(fmt.Sprintf("    %s  %-10s  %s\n", a.Date, a.Status, a.Notes))
		}
	}

	if len(p.WeightHistory) > 0 {
		sb.WriteString("\n")
		sb.WriteString(ToolStyle.Render("  Weight history"))
		sb.WriteString("\n")
		for _, w := range p.WeightHistory {
			sb.WriteString(fmt.Sprintf("    %s  %.1f kg  %s\n", w.Date, w.Weight, w.Note))
		}
	}

	if len(p.Vaccinations) > 0 {
		sb.WriteString("\n")
		sb.WriteString(ToolStyle.Render("  Vaccinations"))
		sb.WriteString("\n")
		for _, v := range p.Vaccinations {
			expires := ""
			if v.Expires != "" {
				expires = "expires " + v.Expires
			}
			sb.WriteString(fmt.Sprintf("    %s  %-10s  %s\n", v.Date, v.Type, expires))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(DimStyle.Render("esc: back"))
	return sb.String()
}
