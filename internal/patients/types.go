// internal/patients/types.go
package patients

// Patient is one clinic patient record. List endpoints return the base
// fields only; Get fills in the history slices.
type Patient struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Species       string         `json:"species"`
	Breed         string         `json:"breed,omitempty"`
	Gender        string         `json:"gender,omitempty"`
	BirthDate     string         `json:"birthDate,omitempty"`
	Microchip     string         `json:"microchip,omitempty"`
	Appointments  []Appointment  `json:"appointments,omitempty"`
	WeightHistory []WeightRecord `json:"weightHistory,omitempty"`
	Vaccinations  []Vaccination  `json:"vaccinations,omitempty"`
}

type Appointment struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
	Type   string `json:"type,omitempty"`
}

type WeightRecord struct {
	ID     int64   `json:"id"`
	Weight float64 `json:"weight"`
	Date   string  `json:"date"`
	Note   string  `json:"note,omitempty"`
}

type Vaccination struct {
	ID      int64  `json:"id"`
	Type    string `json:"type"`
	Date    string `json:"date"`
	Expires string `json:"expires,omitempty"`
}
