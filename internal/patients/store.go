// internal/patients/store.go
package patients

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned by Get and Find when no patient matches.
var ErrNotFound = errors.New("patient not found")

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the clinic database at path and runs
// migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// DefaultPath returns the XDG data location for the clinic database.
func DefaultPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "vetchat", "clinic.db"), nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS patients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		species TEXT NOT NULL,
		breed TEXT,
		gender TEXT,
		birth_date TEXT,
		microchip TEXT
	);

	CREATE TABLE IF NOT EXISTS appointments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		patient_id TEXT NOT NULL REFERENCES patients(id),
		date TEXT NOT NULL,
		status TEXT NOT NULL,
		notes TEXT,
		appointment_type TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_appointments_patient ON appointments(patient_id);

	CREATE TABLE IF NOT EXISTS weight_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		patient_id TEXT NOT NULL REFERENCES patients(id),
		weight REAL NOT NULL,
		date TEXT NOT NULL,
		note TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_weights_patient ON weight_records(patient_id);

	CREATE TABLE IF NOT EXISTS vaccinations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		patient_id TEXT NOT NULL REFERENCES patients(id),
		type TEXT NOT NULL,
		date TEXT NOT NULL,
		expiration_date TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_vaccinations_patient ON vaccinations(patient_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Seed inserts the sample clinic data if the patients table is empty.
func (s *Store) Seed() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM patients").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []Patient{
		{ID: "P001", Name: "Max", Species: "Dog", Breed: "Labrador Retriever", Gender: "Male", BirthDate: "2018-05-10", Microchip: "MC123456"},
		{ID: "P002", Name: "Luna", Species: "Cat", Breed: "Maine Coon", Gender: "Female", BirthDate: "2019-03-15", Microchip: "MC789012"},
		{ID: "P003", Name: "Charlie", Species: "Dog", Breed: "Golden Retriever", Gender: "Male", BirthDate: "2020-11-20", Microchip: "MC345678"},
	}
	for _, p := range samples {
		if err := s.insert(p); err != nil {
			return err
		}
	}

	seedRows := []struct {
		query string
		args  []any
	}{
		{"INSERT INTO appointments (patient_id, date, status, notes, appointment_type) VALUES (?, ?, ?, ?, ?)",
			[]any{"P001", "2023-11-15 10:00", "Completed", "Annual checkup", "Checkup"}},
		{"INSERT INTO appointments (patient_id, date, status, notes, appointment_type) VALUES (?, ?, ?, ?, ?)",
			[]any{"P002", "2023-12-05 14:30", "Scheduled", "Vaccination due", "Vaccination"}},
		{"INSERT INTO appointments (patient_id, date, status, notes, appointment_type) VALUES (?, ?, ?, ?, ?)",
			[]any{"P003", "2023-11-28 11:15", "Completed", "Limping on left hind leg", "Examination"}},
		{"INSERT INTO weight_records (patient_id, weight, date, note) VALUES (?, ?, ?, ?)",
			[]any{"P001", 32.5, "2023-11-15", "Healthy weight"}},
		{"INSERT INTO weight_records (patient_id, weight, date, note) VALUES (?, ?, ?, ?)",
			[]any{"P002", 12.2, "2023-10-20", "Slightly overweight"}},
		{"INSERT INTO weight_records (patient_id, weight, date, note) VALUES (?, ?, ?, ?)",
			[]any{"P003", 28.7, "2023-11-28", "Weight stable"}},
		{"INSERT INTO vaccinations (patient_id, type, date, expiration_date) VALUES (?, ?, ?, ?)",
			[]any{"P001", "Rabies", "2023-01-15", "2024-01-15"}},
		{"INSERT INTO vaccinations (patient_id, type, date, expiration_date) VALUES (?, ?, ?, ?)",
			[]any{"P002", "FVRCP", "2023-08-10", "2024-08-10"}},
		{"INSERT INTO vaccinations (patient_id, type, date, expiration_date) VALUES (?, ?, ?, ?)",
			[]any{"P003", "DHPP", "2023-04-22", "2024-04-22"}},
	}
	for _, row := range seedRows {
		if _, err := s.db.Exec(row.query, row.args...); err != nil {
			return err
		}
	}

	return nil
}

// List returns all patients with base fields only, ordered by ID.
func (s *Store) List() ([]Patient, error) {
	rows, err := s.db.Query(`
		SELECT id, name, species, COALESCE(breed, ''), COALESCE(gender, ''),
		       COALESCE(birth_date, ''), COALESCE(microchip, '')
		FROM patients ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Species, &p.Breed, &p.Gender, &p.BirthDate, &p.Microchip); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Get returns one patient with full history, or ErrNotFound.
func (s *Store) Get(id string) (*Patient, error) {
	var p Patient
	err := s.db.QueryRow(`
		SELECT id, name, species, COALESCE(breed, ''), COALESCE(gender, ''),
		       COALESCE(birth_date, ''), COALESCE(microchip, '')
		FROM patients WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Species, &p.Breed, &p.Gender, &p.BirthDate, &p.Microchip)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if p.Appointments, err = s.appointments(id); err != nil {
		return nil, err
	}
	if p.WeightHistory, err = s.weightHistory(id); err != nil {
		return nil, err
	}
	if p.Vaccinations, err = s.vaccinations(id); err != nil {
		return nil, err
	}
	return &p, nil
}

// Find matches a patient by ID or by name (case-insensitive).
func (s *Store) Find(identifier string) (*Patient, error) {
	var id string
	err := s.db.QueryRow(
		"SELECT id FROM patients WHERE id = ? OR LOWER(name) = LOWER(?)",
		identifier, identifier).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Create inserts a new patient. An empty ID gets the next P-number.
func (s *Store) Create(p Patient) (string, error) {
	if strings.TrimSpace(p.Name) == "" {
		return "", errors.New("patient name is required")
	}
	if strings.TrimSpace(p.Species) == "" {
		return "", errors.New("patient species is required")
	}
	if p.ID == "" {
		id, err := s.nextID()
		if err != nil {
			return "", err
		}
		p.ID = id
	}
	if err := s.insert(p); err != nil {
		return "", err
	}
	return p.ID, nil
}

func (s *Store) insert(p Patient) error {
	_, err := s.db.Exec(`
		INSERT INTO patients (id, name, species, breed, gender, birth_date, microchip)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Species, p.Breed, p.Gender, p.BirthDate, p.Microchip)
	return err
}

// nextID finds the highest P-number in use and returns the next one.
func (s *Store) nextID() (string, error) {
	var maxID sql.NullString
	if err := s.db.QueryRow("SELECT MAX(id) FROM patients WHERE id LIKE 'P%'").Scan(&maxID); err != nil {
		return "", err
	}
	next := 1
	if maxID.Valid {
		if n, err := strconv.Atoi(strings.TrimPrefix(maxID.String, "P")); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("P%03d", next), nil
}

// AddAppointment records an appointment for a patient.
func (s *Store) AddAppointment(patientID string, a Appointment) error {
	if err := s.exists(patientID); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO appointments (patient_id, date, status, notes, appointment_type)
		VALUES (?, ?, ?, ?, ?)`,
		patientID, a.Date, a.Status, a.Notes, a.Type)
	return err
}

// AddWeight records a weight measurement for a patient.
func (s *Store) AddWeight(patientID string, w WeightRecord) error {
	if err := s.exists(patientID); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO weight_records (patient_id, weight, date, note)
		VALUES (?, ?, ?, ?)`,
		patientID, w.Weight, w.Date, w.Note)
	return err
}

// AddVaccination records a vaccination for a patient.
func (s *Store) AddVaccination(patientID string, v Vaccination) error {
	if err := s.exists(patientID); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO vaccinations (patient_id, type, date, expiration_date)
		VALUES (?, ?, ?, ?)`,
		patientID, v.Type, v.Date, v.Expires)
	return err
}

func (s *Store) exists(id string) error {
	var found string
	err := s.db.QueryRow("SELECT id FROM patients WHERE id = ?", id).Scan(&found)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}

func (s *Store) appointments(patientID string) ([]Appointment, error) {
	rows, err := s.db.Query(`
		SELECT id, date, status, COALESCE(notes, ''), COALESCE(appointment_type, '')
		FROM appointments WHERE patient_id = ? ORDER BY date`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.Date, &a.Status, &a.Notes, &a.Type); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (s *Store) weightHistory(patientID string) ([]WeightRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, weight, date, COALESCE(note, '')
		FROM weight_records WHERE patient_id = ? ORDER BY date`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []WeightRecord
	for rows.Next() {
		var w WeightRecord
		if err := rows.Scan(&w.ID, &w.Weight, &w.Date, &w.Note); err != nil {
			return nil, err
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

func (s *Store) vaccinations(patientID string) ([]Vaccination, error) {
	rows, err := s.db.Query(`
		SELECT id, type, date, COALESCE(expiration_date, '')
		FROM vaccinations WHERE patient_id = ? ORDER BY date`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Vaccination
	for rows.Next() {
		var v Vaccination
		if err := rows.Scan(&v.ID, &v.Type, &v.Date, &v.Expires); err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
