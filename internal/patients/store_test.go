// internal/patients/store_test.go
package patients

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "clinic.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSeedAndList(t *testing.T) {
	store := openTestStore(t)

	if err := store.Seed(); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 patients, got %d", len(list))
	}
	if list[0].ID != "P001" || list[0].Name != "Max" {
		t.Errorf("first patient = %+v", list[0])
	}

	// Seeding again must not duplicate rows
	if err := store.Seed(); err != nil {
		t.Fatalf("second Seed() failed: %v", err)
	}
	list, err = store.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(list) != 3 {
		t.Errorf("expected 3 patients after reseed, got %d", len(list))
	}
}

func TestStoreGet(t *testing.T) {
	store := openTestStore(t)
	if err := store.Seed(); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}

	p, err := store.Get("P001")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if p.Name != "Max" || p.Species != "Dog" {
		t.Errorf("patient = %+v", p)
	}
	if len(p.Appointments) != 1 {
		t.Errorf("expected 1 appointment, got %d", len(p.Appointments))
	}
	if len(p.WeightHistory) != 1 || p.WeightHistory[0].Weight != 32.5 {
		t.Errorf("weight history = %+v", p.WeightHistory)
	}
	if len(p.Vaccinations) != 1 || p.Vaccinations[0].Type != "Rabies" {
		t.Errorf("vaccinations = %+v", p.Vaccinations)
	}

	if _, err := store.Get("P999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(P999) error = %v, want ErrNotFound", err)
	}
}

func TestStoreFind(t *testing.T) {
	store := openTestStore(t)
	if err := store.Seed(); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}

	tests := []struct {
		identifier string
		wantID     string
		wantErr    bool
	}{
		{"P002", "P002", false},
		{"Luna", "P002", false},
		{"luna", "P002", false},
		{"Rex", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			p, err := store.Find(tt.identifier)
			if tt.wantErr {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("error = %v, want ErrNotFound", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Find() failed: %v", err)
			}
			if p.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", p.ID, tt.wantID)
			}
		})
	}
}

func TestStoreCreate(t *testing.T) {
	store := openTestStore(t)
	if err := store.Seed(); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}

	id, err := store.Create(Patient{Name: "Bella", Species: "Cat", Breed: "Siamese"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if id != "P004" {
		t.Errorf("assigned ID = %q, want P004", id)
	}

	p, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if p.Name != "Bella" {
		t.Errorf("name = %q", p.Name)
	}

	// Validation
	if _, err := store.Create(Patient{Species: "Dog"}); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := store.Create(Patient{Name: "Rex"}); err == nil {
		t.Error("expected error for missing species")
	}
}

func TestStoreAddRecords(t *testing.T) {
	store := openTestStore(t)
	if err := store.Seed(); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}

	if err := store.AddAppointment("P001", Appointment{Date: "2024-01-10 09:00", Status: "Scheduled", Type: "Checkup"}); err != nil {
		t.Fatalf("AddAppointment() failed: %v", err)
	}
	if err := store.AddWeight("P001", WeightRecord{Weight: 33.1, Date: "2024-01-10"}); err != nil {
		t.Fatalf("AddWeight() failed: %v", err)
	}
	if err := store.AddVaccination("P001", Vaccination{Type: "Rabies", Date: "2024-01-10", Expires: "2025-01-10"}); err != nil {
		t.Fatalf("AddVaccination() failed: %v", err)
	}

	p, err := store.Get("P001")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if len(p.Appointments) != 2 {
		t.Errorf("expected 2 appointments, got %d", len(p.Appointments))
	}
	if len(p.WeightHistory) != 2 {
		t.Errorf("expected 2 weight records, got %d", len(p.WeightHistory))
	}
	if len(p.Vaccinations) != 2 {
		t.Errorf("expected 2 vaccinations, got %d", len(p.Vaccinations))
	}

	// Unknown patient
	if err := store.AddWeight("P999", WeightRecord{Weight: 1, Date: "2024-01-10"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
