// internal/api/client_test.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"vetchat/internal/chat"
	"vetchat/internal/patients"
)

func TestSendChat(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"type":"text","content":"A"},
			{"type":"tool","name":"lookup","args":{"id":"7"},"result":"ok"},
			{"type":"error","content":"bad arg"}
		]`)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	units, err := c.SendChat(context.Background(), "check patient 7")
	if err != nil {
		t.Fatalf("SendChat() failed: %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/chat" {
		t.Errorf("request = %s %s, want POST /chat", gotMethod, gotPath)
	}

	var req map[string]string
	if err := json.Unmarshal([]byte(gotBody), &req); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if req["message"] != "check patient 7" {
		t.Errorf("message = %q", req["message"])
	}

	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}
	wantKinds := []chat.UnitKind{chat.UnitText, chat.UnitTool, chat.UnitError}
	for i, k := range wantKinds {
		if units[i].Kind != k {
			t.Errorf("unit %d kind = %q, want %q", i, units[i].Kind, k)
		}
	}
}

func TestTransportErrorOnStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"message":"boom"}`},
		{"not found", http.StatusNotFound, `{"message":"no patient with id P999"}`},
		{"bad gateway with html body", http.StatusBadGateway, "<html>bad gateway</html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer server.Close()

			c := NewClient(server.URL)
			_, err := c.SendChat(context.Background(), "hello")
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var terr *TransportError
			if !errors.As(err, &terr) {
				t.Fatalf("error type = %T, want *TransportError", err)
			}
			if terr.Status != tt.status {
				t.Errorf("status = %d, want %d", terr.Status, tt.status)
			}
			if terr.Message == "" {
				t.Error("message should not be empty")
			}
		})
	}
}

func TestTransportErrorOnUndecodableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "this is not json")
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.SendChat(context.Background(), "hello")

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	if terr.Status != http.StatusOK {
		t.Errorf("status = %d, want 200", terr.Status)
	}
}

func TestTransportErrorOnConnectionFailure(t *testing.T) {
	// A server that is already closed refuses connections.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := NewClient(server.URL)
	_, err := c.SendChat(context.Background(), "hello")

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	if terr.Status != 0 {
		t.Errorf("status = %d, want 0 for unreachable server", terr.Status)
	}
}

func TestGetCarriesNoPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if len(body) != 0 {
			t.Errorf("GET carried a body: %q", body)
		}
		io.WriteString(w, `[]`)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	if _, err := c.ListPatients(context.Background()); err != nil {
		t.Fatalf("ListPatients() failed: %v", err)
	}
}

func TestPatientEndpoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/patients":
			if r.Method == http.MethodPost {
				var p patients.Patient
				json.NewDecoder(r.Body).Decode(&p)
				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(map[string]string{"message": "Patient P004 created"})
				return
			}
			io.WriteString(w, `[{"id":"P001","name":"Max","species":"Dog"}]`)
		case "/patients/P001":
			io.WriteString(w, `{"id":"P001","name":"Max","species":"Dog","breed":"Labrador Retriever"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "not found"})
		}
	}))
	defer server.Close()

	c := NewClient(server.URL)

	list, err := c.ListPatients(context.Background())
	if err != nil {
		t.Fatalf("ListPatients() failed: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Max" {
		t.Errorf("list = %+v", list)
	}

	p, err := c.GetPatient(context.Background(), "P001")
	if err != nil {
		t.Fatalf("GetPatient() failed: %v", err)
	}
	if p.Breed != "Labrador Retriever" {
		t.Errorf("breed = %q", p.Breed)
	}

	msg, err := c.CreatePatient(context.Background(), patients.Patient{Name: "Bella", Species: "Cat"})
	if err != nil {
		t.Fatalf("CreatePatient() failed: %v", err)
	}
	if msg != "Patient P004 created" {
		t.Errorf("message = %q", msg)
	}

	if _, err := c.GetPatient(context.Background(), "P999"); err == nil {
		t.Error("expected error for unknown patient")
	}
}
