// internal/server/server.go
// HTTP surface for vetchatd: the chat endpoint backed by the agent engine,
// plus plain CRUD endpoints for patient records.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"vetchat/internal/engine"
	"vetchat/internal/patients"
)

type Server struct {
	agent      *engine.Agent
	store      *patients.Store
	httpServer *http.Server

	// LogRequests turns on a per-request log line. Set before Start.
	LogRequests bool
}

func New(agent *engine.Agent, store *patients.Store) *Server {
	return &Server{agent: agent, store: store}
}

// Handler returns the route table. Split out from Start so tests can mount
// it on an httptest server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/patients", s.handlePatients)
	mux.HandleFunc("/patients/", s.handlePatientByID)
	mux.HandleFunc("/health", s.handleHealth)
	if s.LogRequests {
		return logRequests(mux)
	}
	return mux
}

// logRequests wraps a handler with one log line per request.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[server] %s %s %s", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}

// Start begins serving on the given address. It does not block.
func (s *Server) Start(host string, port int) error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("[server] listening on %s", s.httpServer.Addr)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[server] serve error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

type chatRequest struct {
	Message string `json:"message"`
}

// handleChat runs one conversation turn: POST {message} in, ordered unit
// batch out.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	var req chatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	units := s.agent.Reply(req.Message)
	writeJSON(w, http.StatusOK, units)
}

func (s *Server) handlePatients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := s.store.List()
		if err != nil {
			log.Printf("[server] list patients: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to list patients")
			return
		}
		if list == nil {
			list = []patients.Patient{}
		}
		writeJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var p patients.Patient
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		id, err := s.store.Create(p)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{
			"message": fmt.Sprintf("Patient %s created", id),
		})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handlePatientByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/patients/")
	id, sub, hasSub := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if hasSub {
		s.handlePatientRecord(w, r, id, sub)
		return
	}

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	p, err := s.store.Get(id)
	if errors.Is(err, patients.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no patient with id %s", id))
		return
	}
	if err != nil {
		log.Printf("[server] get patient %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load patient")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handlePatientRecord appends one history record to a patient:
// POST /patients/{id}/appointments, /weights or /vaccinations.
func (s *Server) handlePatientRecord(w http.ResponseWriter, r *http.Request, id, sub string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var what string
	var err error
	switch sub {
	case "appointments":
		var a patients.Appointment
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		what = "Appointment"
		err = s.store.AddAppointment(id, a)
	case "weights":
		var rec patients.WeightRecord
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		what = "Weight"
		err = s.store.AddWeight(id, rec)
	case "vaccinations":
		var v patients.Vaccination
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		what = "Vaccination"
		err = s.store.AddVaccination(id, v)
	default:
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if errors.Is(err, patients.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no patient with id %s", id))
		return
	}
	if err != nil {
		log.Printf("[server] add %s record for %s: %v", sub, id, err)
		writeError(w, http.StatusInternalServerError, "failed to add record")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message": fmt.Sprintf("%s recorded for %s", what, id),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"service":   "vetchatd",
		"timestamp": time.Now().Unix(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[server] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
