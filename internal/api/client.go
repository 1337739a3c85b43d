// internal/api/client.go
// HTTP client for the vetchatd JSON API. One request per call, no retries,
// no timeout; every failure mode collapses into a single TransportError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"vetchat/internal/chat"
	"vetchat/internal/patients"
)

// TransportError is the uniform failure for any call that did not produce
// a decodable 2xx response. Status is zero when the request never reached
// the server.
type TransportError struct {
	Status  int
	Message string
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return "api: " + e.Message
}

// Client talks to a vetchatd instance at a fixed base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// SendChat posts one user message and returns the backend's ordered reply
// batch.
func (c *Client) SendChat(ctx context.Context, message string) ([]chat.ResponseUnit, error) {
	var units []chat.ResponseUnit
	if err := c.do(ctx, http.MethodPost, "/chat", chatRequest{Message: message}, &units); err != nil {
		return nil, err
	}
	return units, nil
}

// ListPatients fetches all patient records.
func (c *Client) ListPatients(ctx context.Context) ([]patients.Patient, error) {
	var list []patients.Patient
	if err := c.do(ctx, http.MethodGet, "/patients", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetPatient fetches a single patient record by ID.
func (c *Client) GetPatient(ctx context.Context, id string) (*patients.Patient, error) {
	var p patients.Patient
	if err := c.do(ctx, http.MethodGet, "/patients/"+id, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePatient creates a new patient record and returns the server's
// confirmation message.
func (c *Client) CreatePatient(ctx context.Context, p patients.Patient) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/patients", p, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// do performs exactly one request/response cycle. The payload is attached
// only for mutating methods. Non-2xx status, network failure, and
// undecodable bodies all come back as *TransportError.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return c.fail(0, fmt.Sprintf("unsupported method %q", method))
	}

	var body io.Reader
	if payload != nil && method != http.MethodGet {
		data, err := json.Marshal(payload)
		if err != nil {
			return c.fail(0, "encode request: "+err.Error())
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return c.fail(0, "build request: "+err.Error())
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(0, err.Error())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(resp.StatusCode, "read response: "+err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("%s %s returned %s", method, path, resp.Status)
		if m := serverMessage(data); m != "" {
			msg += ": " + m
		}
		return c.fail(resp.StatusCode, msg)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return c.fail(resp.StatusCode, "decode response: "+err.Error())
		}
	}
	return nil
}

// fail logs the failure for diagnostics before handing it to the caller.
func (c *Client) fail(status int, msg string) error {
	log.Printf("[api] request failed: %s", msg)
	return &TransportError{Status: status, Message: msg}
}

// serverMessage pulls the {"message": ...} detail out of an error body,
// if there is one.
func serverMessage(data []byte) string {
	var m messageResponse
	if err := json.Unmarshal(data, &m); err != nil {
		return ""
	}
	return m.Message
}
