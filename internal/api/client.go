// Package api maps each backend resource operation to a single HTTP call.
// Every call is one attempt: no retries, no caching, no client-side shape
// validation beyond JSON decoding.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/asoni/admitdesk/internal/crm"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 2048
)

// RequestError is the single error kind for non-2xx responses. Body carries
// the response text where available; the caller decides how to present it.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("request failed: HTTP %d", e.Status)
	}
	return fmt.Sprintf("request failed: HTTP %d: %s", e.Status, e.Body)
}

// Backend is the operation surface the view models depend on, so tests can
// substitute a stub without touching the network.
type Backend interface {
	ListStudents(ctx context.Context) ([]crm.Student, error)
	Student(ctx context.Context, id string) (*crm.Student, error)
	Communications(ctx context.Context, studentID string, limit int) ([]crm.CommunicationLog, error)
	AISummary(ctx context.Context, studentID string) (string, error)
	SendFollowUpEmail(ctx context.Context, studentID string) error
	UpdateNotes(ctx context.Context, studentID string, notes *string) (*crm.Student, error)
	UpdateTags(ctx context.Context, studentID string, tags []string) (*crm.Student, error)
	AddCommunication(ctx context.Context, entry crm.CommunicationLogCreate) (*crm.CommunicationLog, error)
	Stats(ctx context.Context) (*crm.StudentStats, error)
}

// Config wires an explicit client configuration; there is no package-level
// base URL.
type Config struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// Client implements Backend against the admissions backend.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

var _ Backend = (*Client)(nil)

// New builds a Client from cfg, applying the default timeout when no custom
// HTTP client is supplied.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: cfg.BaseURL, token: cfg.Token, client: httpClient}
}

// SetToken installs the bearer token used on subsequent calls.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &RequestError{Status: resp.StatusCode, Body: string(text)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ListStudents returns the full student list.
func (c *Client) ListStudents(ctx context.Context) ([]crm.Student, error) {
	var students []crm.Student
	if err := c.do(ctx, http.MethodGet, "/students", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// Student returns one full profile.
func (c *Client) Student(ctx context.Context, id string) (*crm.Student, error) {
	var student crm.Student
	if err := c.do(ctx, http.MethodGet, "/students/"+id, nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// Communications returns the student's log entries, newest first. The
// backend defaults to its own limit when limit <= 0.
func (c *Client) Communications(ctx context.Context, studentID string, limit int) ([]crm.CommunicationLog, error) {
	path := "/students/" + studentID + "/communications"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var logs []crm.CommunicationLog
	if err := c.do(ctx, http.MethodGet, path, nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// AISummary fetches the server-generated summary text.
func (c *Client) AISummary(ctx context.Context, studentID string) (string, error) {
	var out struct {
		Summary string `json:"summary"`
	}
	if err := c.do(ctx, http.MethodGet, "/students/"+studentID+"/ai-summary", nil, &out); err != nil {
		return "", err
	}
	return out.Summary, nil
}

// SendFollowUpEmail triggers the mocked follow-up send. The server records
// the matching log entry; callers re-fetch the log afterwards.
func (c *Client) SendFollowUpEmail(ctx context.Context, studentID string) error {
	return c.do(ctx, http.MethodPost, "/students/"+studentID+"/email", nil, nil)
}

// UpdateNotes patches internal notes and returns the full updated profile.
func (c *Client) UpdateNotes(ctx context.Context, studentID string, notes *string) (*crm.Student, error) {
	payload := struct {
		InternalNotes *string `json:"internal_notes"`
	}{InternalNotes: notes}
	var student crm.Student
	if err := c.do(ctx, http.MethodPatch, "/students/"+studentID+"/internal_notes", payload, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// UpdateTags sends the complete intended tag set (full replacement, never a
// delta) and returns the full updated profile.
func (c *Client) UpdateTags(ctx context.Context, studentID string, tags []string) (*crm.Student, error) {
	if tags == nil {
		tags = []string{}
	}
	payload := struct {
		Tags []string `json:"tags"`
	}{Tags: tags}
	var student crm.Student
	if err := c.do(ctx, http.MethodPatch, "/students/"+studentID+"/tags", payload, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// AddCommunication creates a log entry and returns the server's record with
// its assigned id and timestamp.
func (c *Client) AddCommunication(ctx context.Context, entry crm.CommunicationLogCreate) (*crm.CommunicationLog, error) {
	var created crm.CommunicationLog
	if err := c.do(ctx, http.MethodPost, "/students/"+entry.StudentID+"/communication", entry, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Stats returns the server-computed aggregate counters.
func (c *Client) Stats(ctx context.Context) (*crm.StudentStats, error) {
	var stats crm.StudentStats
	if err := c.do(ctx, http.MethodGet, "/students/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
