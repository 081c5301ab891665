package tui

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/asoni/admitdesk/internal/crm"
)

// stubBackend satisfies api.Backend with canned data and per-method call
// counters. Error fields, when set, take precedence.
type stubBackend struct {
	students []crm.Student
	student  *crm.Student
	logs     []crm.CommunicationLog
	stats    *crm.StudentStats
	summary  string

	listErr    error
	studentErr error
	logsErr    error
	summaryErr error
	tagsErr    error
	notesErr   error
	commErr    error
	emailErr   error
	statsErr   error

	summaryCalls atomic.Int64
	emailCalls   atomic.Int64
	logFetches   atomic.Int64

	lastTags  []string
	lastNotes *string
	lastEntry crm.CommunicationLogCreate
}

func (s *stubBackend) ListStudents(context.Context) ([]crm.Student, error) {
	return s.students, s.listErr
}

func (s *stubBackend) Student(context.Context, string) (*crm.Student, error) {
	return s.student, s.studentErr
}

func (s *stubBackend) Communications(context.Context, string, int) ([]crm.CommunicationLog, error) {
	s.logFetches.Add(1)
	return s.logs, s.logsErr
}

func (s *stubBackend) AISummary(context.Context, string) (string, error) {
	s.summaryCalls.Add(1)
	return s.summary, s.summaryErr
}

func (s *stubBackend) SendFollowUpEmail(context.Context, string) error {
	s.emailCalls.Add(1)
	return s.emailErr
}

func (s *stubBackend) UpdateNotes(_ context.Context, _ string, notes *string) (*crm.Student, error) {
	s.lastNotes = notes
	return s.student, s.notesErr
}

func (s *stubBackend) UpdateTags(_ context.Context, _ string, tags []string) (*crm.Student, error) {
	s.lastTags = tags
	return s.student, s.tagsErr
}

func (s *stubBackend) AddCommunication(_ context.Context, entry crm.CommunicationLogCreate) (*crm.CommunicationLog, error) {
	s.lastEntry = entry
	if s.commErr != nil {
		return nil, s.commErr
	}
	content := entry.Content
	return &crm.CommunicationLog{
		ID:        "log-new",
		StudentID: entry.StudentID,
		Type:      entry.Type,
		Content:   content,
		Timestamp: time.Date(2026, 2, 3, 9, 30, 0, 0, time.UTC),
	}, nil
}

func (s *stubBackend) Stats(context.Context) (*crm.StudentStats, error) {
	return s.stats, s.statsErr
}

func strPtr(s string) *string { return &s }

func fixtureStudent() *crm.Student {
	country := "India"
	return &crm.Student{
		ID:                "stu-1",
		Name:              "Asha Rao",
		Email:             "asha@example.com",
		Country:           &country,
		ApplicationStatus: crm.StatusApplying,
		Tags:              []string{crm.TagHighIntent},
		CreatedAt:         time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		UpdatedAt:         time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
	}
}
