package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/asoni/admitdesk/internal/api"
	"github.com/asoni/admitdesk/internal/auth"
	"github.com/asoni/admitdesk/internal/crm"
)

// Job constructors close over value copies so in-flight work never reads
// view-model state. Each returns the payload message for the update loop;
// failures ride inside the payload so the handlers own presentation.

func listStudentsJob(backend api.Backend) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		students, err := backend.ListStudents(ctx)
		return studentsLoadedMsg{students: students, err: err}, err
	}
}

func fetchStatsJob(backend api.Backend) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		stats, err := backend.Stats(ctx)
		return statsLoadedMsg{stats: stats, err: err}, err
	}
}

func fetchProfileJob(backend api.Backend, studentID string) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		student, err := backend.Student(ctx, studentID)
		return profileLoadedMsg{studentID: studentID, student: student, err: err}, err
	}
}

func fetchLogsJob(backend api.Backend, studentID string) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		logs, err := backend.Communications(ctx, studentID, communicationLimit)
		return logsLoadedMsg{studentID: studentID, logs: logs, err: err}, err
	}
}

func generateSummaryJob(backend api.Backend, studentID string) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		summary, err := backend.AISummary(ctx, studentID)
		return summaryResultMsg{studentID: studentID, summary: summary, err: err}, err
	}
}

// saveTagsJob carries the complete intended set and the pre-mutation
// snapshot; the handler restores the snapshot verbatim on failure.
func saveTagsJob(backend api.Backend, studentID string, tags, snapshot []string) jobRunner {
	intended := append([]string(nil), tags...)
	restore := append([]string(nil), snapshot...)
	return func(ctx context.Context) (tea.Msg, error) {
		student, err := backend.UpdateTags(ctx, studentID, intended)
		return tagsSavedMsg{studentID: studentID, student: student, snapshot: restore, err: err}, err
	}
}

func saveNotesJob(backend api.Backend, studentID string, notes, snapshot *string) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		student, err := backend.UpdateNotes(ctx, studentID, notes)
		return notesSavedMsg{studentID: studentID, student: student, snapshot: snapshot, err: err}, err
	}
}

func addCommunicationJob(backend api.Backend, entry crm.CommunicationLogCreate) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		created, err := backend.AddCommunication(ctx, entry)
		return logCreatedMsg{studentID: entry.StudentID, entry: created, err: err}, err
	}
}

func sendEmailJob(backend api.Backend, studentID string) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		err := backend.SendFollowUpEmail(ctx, studentID)
		return emailSentMsg{studentID: studentID, err: err}, err
	}
}

func loginJob(exchange exchangeFunc, creds auth.Credentials) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		token, err := exchange(ctx, creds)
		return loginResultMsg{token: token, err: err}, err
	}
}
