package tui

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type jobKind string

type jobStatus string

const (
	jobKindStudents jobKind = "students"
	jobKindStats    jobKind = "stats"
	jobKindProfile  jobKind = "profile"
	jobKindLogs     jobKind = "logs"
	jobKindSummary  jobKind = "summary"
	jobKindTags     jobKind = "tags"
	jobKindNotes    jobKind = "notes"
	jobKindComm     jobKind = "comm"
	jobKindEmail    jobKind = "email"
	jobKindLogin    jobKind = "login"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

// jobRunner performs one async unit of work (always a network call here) and
// returns the payload message for the update loop, plus the error for the
// job log.
type jobRunner func(context.Context) (tea.Msg, error)

type jobBus struct {
	counter int64
	timeout time.Duration
}

func newJobBus(timeout time.Duration) *jobBus {
	return &jobBus{timeout: timeout}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

// Start wraps the runner into a start-signal plus result-envelope sequence.
// The runner executes off the update loop; its payload arrives back as a
// message in completion order.
func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	return b.StartScoped(context.Background(), kind, runner)
}

// StartScoped ties the job to parent. Read fetches pass a view-scoped
// context so navigating away cancels them; mutations keep the background
// scope and run to completion.
func (b *jobBus) StartScoped(parent context.Context, kind jobKind, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	started := time.Now()
	startSnapshot := jobSnapshot{ID: id, Kind: kind, Status: jobStatusRunning, StartedAt: started}
	startCmd := func() tea.Msg {
		return jobSignalMsg{Snapshot: startSnapshot}
	}

	timeout := b.timeout
	runCmd := func() tea.Msg {
		ctx := parent
		if ctx == nil {
			ctx = context.Background()
		}
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		payload, err := runner(ctx)
		snapshot := jobSnapshot{
			ID:          id,
			Kind:        kind,
			StartedAt:   started,
			CompletedAt: time.Now(),
		}
		if err != nil {
			snapshot.Status = jobStatusFailed
			snapshot.Err = err.Error()
		} else {
			snapshot.Status = jobStatusSucceeded
		}
		snapshot.Duration = snapshot.CompletedAt.Sub(started)
		log.Printf("[jobs] %s %s (duration=%s, err=%v)", kind, snapshot.Status, snapshot.Duration, err)
		return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
	}

	return tea.Sequence(startCmd, runCmd)
}
