package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// toastTTL is how long a toast stays visible without manual dismissal.
const toastTTL = 3 * time.Second

type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
)

// toast is one transient status message. The id is time-derived; collisions
// within a clock tick are acceptable at UI event rates.
type toast struct {
	ID       int64
	Message  string
	Kind     toastKind
	PostedAt time.Time
}

type toastExpiredMsg struct {
	id int64
}

// toastQueue is the append-only channel of transient messages, decoupled
// from any specific mutation.
type toastQueue struct {
	entries []toast
	now     func() time.Time
}

func newToastQueue() *toastQueue {
	return &toastQueue{now: time.Now}
}

// Post appends a message and returns the one-shot expiry command for its id.
// Each toast owns its own timer; there is no shared sweep.
func (q *toastQueue) Post(message string, kind toastKind) tea.Cmd {
	posted := q.now()
	entry := toast{
		ID:       posted.UnixNano(),
		Message:  message,
		Kind:     kind,
		PostedAt: posted,
	}
	q.entries = append(q.entries, entry)
	id := entry.ID
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Remove drops the entry with the given id. Dismissal and expiry race; the
// loser finds the id absent and is a no-op.
func (q *toastQueue) Remove(id int64) {
	for i, entry := range q.entries {
		if entry.ID == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return
		}
	}
}

// DismissOldest removes the front entry, returning false when empty.
func (q *toastQueue) DismissOldest() bool {
	if len(q.entries) == 0 {
		return false
	}
	q.entries = q.entries[1:]
	return true
}

func (q *toastQueue) Len() int { return len(q.entries) }

// View renders the active toasts, oldest first.
func (q *toastQueue) View() string {
	if len(q.entries) == 0 {
		return ""
	}
	lines := make([]string, 0, len(q.entries))
	for _, entry := range q.entries {
		switch entry.Kind {
		case toastError:
			lines = append(lines, toastErrorStyle.Render("✗ "+entry.Message))
		default:
			lines = append(lines, toastSuccessStyle.Render("✓ "+entry.Message))
		}
	}
	return strings.Join(lines, "\n")
}
