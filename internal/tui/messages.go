package tui

import "github.com/asoni/admitdesk/internal/crm"

// navigateMsg is the router's control-flow signal. It is distinct from every
// error-carrying message and must pass through Update unmodified.
type navigateMsg struct {
	route string
}

type loginResultMsg struct {
	token string
	err   error
}

type studentsLoadedMsg struct {
	students []crm.Student
	err      error
}

type statsLoadedMsg struct {
	stats *crm.StudentStats
	err   error
}

// Profile-scoped results carry the student id; handlers drop messages for a
// student no longer displayed (last-writer-wins, no cancellation).

type profileLoadedMsg struct {
	studentID string
	student   *crm.Student
	err       error
}

type logsLoadedMsg struct {
	studentID string
	logs      []crm.CommunicationLog
	err       error
}

type summaryResultMsg struct {
	studentID string
	summary   string
	err       error
}

type tagsSavedMsg struct {
	studentID string
	student   *crm.Student
	snapshot  []string
	err       error
}

type notesSavedMsg struct {
	studentID string
	student   *crm.Student
	snapshot  *string
	err       error
}

type logCreatedMsg struct {
	studentID string
	entry     *crm.CommunicationLog
	err       error
}

type emailSentMsg struct {
	studentID string
	err       error
}
