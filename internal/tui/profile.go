package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/asoni/admitdesk/internal/api"
	"github.com/asoni/admitdesk/internal/crm"
	"github.com/asoni/admitdesk/internal/richtext"
)

// profileModel shows one student and runs every mutation optimistically:
// snapshot, apply, confirm. On failure the snapshot is restored verbatim and
// the change is not retried. Result messages carry the student id so a
// response for a previously viewed student is dropped, not applied.
type profileModel struct {
	studentID string
	student   *crm.Student
	logs      []crm.CommunicationLog

	loadErr string
	logsErr string

	mode profileMode

	summary        string
	summaryLoading bool

	notesInput textarea.Model

	logInput   textarea.Model
	logTypeIdx int

	// scopeCtx bounds the view's read fetches; teardown cancels it so a
	// dismantled profile never receives fresh reads. Mutations are not
	// scoped: an in-flight save settles server-side either way, and its
	// UI result is dropped by the id guard.
	scopeCtx context.Context
	cancel   context.CancelFunc

	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

func newProfileModel() profileModel {
	notes := textarea.New()
	notes.Placeholder = "Internal notes…"
	notes.SetWidth(60)
	notes.SetHeight(6)

	logContent := textarea.New()
	logContent.Placeholder = "What was discussed?"
	logContent.CharLimit = crm.MaxLogContentLen
	logContent.SetWidth(60)
	logContent.SetHeight(4)

	return profileModel{
		notesInput: notes,
		logInput:   logContent,
	}
}

// open resets the model for a new student and fires the profile and log
// fetches. Anything still in flight for the previous student settles against
// a mismatching id.
func (p *profileModel) open(studentID string, jobs *jobBus, backend api.Backend) tea.Cmd {
	if p.cancel != nil {
		p.cancel()
	}
	p.scopeCtx, p.cancel = context.WithCancel(context.Background())
	p.studentID = studentID
	p.student = nil
	p.logs = nil
	p.loadErr = ""
	p.logsErr = ""
	p.mode = profileModeView
	p.summary = ""
	p.summaryLoading = false
	return tea.Batch(
		jobs.StartScoped(p.scope(), jobKindProfile, fetchProfileJob(backend, studentID)),
		jobs.StartScoped(p.scope(), jobKindLogs, fetchLogsJob(backend, studentID)),
	)
}

// teardown cancels scoped reads and blanks the student id so every late
// arrival fails the id guard.
func (p *profileModel) teardown() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.scopeCtx = nil
	p.studentID = ""
	p.student = nil
	p.summaryLoading = false
}

func (p *profileModel) scope() context.Context {
	if p.scopeCtx == nil {
		return context.Background()
	}
	return p.scopeCtx
}

func (p *profileModel) setSize(width, height int) {
	p.width = width
	p.height = height
	vpWidth := width - viewportHorizontalPadding
	if vpWidth < minViewportWidth {
		vpWidth = minViewportWidth
	}
	vpHeight := height - 8
	if vpHeight < 5 {
		vpHeight = 5
	}
	if !p.ready {
		p.viewport = viewport.New(vpWidth, vpHeight)
		p.ready = true
	} else {
		p.viewport.Width = vpWidth
		p.viewport.Height = vpHeight
	}
	p.refreshViewport()
}

func (p *profileModel) handleProfileLoaded(msg profileLoadedMsg) {
	if msg.studentID != p.studentID {
		return
	}
	if msg.err != nil {
		p.loadErr = msg.err.Error()
		return
	}
	p.student = msg.student
	p.refreshViewport()
}

func (p *profileModel) handleLogsLoaded(msg logsLoadedMsg) {
	if msg.studentID != p.studentID {
		return
	}
	if msg.err != nil {
		p.logsErr = msg.err.Error()
		return
	}
	p.logs = msg.logs
	p.logsErr = ""
	p.refreshViewport()
}

// toggleTag is the full optimistic cycle for one checkbox: keep the current
// set as the snapshot, show the intended set immediately, send the complete
// intended set.
func (p *profileModel) toggleTag(tag string, jobs *jobBus, backend api.Backend) tea.Cmd {
	if p.student == nil {
		return nil
	}
	snapshot := p.student.Tags
	next := crm.ToggleTag(snapshot, tag, !p.student.HasTag(tag))
	p.student.Tags = next
	p.refreshViewport()
	return jobs.Start(jobKindTags, saveTagsJob(backend, p.studentID, next, snapshot))
}

func (p *profileModel) handleTagsSaved(msg tagsSavedMsg, toasts *toastQueue) tea.Cmd {
	if msg.studentID != p.studentID || p.student == nil {
		return nil
	}
	if msg.err != nil {
		p.student.Tags = msg.snapshot
		p.refreshViewport()
		return toasts.Post("Couldn't update tags", toastError)
	}
	*p.student = *msg.student
	p.refreshViewport()
	return toasts.Post("Tags updated", toastSuccess)
}

func (p *profileModel) openNotesComposer() {
	if p.student == nil {
		return
	}
	current := ""
	if p.student.InternalNotes != nil {
		current = *p.student.InternalNotes
	}
	p.notesInput.SetValue(current)
	p.notesInput.Focus()
	p.mode = profileModeNotes
}

func (p *profileModel) saveNotes(jobs *jobBus, backend api.Backend) tea.Cmd {
	if p.student == nil {
		return nil
	}
	text := p.notesInput.Value()
	snapshot := p.student.InternalNotes
	next := &text
	p.student.InternalNotes = next
	p.mode = profileModeView
	p.notesInput.Blur()
	p.refreshViewport()
	return jobs.Start(jobKindNotes, saveNotesJob(backend, p.studentID, next, snapshot))
}

func (p *profileModel) handleNotesSaved(msg notesSavedMsg, toasts *toastQueue) tea.Cmd {
	if msg.studentID != p.studentID || p.student == nil {
		return nil
	}
	if msg.err != nil {
		p.student.InternalNotes = msg.snapshot
		p.refreshViewport()
		return toasts.Post("Couldn't save notes", toastError)
	}
	*p.student = *msg.student
	p.refreshViewport()
	return toasts.Post("Notes saved", toastSuccess)
}

func (p *profileModel) openLogComposer() {
	if p.student == nil {
		return
	}
	p.logInput.SetValue("")
	p.logInput.Focus()
	p.logTypeIdx = 0
	p.mode = profileModeLog
}

// submitLog is the one deferred mutation: the timeline changes only after the
// server returns the entry with its assigned id and timestamp.
func (p *profileModel) submitLog(jobs *jobBus, backend api.Backend) tea.Cmd {
	if p.student == nil {
		return nil
	}
	entry := crm.CommunicationLogCreate{
		StudentID: p.studentID,
		Type:      crm.CommunicationTypes[p.logTypeIdx],
	}
	if content := p.logInput.Value(); strings.TrimSpace(content) != "" {
		entry.Content = &content
	}
	p.mode = profileModeView
	p.logInput.Blur()
	return jobs.Start(jobKindComm, addCommunicationJob(backend, entry))
}

func (p *profileModel) handleLogCreated(msg logCreatedMsg, toasts *toastQueue) tea.Cmd {
	if msg.studentID != p.studentID {
		return nil
	}
	if msg.err != nil {
		return toasts.Post("Couldn't log the communication", toastError)
	}
	p.logs = append([]crm.CommunicationLog{*msg.entry}, p.logs...)
	p.refreshViewport()
	return toasts.Post("Communication logged", toastSuccess)
}

func (p *profileModel) sendEmail(jobs *jobBus, backend api.Backend) tea.Cmd {
	if p.student == nil {
		return nil
	}
	return jobs.Start(jobKindEmail, sendEmailJob(backend, p.studentID))
}

// A confirmed send re-fetches the timeline so the server-recorded entry
// appears without any client-invented record.
func (p *profileModel) handleEmailSent(msg emailSentMsg, jobs *jobBus, backend api.Backend, toasts *toastQueue) tea.Cmd {
	if msg.studentID != p.studentID {
		return nil
	}
	if msg.err != nil {
		return toasts.Post("Couldn't send the follow-up email", toastError)
	}
	return tea.Batch(
		toasts.Post("Follow-up email sent", toastSuccess),
		jobs.StartScoped(p.scope(), jobKindLogs, fetchLogsJob(backend, p.studentID)),
	)
}

// generateSummary is read-only; the loading flag is its only guard, so a
// second press while one is in flight does nothing.
func (p *profileModel) generateSummary(jobs *jobBus, backend api.Backend) tea.Cmd {
	if p.student == nil || p.summaryLoading {
		return nil
	}
	p.summaryLoading = true
	return jobs.StartScoped(p.scope(), jobKindSummary, generateSummaryJob(backend, p.studentID))
}

func (p *profileModel) handleSummaryResult(msg summaryResultMsg, toasts *toastQueue) tea.Cmd {
	if msg.studentID != p.studentID {
		return nil
	}
	p.summaryLoading = false
	if msg.err != nil {
		p.summary = summaryFallback
		p.refreshViewport()
		return toasts.Post("Couldn't generate the summary", toastError)
	}
	p.summary = msg.summary
	p.refreshViewport()
	return nil
}

func (p *profileModel) handleKey(key tea.KeyMsg, jobs *jobBus, backend api.Backend) tea.Cmd {
	switch p.mode {
	case profileModeNotes:
		switch key.Type {
		case tea.KeyEsc:
			p.mode = profileModeView
			p.notesInput.Blur()
			return nil
		case tea.KeyCtrlS:
			return p.saveNotes(jobs, backend)
		}
		var cmd tea.Cmd
		p.notesInput, cmd = p.notesInput.Update(key)
		return cmd

	case profileModeLog:
		switch key.Type {
		case tea.KeyEsc:
			p.mode = profileModeView
			p.logInput.Blur()
			return nil
		case tea.KeyCtrlS:
			return p.submitLog(jobs, backend)
		case tea.KeyTab:
			p.logTypeIdx = (p.logTypeIdx + 1) % len(crm.CommunicationTypes)
			return nil
		}
		var cmd tea.Cmd
		p.logInput, cmd = p.logInput.Update(key)
		return cmd
	}

	switch key.String() {
	case "esc", "backspace":
		return navigateCmd(routeDashboard)
	case "1", "2", "3":
		idx := int(key.String()[0] - '1')
		if idx < len(crm.KnownTags) {
			return p.toggleTag(crm.KnownTags[idx], jobs, backend)
		}
		return nil
	case "n":
		p.openNotesComposer()
		return nil
	case "l":
		p.openLogComposer()
		return nil
	case "e":
		return p.sendEmail(jobs, backend)
	case "g":
		return p.generateSummary(jobs, backend)
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(key)
	return cmd
}

func (p *profileModel) refreshViewport() {
	if !p.ready {
		return
	}
	p.viewport.SetContent(p.contentView())
}

func (p *profileModel) contentView() string {
	if p.student == nil {
		return ""
	}
	s := p.student
	var b strings.Builder

	b.WriteString(titleStyle.Render(s.Name))
	b.WriteByte('\n')
	b.WriteString(helperStyle.Render(s.Email))
	b.WriteByte('\n')
	facts := []string{"Status: " + s.ApplicationStatus}
	if s.Phone != nil && *s.Phone != "" {
		facts = append(facts, "Phone: "+*s.Phone)
	}
	if s.Country != nil && *s.Country != "" {
		facts = append(facts, "Country: "+*s.Country)
	}
	if s.LastActive != nil {
		facts = append(facts, "Last active: "+s.LastActive.Format("2006-01-02"))
	}
	b.WriteString(helperStyle.Render(strings.Join(facts, "  ·  ")))
	b.WriteString("\n\n")

	b.WriteString(sectionHeaderStyle.Render("Tags"))
	b.WriteByte('\n')
	for i, tag := range crm.KnownTags {
		mark := tagOffStyle.Render("○")
		label := tagOffStyle.Render(tag)
		if s.HasTag(tag) {
			mark = tagOnStyle.Render("●")
			label = tagOnStyle.Render(tag)
		}
		b.WriteString(fmt.Sprintf("  %s %s  (%d)\n", mark, label, i+1))
	}
	for _, tag := range s.Tags {
		if !knownTag(tag) {
			b.WriteString("  " + tagOnStyle.Render("● "+tag) + "\n")
		}
	}
	b.WriteByte('\n')

	b.WriteString(sectionHeaderStyle.Render("Internal notes"))
	b.WriteByte('\n')
	if s.InternalNotes != nil && strings.TrimSpace(*s.InternalNotes) != "" {
		b.WriteString(*s.InternalNotes)
	} else {
		b.WriteString(helperStyle.Render("No notes yet. Press n to add some."))
	}
	b.WriteString("\n\n")

	b.WriteString(sectionHeaderStyle.Render("AI summary"))
	b.WriteByte('\n')
	switch {
	case p.summaryLoading:
		b.WriteString(helperStyle.Render("Generating…"))
	case p.summary != "":
		b.WriteString(richtext.Render(p.summary, p.viewport.Width))
	default:
		b.WriteString(helperStyle.Render("Press g to generate a summary."))
	}
	b.WriteString("\n\n")

	b.WriteString(sectionHeaderStyle.Render("Communications"))
	b.WriteByte('\n')
	switch {
	case p.logsErr != "":
		b.WriteString(errorStyle.Render("Couldn't load the timeline: " + p.logsErr))
	case len(p.logs) == 0:
		b.WriteString(helperStyle.Render("No communications recorded."))
	default:
		for _, entry := range p.logs {
			b.WriteString(logTypeStyle.Render(entry.Type))
			b.WriteString(helperStyle.Render("  " + entry.Timestamp.Format("2006-01-02 15:04")))
			b.WriteByte('\n')
			if entry.Content != nil && *entry.Content != "" {
				b.WriteString("  " + *entry.Content + "\n")
			}
		}
	}

	return b.String()
}

func knownTag(tag string) bool {
	for _, t := range crm.KnownTags {
		if t == tag {
			return true
		}
	}
	return false
}

func (p *profileModel) view(spinnerView string) string {
	if p.loadErr != "" {
		return errorStyle.Render("Couldn't load this student: "+p.loadErr) + "\n" +
			helperStyle.Render("Esc to go back.")
	}
	if p.student == nil {
		return helperStyle.Render(spinnerView + " Loading profile…")
	}

	switch p.mode {
	case profileModeNotes:
		return sectionHeaderStyle.Render("Edit internal notes") + "\n\n" +
			p.notesInput.View() + "\n\n" +
			helperStyle.Render("Ctrl+S to save, Esc to cancel.")
	case profileModeLog:
		return sectionHeaderStyle.Render("Log a communication") + "\n\n" +
			helperStyle.Render("Type: ") + logTypeStyle.Render(crm.CommunicationTypes[p.logTypeIdx]) +
			helperStyle.Render("  (Tab cycles)") + "\n\n" +
			p.logInput.View() + "\n\n" +
			helperStyle.Render("Ctrl+S to log, Esc to cancel.")
	}

	help := helperStyle.Render("1-3 tags · n notes · l log · e follow-up email · g summary · esc back")
	return p.viewport.View() + "\n\n" + help
}
