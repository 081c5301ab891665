// Package tui is the AdmitDesk terminal dashboard. One Model owns all
// screen state; network work runs through the job bus and re-enters the
// update loop as typed messages.
package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/asoni/admitdesk/internal/api"
	"github.com/asoni/admitdesk/internal/auth"
)

// Config wires the app shell to its collaborators. Backend and Exchange are
// interfaces so tests can swap in doubles without a server.
type Config struct {
	Backend  api.Backend
	Exchange exchangeFunc

	// OnToken installs a freshly exchanged token into the backend client.
	OnToken func(token string)

	// Token, when non-empty, is a restored session; the login screen is
	// skipped.
	Token string

	SessionPath   string
	SecureCookies bool

	JobTimeout time.Duration
}

// Model is the root Bubble Tea model.
type Model struct {
	cfg Config

	jobs   *jobBus
	toasts *toastQueue

	screen  screen
	login   loginModel
	dir     directoryModel
	profile profileModel

	spinner spinner.Model
	running int

	width  int
	height int

	quitting bool
}

func New(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	initial := screenLogin
	if cfg.Token != "" {
		initial = screenDirectory
	}

	return Model{
		cfg:     cfg,
		jobs:    newJobBus(cfg.JobTimeout),
		toasts:  newToastQueue(),
		screen:  initial,
		login:   newLoginModel(),
		dir:     newDirectoryModel(),
		profile: newProfileModel(),
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, textinput.Blink}
	if m.screen == screenDirectory {
		cmds = append(cmds, m.dir.init(m.jobs, m.cfg.Backend))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyCtrlD:
			m.toasts.DismissOldest()
			return m, nil
		}
		return m, m.routeKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.profile.setSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case jobSignalMsg:
		if msg.Snapshot.Status == jobStatusRunning {
			m.running++
		}
		return m, nil

	case jobResultEnvelope:
		if m.running > 0 {
			m.running--
		}
		return m, m.dispatch(msg.Payload)

	case toastExpiredMsg:
		m.toasts.Remove(msg.id)
		return m, nil

	case navigateMsg:
		return m, m.navigate(msg.route)
	}

	return m, m.dispatch(msg)
}

func (m *Model) routeKey(key tea.KeyMsg) tea.Cmd {
	switch m.screen {
	case screenLogin:
		return m.login.handleKey(key, m.jobs, m.cfg.Exchange)
	case screenDirectory:
		return m.dir.handleKey(key)
	case screenProfile:
		return m.profile.handleKey(key, m.jobs, m.cfg.Backend)
	}
	return nil
}

// navigate is the router. Routes are control-flow, so this is the only place
// the current screen changes.
func (m *Model) navigate(route string) tea.Cmd {
	switch {
	case route == routeDashboard:
		if m.screen == screenProfile {
			m.profile.teardown()
		}
		m.screen = screenDirectory
		if !m.dir.loaded && m.dir.loadErr == "" {
			return m.dir.init(m.jobs, m.cfg.Backend)
		}
		return nil
	case strings.HasPrefix(route, routeStudents):
		id := strings.TrimPrefix(route, routeStudents)
		m.screen = screenProfile
		return m.profile.open(id, m.jobs, m.cfg.Backend)
	}
	return nil
}

// dispatch hands a job payload to its screen handler. Handlers own their own
// stale-result guards; the shell never inspects student ids.
func (m *Model) dispatch(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.login.settle(msg.err)
		if msg.err != nil {
			return nil
		}
		return m.completeLogin(msg.token)

	case studentsLoadedMsg:
		m.dir.handleStudentsLoaded(msg)
		if msg.err != nil {
			return m.toasts.Post("Couldn't load students", toastError)
		}
		return nil

	case statsLoadedMsg:
		m.dir.handleStatsLoaded(msg)
		return nil

	case profileLoadedMsg:
		m.profile.handleProfileLoaded(msg)
		return nil

	case logsLoadedMsg:
		m.profile.handleLogsLoaded(msg)
		return nil

	case summaryResultMsg:
		return m.profile.handleSummaryResult(msg, m.toasts)

	case tagsSavedMsg:
		return m.profile.handleTagsSaved(msg, m.toasts)

	case notesSavedMsg:
		return m.profile.handleNotesSaved(msg, m.toasts)

	case logCreatedMsg:
		return m.profile.handleLogCreated(msg, m.toasts)

	case emailSentMsg:
		return m.profile.handleEmailSent(msg, m.jobs, m.cfg.Backend, m.toasts)
	}
	return nil
}

// completeLogin installs the token, persists the session, and routes to the
// dashboard. A failed session write is logged, not fatal; the in-memory
// token still works for this run.
func (m *Model) completeLogin(token string) tea.Cmd {
	if m.cfg.OnToken != nil {
		m.cfg.OnToken(token)
	}
	if m.cfg.SessionPath != "" {
		session := auth.NewSession(token, m.cfg.SecureCookies)
		if err := auth.SaveSession(m.cfg.SessionPath, session); err != nil {
			log.Printf("[session] save failed: %v", err)
		}
	}
	return navigateCmd(routeDashboard)
}

func (m Model) headerView() string {
	logo := logoStyle.Render("AdmitDesk")
	tagline := taglineStyle.Render(heroTagline)
	status := ""
	if m.running > 0 {
		status = statusBarStyle.Render(fmt.Sprintf("%s %d in flight", m.spinner.View(), m.running))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, logo, "  ", tagline, "  ", status)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.screen {
	case screenLogin:
		body = m.login.view(m.spinner.View())
	case screenDirectory:
		body = m.dir.view(m.spinner.View())
	case screenProfile:
		body = m.profile.view(m.spinner.View())
	}

	parts := []string{m.headerView(), body}
	if m.toasts.Len() > 0 {
		parts = append(parts, m.toasts.View())
	}
	return strings.Join(parts, "\n\n") + "\n"
}
