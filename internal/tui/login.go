package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/asoni/admitdesk/internal/auth"
)

// exchangeFunc swaps the real credential exchange for a stub in tests.
type exchangeFunc func(ctx context.Context, creds auth.Credentials) (string, error)

// loginModel walks Validating -> Authenticating -> Settled. Validation
// failures never reach the network; a settled failure shows the server's
// single human-readable message.
type loginModel struct {
	username textinput.Model
	password textinput.Model
	focus    int

	fieldErrs      map[string]string
	serverErr      string
	authenticating bool
}

func newLoginModel() loginModel {
	username := textinput.New()
	username.Placeholder = "staff@school.edu"
	username.CharLimit = 120
	username.Width = 40
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 120
	password.Width = 40

	return loginModel{
		username:  username,
		password:  password,
		fieldErrs: map[string]string{},
	}
}

func (l *loginModel) credentials() auth.Credentials {
	return auth.Credentials{
		Username: strings.TrimSpace(l.username.Value()),
		Password: l.password.Value(),
	}
}

// submit validates the form shape first; only a clean form starts the
// exchange job.
func (l *loginModel) submit(jobs *jobBus, exchange exchangeFunc) tea.Cmd {
	if l.authenticating {
		return nil
	}
	creds := l.credentials()
	if verr := creds.Validate(); verr != nil {
		l.fieldErrs = verr.Fields
		l.serverErr = ""
		return nil
	}
	l.fieldErrs = map[string]string{}
	l.serverErr = ""
	l.authenticating = true
	return jobs.Start(jobKindLogin, loginJob(exchange, creds))
}

func (l *loginModel) settle(err error) {
	l.authenticating = false
	if err != nil {
		l.serverErr = err.Error()
	}
}

func (l *loginModel) cycleFocus() {
	l.focus = (l.focus + 1) % 2
	if l.focus == 0 {
		l.username.Focus()
		l.password.Blur()
		return
	}
	l.username.Blur()
	l.password.Focus()
}

func (l *loginModel) handleKey(key tea.KeyMsg, jobs *jobBus, exchange exchangeFunc) tea.Cmd {
	switch key.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyDown, tea.KeyUp:
		l.cycleFocus()
		return nil
	case tea.KeyEnter:
		if l.focus == 0 {
			l.cycleFocus()
			return nil
		}
		return l.submit(jobs, exchange)
	}
	var cmd tea.Cmd
	if l.focus == 0 {
		l.username, cmd = l.username.Update(key)
	} else {
		l.password, cmd = l.password.Update(key)
	}
	return cmd
}

func (l *loginModel) view(spinnerView string) string {
	var b strings.Builder
	b.WriteString(sectionHeaderStyle.Render("Sign in"))
	b.WriteString("\n\n")

	b.WriteString(helperStyle.Render("Username"))
	b.WriteByte('\n')
	b.WriteString(l.username.View())
	if msg, ok := l.fieldErrs["username"]; ok {
		b.WriteByte('\n')
		b.WriteString(fieldErrorStyle.Render(msg))
	}
	b.WriteString("\n\n")

	b.WriteString(helperStyle.Render("Password"))
	b.WriteByte('\n')
	b.WriteString(l.password.View())
	if msg, ok := l.fieldErrs["password"]; ok {
		b.WriteByte('\n')
		b.WriteString(fieldErrorStyle.Render(msg))
	}
	b.WriteString("\n\n")

	switch {
	case l.authenticating:
		b.WriteString(helperStyle.Render(spinnerView + " Signing in…"))
	case l.serverErr != "":
		b.WriteString(errorStyle.Render(l.serverErr))
	default:
		b.WriteString(helperStyle.Render("Enter to submit, Tab to switch fields, Ctrl+C to quit."))
	}
	return b.String()
}
