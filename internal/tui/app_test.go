package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asoni/admitdesk/internal/auth"
	"github.com/asoni/admitdesk/internal/crm"
)

func testConfig(t *testing.T, backend *stubBackend) Config {
	t.Helper()
	return Config{
		Backend: backend,
		Exchange: func(context.Context, auth.Credentials) (string, error) {
			return "tok-123", nil
		},
		SessionPath: filepath.Join(t.TempDir(), "session.json"),
		JobTimeout:  time.Second,
	}
}

func TestStartsOnLoginWithoutToken(t *testing.T) {
	m := New(testConfig(t, &stubBackend{}))
	assert.Equal(t, screenLogin, m.screen)
}

func TestRestoredTokenSkipsLogin(t *testing.T) {
	cfg := testConfig(t, &stubBackend{})
	cfg.Token = "tok-restored"
	m := New(cfg)
	assert.Equal(t, screenDirectory, m.screen)
	assert.NotNil(t, m.Init(), "a restored session still fetches the directory")
}

func TestLoginSuccessPersistsSessionAndNavigates(t *testing.T) {
	var installed string
	cfg := testConfig(t, &stubBackend{})
	cfg.OnToken = func(token string) { installed = token }

	m := New(cfg)
	next, cmd := m.Update(jobResultEnvelope{Payload: loginResultMsg{token: "tok-123"}})
	m = next.(Model)
	require.NotNil(t, cmd)

	nav, ok := cmd().(navigateMsg)
	require.True(t, ok)
	assert.Equal(t, routeDashboard, nav.route)
	assert.Equal(t, "tok-123", installed)

	session, err := auth.LoadSession(cfg.SessionPath)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", session.Token)
	assert.Contains(t, session.Cookie, "accessToken=tok-123")
	assert.False(t, session.Expired())
}

func TestLoginFailureStaysOnLoginScreen(t *testing.T) {
	m := New(testConfig(t, &stubBackend{}))

	next, cmd := m.Update(jobResultEnvelope{Payload: loginResultMsg{err: assert.AnError}})
	m = next.(Model)

	assert.Nil(t, cmd)
	assert.Equal(t, screenLogin, m.screen)
	assert.Equal(t, assert.AnError.Error(), m.login.serverErr)
}

func TestNavigateToStudentOpensProfile(t *testing.T) {
	backend := &stubBackend{student: fixtureStudent()}
	m := New(testConfig(t, backend))

	next, cmd := m.Update(navigateMsg{route: routeStudents + "stu-1"})
	m = next.(Model)

	assert.Equal(t, screenProfile, m.screen)
	assert.Equal(t, "stu-1", m.profile.studentID)
	require.NotNil(t, cmd, "opening a profile fetches it and its timeline")
}

func TestNavigateBackDoesNotRefetchLoadedDirectory(t *testing.T) {
	m := New(testConfig(t, &stubBackend{}))
	m.dir.handleStudentsLoaded(studentsLoadedMsg{students: []crm.Student{{ID: "s1", Name: "A"}}})

	next, cmd := m.Update(navigateMsg{route: routeDashboard})
	m = next.(Model)

	assert.Equal(t, screenDirectory, m.screen)
	assert.Nil(t, cmd, "the directory is fetched once per run")
}

func TestJobSignalsDriveInFlightCounter(t *testing.T) {
	m := New(testConfig(t, &stubBackend{}))

	next, _ := m.Update(jobSignalMsg{Snapshot: jobSnapshot{Status: jobStatusRunning}})
	m = next.(Model)
	assert.Equal(t, 1, m.running)

	next, _ = m.Update(jobResultEnvelope{Snapshot: jobSnapshot{Status: jobStatusSucceeded}, Payload: statsLoadedMsg{}})
	m = next.(Model)
	assert.Equal(t, 0, m.running)
}

func TestToastExpiryMessageRemovesToast(t *testing.T) {
	m := New(testConfig(t, &stubBackend{}))
	m.toasts.Post("saved", toastSuccess)
	id := m.toasts.entries[0].ID

	next, _ := m.Update(toastExpiredMsg{id: id})
	m = next.(Model)

	assert.Zero(t, m.toasts.Len())
}

func TestCtrlCQuitsFromAnyScreen(t *testing.T) {
	m := New(testConfig(t, &stubBackend{}))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
