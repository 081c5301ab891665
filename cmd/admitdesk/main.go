// Package main provides the AdmitDesk CLI entrypoint.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/asoni/admitdesk/internal/api"
	"github.com/asoni/admitdesk/internal/auth"
	"github.com/asoni/admitdesk/internal/config"
	"github.com/asoni/admitdesk/internal/tui"
)

var (
	flagAPIURL      string
	flagSessionPath string
	flagNoAltScreen bool
	flagDebug       bool
)

func main() {
	defaults := config.Load()

	rootCmd := &cobra.Command{
		Use:   "admitdesk",
		Short: "Terminal dashboard for the admissions CRM",
		Long: `AdmitDesk is a terminal dashboard for admissions staff.

Running it with no arguments opens the interactive dashboard: the student
directory, per-student profiles, and the communication timeline. The
subcommands cover session management and quick reads without the full UI.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard()
		},
	}

	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api", defaults.APIBaseURL, "backend base URL")
	rootCmd.PersistentFlags().StringVar(&flagSessionPath, "session", defaults.SessionPath, "path to the persisted login session")
	rootCmd.Flags().BoolVar(&flagNoAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", defaults.Debug, "write debug logs to admitdesk-debug.log")

	rootCmd.AddCommand(newLoginCmd(), newLogoutCmd(), newStatsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig applies the persistent flags over the environment defaults.
func loadConfig() config.Config {
	cfg := config.Load()
	cfg.APIBaseURL = flagAPIURL
	cfg.SessionPath = flagSessionPath
	cfg.Debug = flagDebug
	return cfg
}

// newClient builds the API client, restoring the saved session token when a
// valid one exists. The returned token is empty when the user must log in.
func newClient(cfg config.Config) (*api.Client, string) {
	client := api.New(api.Config{
		BaseURL:    cfg.APIBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeout},
	})
	session, err := auth.LoadSession(cfg.SessionPath)
	if err != nil || session.Expired() {
		return client, ""
	}
	client.SetToken(session.Token)
	return client, session.Token
}

func runDashboard() error {
	cfg := loadConfig()
	client, token := newClient(cfg)

	if cfg.Debug {
		f, err := tea.LogToFile("admitdesk-debug.log", "debug")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	model := tui.New(tui.Config{
		Backend: client,
		Exchange: func(ctx context.Context, creds auth.Credentials) (string, error) {
			return auth.Exchange(ctx, httpClient, cfg.APIBaseURL, creds)
		},
		OnToken:       client.SetToken,
		Token:         token,
		SessionPath:   cfg.SessionPath,
		SecureCookies: cfg.SecureCookies(),
		JobTimeout:    cfg.RequestTimeout,
	})

	opts := []tea.ProgramOption{}
	if !flagNoAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(model, opts...)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
