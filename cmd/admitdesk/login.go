package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/asoni/admitdesk/internal/auth"
)

// newLoginCmd exchanges credentials for a session without opening the TUI.
// The password is read with echo disabled when stdin is a terminal.
func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			creds, err := promptCredentials(cmd)
			if err != nil {
				return err
			}
			if verr := creds.Validate(); verr != nil {
				for _, msg := range verr.Fields {
					fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("✗ "+msg))
				}
				return fmt.Errorf("invalid credentials")
			}

			httpClient := &http.Client{Timeout: cfg.RequestTimeout}
			token, err := auth.Exchange(context.Background(), httpClient, cfg.APIBaseURL, creds)
			if err != nil {
				return err
			}

			session := auth.NewSession(token, cfg.SecureCookies())
			if err := auth.SaveSession(cfg.SessionPath, session); err != nil {
				return fmt.Errorf("save session: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s signed in, session saved to %s\n",
				color.GreenString("✓"), cfg.SessionPath)
			return nil
		},
	}
}

func promptCredentials(cmd *cobra.Command) (auth.Credentials, error) {
	reader := bufio.NewReader(cmd.InOrStdin())

	fmt.Fprint(cmd.OutOrStdout(), "Username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return auth.Credentials{}, fmt.Errorf("read username: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	var password string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return auth.Credentials{}, fmt.Errorf("read password: %w", err)
		}
		password = string(raw)
	} else {
		line, err := reader.ReadString('\n')
		if err != nil {
			return auth.Credentials{}, fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	return auth.Credentials{
		Username: strings.TrimSpace(username),
		Password: password,
	}, nil
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if err := auth.ClearSession(cfg.SessionPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s signed out\n", color.GreenString("✓"))
			return nil
		},
	}
}
