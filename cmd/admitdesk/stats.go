package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// newStatsCmd prints the dashboard stat cards without opening the TUI,
// handy for scripts and a quick morning glance.
func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the student stats summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			client, token := newClient(cfg)
			if token == "" {
				return fmt.Errorf("no session; run %s first", color.CyanString("admitdesk login"))
			}

			stats, err := client.Stats(context.Background())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Active students:          %s\n", color.GreenString("%d", stats.ActiveStudents))
			fmt.Fprintf(out, "In applying stage:        %s\n", color.CyanString("%d", stats.ApplyingStage))
			fmt.Fprintf(out, "Need essay help:          %s\n", color.YellowString("%d", stats.NeedsEssayHelp))
			fmt.Fprintf(out, "High intent:              %s\n", color.GreenString("%d", stats.HighIntent))
			fmt.Fprintf(out, "Not contacted in 7 days:  %s\n", color.RedString("%d", stats.NotContactedRecently))
			return nil
		},
	}
}
