package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"scumguard/internal/config"
	"scumguard/internal/savepath"
	"scumguard/internal/store/sqlite"
	"scumguard/internal/validate"
	"scumguard/internal/zone"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that SCUM.db has what the protector needs",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	layout, log, err := setup()
	if err != nil {
		return err
	}

	dbPath, err := savepath.Detect(layout.PathFile(), log)
	if err != nil {
		return fmt.Errorf("%w; set db_path in %s", err, layout.PathFile())
	}

	client, err := sqlite.Open(ctx, dbPath, log)
	if err != nil {
		return err
	}
	defer client.Close(ctx)

	resolver := zone.NewResolver(client, config.FileLoader{Path: layout.ConfigFile(), Log: log})
	report, err := validate.Run(ctx, client, resolver)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database: %s\n", dbPath)
	if report.ProfileID != 0 {
		player := report.Player
		if player == "" {
			player = "(unnamed)"
		}
		fmt.Fprintf(out, "Prisoner: %s (profile %d)\n", player, report.ProfileID)
		fmt.Fprintf(out, "Zones:    %d\n", report.Zones)
	}

	if len(report.Issues) == 0 {
		fmt.Fprintln(out, "No issues found.")
		return nil
	}

	fmt.Fprintf(out, "\nIssues (%d):\n", len(report.Issues))
	for _, issue := range report.Issues {
		if issue.Table != "" {
			fmt.Fprintf(out, "  - [%s] %s: %s (%s)\n", issue.Severity, issue.Table, issue.Message, issue.Code)
			continue
		}
		fmt.Fprintf(out, "  - [%s] %s (%s)\n", issue.Severity, issue.Message, issue.Code)
	}

	if report.HasErrors() {
		return fmt.Errorf("validation found errors")
	}
	return nil
}
