package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scumguard/internal/protect"
	"scumguard/internal/status"
)

func statusCmd() *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the acting player, zone count and recent console lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, _, err := setup()
			if err != nil {
				return err
			}

			snap, err := status.ReadRecord(layout.StatusFile())
			if err != nil {
				return err
			}
			player := protect.UnknownPlayer
			if snap.HasPlayer {
				player = snap.PlayerName
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Prisoner:   %s\n", player)
			fmt.Fprintf(out, "Save zones: %d\n", snap.ZoneCount)

			tail, err := status.Tail(layout.LogFile(), lines)
			if err != nil {
				return err
			}
			if len(tail) > 0 {
				fmt.Fprintln(out)
			}
			for _, line := range tail {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&lines, "lines", 50, "Number of trailing console lines to show (0 for all)")
	return cmd
}
