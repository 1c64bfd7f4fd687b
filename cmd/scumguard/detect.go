package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scumguard/internal/savepath"
)

func detectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Locate SCUM.db and print its path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, log, err := setup()
			if err != nil {
				return err
			}
			path, err := savepath.Detect(layout.PathFile(), log)
			if err != nil {
				return fmt.Errorf("%w; set db_path in %s", err, layout.PathFile())
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
