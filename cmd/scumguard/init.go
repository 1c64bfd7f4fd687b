package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scumguard/internal/config"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write config/config.json with default zone rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, _, err := setup()
			if err != nil {
				return err
			}
			written, err := config.CreateDefault(layout.ConfigFile())
			if err != nil {
				return err
			}
			if !written {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", layout.ConfigFile())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", layout.ConfigFile())
			return nil
		},
	}
}
