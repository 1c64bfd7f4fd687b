package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"scumguard/internal/protect"
	"scumguard/internal/status"
)

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Protect items in base zones until interrupted",
		Args:  cobra.NoArgs,
		RunE:  runRun,
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	layout, log, err := setup()
	if err != nil {
		return err
	}

	console := status.NewConsole(layout.LogFile())
	if err := console.Reset(status.Banner); err != nil {
		log.WithError(err).Warn("could not reset console log")
	}
	log.AddHook(status.NewConsoleHook(console))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return protect.Start(ctx, layout, log)
}
