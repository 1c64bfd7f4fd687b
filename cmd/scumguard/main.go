package main

import (
	"os"

	"github.com/spf13/cobra"
)

var homeDir string

func main() {
	root := &cobra.Command{
		Use:          "scumguard",
		Short:        "Keep items inside SCUM base zones from despawning",
		SilenceUsage: true,
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&homeDir, "home", "", "Workspace root holding config/ and data/ (default $SCUMGUARD_HOME or the executable's directory)")
	root.AddCommand(runCmd())
	root.AddCommand(detectCmd())
	root.AddCommand(initCmd())
	root.AddCommand(statusCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
