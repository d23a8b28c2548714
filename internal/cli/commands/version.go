package commands

import (
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("pkglineage %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
			cmd.Printf("  commit: %s\n", gitCommit)
			cmd.Printf("  built:  %s\n", buildDate)
		},
	}
}
