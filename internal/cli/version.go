package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build information, set at build time via -ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Display the version of kr. Use --tool-version for knowledge_repo's version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "kr version %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		},
	}
}
