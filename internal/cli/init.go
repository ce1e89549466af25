package cli

import (
	"github.com/spf13/cobra"

	"github.com/michaeldyrynda/kr/internal/kr"
)

func newInitCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new knowledge repository",
		Long: `Creates a knowledge repository at the configured --repo location.

Examples:
  kr --repo ~/knowledge init
  kr init --tooling-embed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, deps)
			if err != nil {
				return err
			}

			return s.Client.Init(cmd.Context(), kr.InitOptions{
				ToolingEmbed: switchValue(cmd, "tooling-embed"),
				ToolingRepo:  stringValue(cmd, "tooling-repo"),
			})
		},
	}

	cmd.Flags().Bool("tooling-embed", false, "Embed the tooling in the repository")
	cmd.Flags().String("tooling-repo", "", "Repository to take the tooling from")

	return cmd
}
