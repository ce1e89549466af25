package cli

import (
	"github.com/spf13/cobra"

	"github.com/michaeldyrynda/kr/internal/kr"
)

func newSubmitCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit [FILENAME]",
		Short: "Submit a post for review",
		Long: `Submits a post for review and prints the URL the pull request can be
opened at. The post path is taken from --path, or from the header of
FILENAME.

--direct skips review: the post branch is merged into the main branch
and pushed. It needs push rights to the main branch and asks for
confirmation unless --yes is given.

Examples:
  kr submit --path team/churn --browse
  kr submit churn.Rmd
  kr submit --path team/churn --direct --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, deps)
			if err != nil {
				return err
			}

			opts := kr.SubmitOptions{
				Path:   mustGetString(cmd, "path"),
				Browse: mustGetBool(cmd, "browse") || s.Settings.Browse,
				Direct: mustGetBool(cmd, "direct"),
				Yes:    mustGetBool(cmd, "yes"),
			}
			if len(args) == 1 {
				opts.Filename = args[0]
			}

			_, err = s.Client.Submit(cmd.Context(), opts)
			return err
		},
	}

	cmd.Flags().StringP("path", "p", "", "Path of the post in the repository")
	cmd.Flags().Bool("browse", false, "Open the review URL in a browser")
	cmd.Flags().Bool("direct", false, "Merge into the main branch and push, skipping review")
	cmd.Flags().BoolP("yes", "y", false, "Do not ask before a direct submission")

	return cmd
}
