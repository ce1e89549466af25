package cli

import (
	"github.com/spf13/cobra"

	"github.com/michaeldyrynda/kr/internal/kr"
)

func newAddCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add FILENAME",
		Short: "Add a post to the knowledge repository",
		Long: `Adds a post to the repository on its review branch.

Without --message the commit message is built from the post's title.

Examples:
  kr add churn.Rmd
  kr add --path team/churn --update churn.Rmd`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, deps)
			if err != nil {
				return err
			}

			return s.Client.Add(cmd.Context(), kr.AddOptions{
				Filename: args[0],
				Path:     stringValue(cmd, "path"),
				Update:   switchValue(cmd, "update"),
				Branch:   stringValue(cmd, "branch"),
				Squash:   switchValue(cmd, "squash"),
				Message:  stringValue(cmd, "message"),
				Src:      stringValue(cmd, "src"),
				Browse:   switchValue(cmd, "browse"),
			})
		},
	}

	cmd.Flags().StringP("path", "p", "", "Path of the post in the repository")
	cmd.Flags().Bool("update", false, "Update an existing post")
	cmd.Flags().String("branch", "", "Branch to add the post on")
	cmd.Flags().Bool("squash", false, "Squash the post's history")
	cmd.Flags().StringP("message", "m", "", "Commit message")
	cmd.Flags().String("src", "", "Source files to store with the post")
	cmd.Flags().Bool("browse", false, "Open the post in a browser after adding it")

	return cmd
}
