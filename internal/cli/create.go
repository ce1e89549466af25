package cli

import (
	"github.com/spf13/cobra"

	"github.com/michaeldyrynda/kr/internal/kr"
)

func newCreateCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create FILENAME",
		Short: "Create a new post from a template",
		Long: `Creates a new post file. The format is taken from the file extension
(.ipynb, .Rmd or .md) unless --format is given.

Examples:
  kr create analysis.ipynb
  kr create --template team.Rmd churn.Rmd`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, deps)
			if err != nil {
				return err
			}

			return s.Client.Create(cmd.Context(), kr.CreateOptions{
				Filename: args[0],
				Format:   mustGetString(cmd, "format"),
				Template: stringValue(cmd, "template"),
			})
		},
	}

	cmd.Flags().String("template", "", "Template to create the post from")
	cmd.Flags().String("format", "", "Post format: ipynb, Rmd or md")

	return cmd
}
