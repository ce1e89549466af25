package cli

import (
	"github.com/spf13/cobra"
)

func newStatusCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the status of the knowledge repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, deps)
			if err != nil {
				return err
			}
			return s.Client.Status(cmd.Context())
		},
	}
}
