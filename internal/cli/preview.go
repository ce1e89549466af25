package cli

import (
	"github.com/spf13/cobra"

	"github.com/michaeldyrynda/kr/internal/kr"
)

func newPreviewCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview PATH",
		Short: "Serve a single post locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, deps)
			if err != nil {
				return err
			}

			return s.Client.Preview(cmd.Context(), kr.PreviewOptions{
				Path:   args[0],
				Port:   intValue(cmd, "port"),
				DBURI:  stringValue(cmd, "dburi"),
				Config: stringValue(cmd, "config"),
			})
		},
	}

	cmd.Flags().Int("port", 0, "Port to serve on")
	cmd.Flags().String("dburi", "", "Database URI for the server's index")
	cmd.Flags().String("config", "", "Server configuration file")

	return cmd
}
