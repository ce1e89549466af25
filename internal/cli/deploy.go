package cli

import (
	"github.com/spf13/cobra"

	"github.com/michaeldyrynda/kr/internal/kr"
)

func newDeployCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Serve the knowledge repository",
		Long: `Runs the knowledge_repo web server for the repository.

Examples:
  kr deploy --port 7000
  kr deploy --engine gunicorn --workers 4 --supervise`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, deps)
			if err != nil {
				return err
			}

			return s.Client.Deploy(cmd.Context(), kr.DeployOptions{
				Port:      intValue(cmd, "port"),
				DBURI:     stringValue(cmd, "dburi"),
				Workers:   intValue(cmd, "workers"),
				Timeout:   intValue(cmd, "timeout"),
				Config:    stringValue(cmd, "config"),
				Engine:    stringValue(cmd, "engine"),
				Supervise: switchValue(cmd, "supervise"),
			})
		},
	}

	cmd.Flags().Int("port", 0, "Port to serve on")
	cmd.Flags().String("dburi", "", "Database URI for the server's index")
	cmd.Flags().Int("workers", 0, "Number of worker processes")
	cmd.Flags().Int("timeout", 0, "Worker timeout in seconds")
	cmd.Flags().String("config", "", "Server configuration file")
	cmd.Flags().String("engine", "", "Server engine: flask, gunicorn or uwsgi")
	cmd.Flags().Bool("supervise", false, "Run the server under supervision")

	return cmd
}
