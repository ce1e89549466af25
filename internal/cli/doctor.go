package cli

import (
	"errors"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/michaeldyrynda/kr/internal/doctor"
)

func newDoctorCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the tool and the knowledge repository",
		Long: `Checks that knowledge_repo is on PATH and that the configured repository
can be reached. Database repositories are pinged; local repositories are
checked for a git remote that review URLs can be built from.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, deps)
			if err != nil {
				return err
			}

			cfg := s.Client.Config()
			d := doctor.New(deps.Commander, cfg.Remote, cfg.Hosts)
			if deps.LookPath != nil {
				d.LookPath = deps.LookPath
			}

			repo := cfg.Repo
			if doctor.Classify(repo) == doctor.KindLocal {
				repo = resolvePath(s.CWD, repo)
			}

			report := d.Run(cmd.Context(), cfg.Tool, repo)
			renderReport(cmd.OutOrStdout(), report)

			if report.Failed() {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}

func renderReport(w io.Writer, report *doctor.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Check", "Status", "Detail"})
	for _, c := range report.Checks {
		t.AppendRow(table.Row{c.Name, c.Status.String(), c.Detail})
	}
	t.Render()
}
