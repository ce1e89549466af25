package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/michaeldyrynda/kr/internal/config"
	"github.com/michaeldyrynda/kr/internal/ui"
)

func newConfigCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Shows the configuration kr runs with after flags, environment,
.env and kr.yaml have been applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, deps)
			if err != nil {
				return err
			}

			renderSettings(cmd.OutOrStdout(), s.Settings)

			source := s.Viper.ConfigFileUsed()
			if source == "" {
				source = "none (defaults and environment)"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n", source)
			return nil
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a value in kr.yaml",
		Long: fmt.Sprintf(`Writes a setting to kr.yaml in the current directory, or to the user
config with --global. Existing comments are kept.

Keys: %s

Examples:
  kr config set repo ~/knowledge
  kr config set hosts github.com,ghe.example.com --global`, strings.Join(config.Keys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(".", config.FileName+".yaml")
			if mustGetBool(cmd, "global") {
				path = config.GlobalConfigPath()
			}

			if err := config.SaveValue(path, args[0], args[1]); err != nil {
				return err
			}

			ui.FprintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Set %s in %s", args[0], path))
			return nil
		},
	}

	cmd.Flags().Bool("global", false, "Write to the user config instead of ./kr.yaml")
	return cmd
}

func renderSettings(w io.Writer, s *config.Settings) {
	mainBranch := s.MainBranch
	if mainBranch == "" {
		mainBranch = "(detect)"
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Key", "Value"})
	t.AppendRows([]table.Row{
		{"repo", s.Repo},
		{"tool", s.Tool},
		{"verbose", s.Verbose},
		{"shell", s.Shell},
		{"main_branch", mainBranch},
		{"remote", s.Remote},
		{"hosts", strings.Join(s.Hosts, ", ")},
		{"browse", s.Browse},
	})
	t.Render()
}

func resolvePath(cwd, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cwd, path)
}
