package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/michaeldyrynda/kr/internal/config"
	krerrors "github.com/michaeldyrynda/kr/internal/errors"
	krexec "github.com/michaeldyrynda/kr/internal/exec"
	"github.com/michaeldyrynda/kr/internal/kr"
	"github.com/michaeldyrynda/kr/internal/ui"
)

// Deps are the collaborators commands run with. Nil fields use the real
// implementations.
type Deps struct {
	Commander krexec.Commander
	Opener    ui.Opener
	Confirmer ui.Confirmer
	Progress  ui.Progress
	LookPath  func(file string) (string, error)
}

// NewRootCmd builds the kr command tree.
func NewRootCmd(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = &Deps{}
	}

	rootCmd := &cobra.Command{
		Use:   "kr",
		Short: "Run knowledge_repo against your knowledge repository",
		Long: `kr wraps the knowledge_repo command line tool.

It fills in the repository from --repo, KNOWLEDGE_REPO or kr.yaml, builds
commit messages from post headers, and after a submission prints the URL
the post can be reviewed at.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("repo", "", "Knowledge repository path or URI (default $KNOWLEDGE_REPO)")
	flags.String("tool", "", "knowledge_repo invocation (default \"knowledge_repo\")")
	flags.Bool("dev", false, "Pass --dev to knowledge_repo")
	flags.Bool("debug", false, "Pass --debug to knowledge_repo and log debug output")
	flags.Bool("noupdate", false, "Pass --noupdate to knowledge_repo")
	flags.Bool("tool-version", false, "Pass --version to knowledge_repo")
	flags.Bool("tool-help", false, "Pass --help to knowledge_repo")
	flags.Bool("shell", false, "Run the command line through sh -c")
	flags.BoolP("quiet", "q", false, "Do not echo command lines")

	rootCmd.AddCommand(
		newCreateCmd(deps),
		newAddCmd(deps),
		newInitCmd(deps),
		newSubmitCmd(deps),
		newStatusCmd(deps),
		newPreviewCmd(deps),
		newDeployCmd(deps),
		newDoctorCmd(deps),
		newConfigCmd(deps),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs kr with the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCmd(nil).ExecuteContext(ctx)
}

// ExitCode maps an error returned by Execute to a process exit status.
// knowledge_repo's own status is passed through unchanged.
func ExitCode(err error) int {
	var exitErr *kr.ExitError
	switch {
	case err == nil:
		return config.ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, krerrors.ErrNoRepository):
		return config.ExitConfigurationError
	case errors.Is(err, krerrors.ErrUnknownFormat), errors.Is(err, krerrors.ErrNoPostPath),
		errors.Is(err, ui.ErrNotInteractive):
		return config.ExitInvalidArguments
	case errors.Is(err, krerrors.ErrGitOperationFailed):
		return config.ExitGitOperationFailed
	}
	return config.ExitGeneralError
}
