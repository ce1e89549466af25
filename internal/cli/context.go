package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/michaeldyrynda/kr/internal/config"
	"github.com/michaeldyrynda/kr/internal/kr"
	"github.com/michaeldyrynda/kr/internal/ui"
)

// session is the resolved state a command runs with.
type session struct {
	CWD      string
	Viper    *viper.Viper
	Settings *config.Settings
	Logger   *log.Logger
	Client   *kr.Client
}

// boundFlags are the persistent flags that override kr.yaml and the
// environment.
var boundFlags = []string{"repo", "tool", "shell"}

// openSession loads .env, the environment and kr.yaml, applies flags and
// builds a Client. This is the only place the environment is read.
func openSession(cmd *cobra.Command, deps *Deps) (*session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	debug := mustGetBool(cmd, "debug")
	quiet := mustGetBool(cmd, "quiet")
	logger := ui.NewLogger(cmd.ErrOrStderr(), debug, quiet)

	if err := config.LoadDotEnv(cwd); err != nil {
		logger.Warn("ignoring .env", "err", err)
	}

	v := config.New()
	for _, name := range boundFlags {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return nil, fmt.Errorf("binding --%s: %w", name, err)
		}
	}

	settings, err := config.Load(v, config.SearchPaths(cwd)...)
	if err != nil {
		return nil, err
	}
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("loaded config", "file", used)
	}

	cfg := kr.Config{
		Tool:       settings.Tool,
		Repo:       settings.Repo,
		Dev:        mustGetBool(cmd, "dev"),
		Debug:      debug,
		NoUpdate:   mustGetBool(cmd, "noupdate"),
		Version:    mustGetBool(cmd, "tool-version"),
		Help:       mustGetBool(cmd, "tool-help"),
		Verbose:    settings.Verbose && !quiet,
		Shell:      settings.Shell,
		MainBranch: settings.MainBranch,
		Remote:     settings.Remote,
		Hosts:      settings.Hosts,
		Dir:        cwd,
	}

	client, err := kr.New(cfg, clientOptions(cmd, deps, logger)...)
	if err != nil {
		return nil, err
	}

	return &session{
		CWD:      cwd,
		Viper:    v,
		Settings: settings,
		Logger:   logger,
		Client:   client,
	}, nil
}

func clientOptions(cmd *cobra.Command, deps *Deps, logger *log.Logger) []kr.Option {
	opts := []kr.Option{
		kr.WithLogger(logger),
		kr.WithOutput(cmd.OutOrStdout()),
	}
	if deps.Commander != nil {
		opts = append(opts, kr.WithCommander(deps.Commander))
	}
	if deps.Opener != nil {
		opts = append(opts, kr.WithOpener(deps.Opener))
	}

	interactive := ui.IsInteractive()
	switch {
	case deps.Confirmer != nil:
		opts = append(opts, kr.WithConfirmer(deps.Confirmer))
	case interactive:
		opts = append(opts, kr.WithConfirmer(ui.PromptConfirmer{}))
	}
	switch {
	case deps.Progress != nil:
		opts = append(opts, kr.WithProgress(deps.Progress))
	case interactive:
		opts = append(opts, kr.WithProgress(ui.SpinnerProgress{}))
	}
	return opts
}
