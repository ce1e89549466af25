// Package kr runs knowledge_repo subcommands on behalf of the CLI.
//
// Each operation turns an options struct into one knowledge_repo
// invocation, logs the command line and runs it with the caller's
// terminal attached. Submit additionally resolves the review URL on the
// repository's git host, or merges the post straight into the main
// branch when asked to.
package kr

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/michaeldyrynda/kr/internal/cmdline"
	krerrors "github.com/michaeldyrynda/kr/internal/errors"
	krexec "github.com/michaeldyrynda/kr/internal/exec"
	"github.com/michaeldyrynda/kr/internal/git"
	"github.com/michaeldyrynda/kr/internal/ui"
)

// ExitError reports a knowledge_repo process that exited non-zero.
type ExitError struct {
	Subcommand string
	Code       int
}

func (e *ExitError) Error() string {
	if e.Subcommand == "" {
		return fmt.Sprintf("knowledge_repo exited with status %d", e.Code)
	}
	return fmt.Sprintf("knowledge_repo %s exited with status %d", e.Subcommand, e.Code)
}

// Client runs knowledge_repo with a fixed configuration.
type Client struct {
	config    Config
	commander krexec.Commander
	executor  *krexec.CommandExecutor
	git       *git.Client
	logger    *log.Logger
	out       io.Writer
	opener    ui.Opener
	confirmer ui.Confirmer
	progress  ui.Progress
}

// Option configures a Client.
type Option func(*Client)

// WithCommander sets the process runner used for knowledge_repo and git.
func WithCommander(commander krexec.Commander) Option {
	return func(c *Client) {
		c.commander = commander
	}
}

// WithLogger sets the logger command lines and warnings go to.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithOutput sets where user-facing messages are printed.
func WithOutput(w io.Writer) Option {
	return func(c *Client) {
		c.out = w
	}
}

// WithOpener sets how review URLs are opened.
func WithOpener(opener ui.Opener) Option {
	return func(c *Client) {
		c.opener = opener
	}
}

// WithConfirmer sets who is asked before a direct submission.
func WithConfirmer(confirmer ui.Confirmer) Option {
	return func(c *Client) {
		c.confirmer = confirmer
	}
}

// WithProgress sets how the git steps of a direct submission are reported.
func WithProgress(progress ui.Progress) Option {
	return func(c *Client) {
		c.progress = progress
	}
}

// New returns a Client for cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	c := &Client{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.commander == nil {
		c.commander = &krexec.RealCommander{}
	}
	c.executor = krexec.NewCommandExecutor(c.commander)
	c.git = git.New(c.commander)

	if c.logger == nil {
		c.logger = ui.NewLogger(os.Stderr, cfg.Debug, false)
	}
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.opener == nil {
		c.opener = ui.BrowserOpener{}
	}
	if c.confirmer == nil {
		c.confirmer = ui.NonInteractiveConfirmer{}
	}
	if c.progress == nil {
		c.progress = ui.PlainProgress{}
	}

	return c, nil
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config {
	return c.config
}

// Invocation returns the command line a subcommand would run.
func (c *Client) Invocation(subcommand string, args cmdline.Args) cmdline.Invocation {
	inv := cmdline.Invocation{
		Tool:       c.config.Tool,
		Subcommand: subcommand,
		Args:       args,
	}
	inv.Globals.
		Set("repo", cmdline.String(c.config.Repo)).
		Set("dev", cmdline.Switch(c.config.Dev)).
		Set("debug", cmdline.Switch(c.config.Debug)).
		Set("noupdate", cmdline.Switch(c.config.NoUpdate)).
		Set("version", cmdline.Switch(c.config.Version)).
		Set("help", cmdline.Switch(c.config.Help))
	return inv
}

// dispatch runs one knowledge_repo subcommand and waits for it. The
// process inherits the terminal. There is no timeout.
func (c *Client) dispatch(ctx context.Context, subcommand string, args cmdline.Args) error {
	if c.config.Repo == "" {
		return krerrors.ErrNoRepository
	}

	inv := c.Invocation(subcommand, args)
	line := inv.String()
	if c.config.Verbose {
		c.logger.Info(line)
	}

	var code int
	var err error
	if c.config.Shell {
		code, err = c.executor.StreamShell(ctx, c.config.Dir, line)
	} else {
		code, err = c.executor.StreamBinary(ctx, c.config.Dir, c.config.Tool, inv.Argv()[1:])
	}
	if err != nil {
		return fmt.Errorf("running %s: %w", c.config.Tool, err)
	}
	if code != 0 {
		return &ExitError{Subcommand: subcommand, Code: code}
	}

	c.logger.Debug("command finished", "subcommand", subcommand)
	return nil
}

// resolve makes a relative path relative to Config.Dir.
func (c *Client) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.config.Dir == "" {
		return path
	}
	return filepath.Join(c.config.Dir, path)
}
