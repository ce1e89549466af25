package kr

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/michaeldyrynda/kr/internal/cmdline"
	krerrors "github.com/michaeldyrynda/kr/internal/errors"
	"github.com/michaeldyrynda/kr/internal/post"
)

// Post formats knowledge_repo can create.
const (
	FormatNotebook  = "ipynb"
	FormatRMarkdown = "Rmd"
	FormatMarkdown  = "md"
)

// Deployment engines knowledge_repo can serve with.
var Engines = []interface{}{"flask", "gunicorn", "uwsgi"}

// CreateOptions are the parameters of knowledge_repo create.
type CreateOptions struct {
	// Filename is the post file to create.
	Filename string

	// Format overrides the format inferred from Filename's extension.
	Format string

	Template cmdline.Value
}

// AddOptions are the parameters of knowledge_repo add.
type AddOptions struct {
	Filename string
	Path     cmdline.Value
	Update   cmdline.Value
	Branch   cmdline.Value
	Squash   cmdline.Value

	// Message defaults to one built from the post's title.
	Message cmdline.Value
	Src     cmdline.Value
	Browse  cmdline.Value
}

// InitOptions are the parameters of knowledge_repo init.
type InitOptions struct {
	ToolingEmbed cmdline.Value
	ToolingRepo  cmdline.Value
}

// PreviewOptions are the parameters of knowledge_repo preview.
type PreviewOptions struct {
	Path   string
	Port   cmdline.Value
	DBURI  cmdline.Value
	Config cmdline.Value
}

// DeployOptions are the parameters of knowledge_repo deploy.
type DeployOptions struct {
	Port      cmdline.Value
	DBURI     cmdline.Value
	Workers   cmdline.Value
	Timeout   cmdline.Value
	Config    cmdline.Value
	Engine    cmdline.Value
	Supervise cmdline.Value
}

// FormatOf returns the post format for a filename's extension.
func FormatOf(filename string) (string, error) {
	ext := filepath.Ext(filename)
	switch strings.ToLower(ext) {
	case ".ipynb":
		return FormatNotebook, nil
	case ".rmd":
		return FormatRMarkdown, nil
	case ".md":
		return FormatMarkdown, nil
	}
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", krerrors.ErrUnknownFormat, filename)
	}
	return "", fmt.Errorf("%w: %s", krerrors.ErrUnknownFormat, ext)
}

func normalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "ipynb":
		return FormatNotebook, nil
	case "rmd":
		return FormatRMarkdown, nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %s", krerrors.ErrUnknownFormat, format)
}

// Create runs knowledge_repo create for a new post from a template.
func (c *Client) Create(ctx context.Context, opts CreateOptions) error {
	if opts.Filename == "" {
		return errors.New("create: filename is required")
	}

	var format string
	var err error
	if opts.Format != "" {
		format, err = normalizeFormat(opts.Format)
	} else {
		format, err = FormatOf(opts.Filename)
	}
	if err != nil {
		return err
	}

	var args cmdline.Args
	args.Set("template", opts.Template).
		Add(format, opts.Filename)
	return c.dispatch(ctx, "create", args)
}

// Add runs knowledge_repo add. Without a message, one is built from the
// post's title; a post without a title gets a generic message and a
// warning.
func (c *Client) Add(ctx context.Context, opts AddOptions) error {
	if opts.Filename == "" {
		return errors.New("add: filename is required")
	}

	message := opts.Message
	if !message.IsSet() {
		message = cmdline.String(c.defaultCommitMessage(opts.Filename))
	}

	var args cmdline.Args
	args.Set("update", opts.Update).
		Set("branch", opts.Branch).
		Set("squash", opts.Squash).
		Set("message", message).
		Set("src", opts.Src).
		Set("browse", opts.Browse).
		Set("path", opts.Path).
		Add(opts.Filename)
	return c.dispatch(ctx, "add", args)
}

func (c *Client) defaultCommitMessage(filename string) string {
	header, err := post.ReadHeader(c.resolve(filename))
	if err != nil {
		c.logger.Warn("could not read post header", "file", filename, "err", err)
		return post.GenericCommitMessage
	}

	msg, ok := post.CommitMessage(header)
	if !ok {
		c.logger.Warn("post has no title; using a generic commit message", "file", filename)
	}
	return msg
}

// Init runs knowledge_repo init to create the repository.
func (c *Client) Init(ctx context.Context, opts InitOptions) error {
	var args cmdline.Args
	args.Set("tooling_embed", opts.ToolingEmbed).
		Set("tooling_repo", opts.ToolingRepo)
	return c.dispatch(ctx, "init", args)
}

// Status runs knowledge_repo status.
func (c *Client) Status(ctx context.Context) error {
	return c.dispatch(ctx, "status", cmdline.Args{})
}

// Validate checks the preview parameters.
func (o PreviewOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Path, validation.Required),
		validation.Field(&o.Port, validation.By(portRule)),
	)
}

// Preview runs knowledge_repo preview to serve a single post.
func (c *Client) Preview(ctx context.Context, opts PreviewOptions) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	var args cmdline.Args
	args.Set("port", opts.Port).
		Set("dburi", opts.DBURI).
		Set("config", opts.Config).
		Add(opts.Path)
	return c.dispatch(ctx, "preview", args)
}

// Validate checks the deploy parameters.
func (o DeployOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Port, validation.By(portRule)),
		validation.Field(&o.Workers, validation.By(positiveRule)),
		validation.Field(&o.Timeout, validation.By(positiveRule)),
		validation.Field(&o.Engine, validation.By(engineRule)),
	)
}

// Deploy runs knowledge_repo deploy to serve the repository.
func (c *Client) Deploy(ctx context.Context, opts DeployOptions) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("deploy: %w", err)
	}

	var args cmdline.Args
	args.Set("port", opts.Port).
		Set("dburi", opts.DBURI).
		Set("workers", opts.Workers).
		Set("timeout", opts.Timeout).
		Set("config", opts.Config).
		Set("engine", opts.Engine).
		Set("supervise", opts.Supervise)
	return c.dispatch(ctx, "deploy", args)
}

func valueText(value interface{}) (string, bool) {
	v, ok := value.(cmdline.Value)
	if !ok {
		return "", false
	}
	return v.Text()
}

func portRule(value interface{}) error {
	s, ok := valueText(value)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return errors.New("must be a port between 1 and 65535")
	}
	return nil
}

func positiveRule(value interface{}) error {
	s, ok := valueText(value)
	if !ok {
		return nil
	}
	if n, err := strconv.Atoi(s); err != nil || n < 1 {
		return errors.New("must be a positive integer")
	}
	return nil
}

func engineRule(value interface{}) error {
	s, ok := valueText(value)
	if !ok {
		return nil
	}
	return validation.Validate(s, validation.In(Engines...))
}
