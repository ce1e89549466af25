package kr

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config is the resolved configuration a Client runs with. The CLI layer
// fills it from flags, environment and kr.yaml; nothing in this package
// reads the environment.
type Config struct {
	// Tool is the knowledge_repo invocation. It may contain spaces, as in
	// "python -m knowledge_repo".
	Tool string

	// Repo is passed as --repo on every invocation.
	Repo string

	// Global switches forwarded to every subcommand.
	Dev      bool
	Debug    bool
	NoUpdate bool
	Version  bool
	Help     bool

	// Verbose logs each command line before it runs.
	Verbose bool

	// Shell runs the quoted command line through sh -c instead of
	// executing the argument vector directly.
	Shell bool

	// MainBranch is the branch direct submissions merge into. Empty means
	// detect it from the repository.
	MainBranch string

	// Remote is the git remote that submissions are reviewed on.
	Remote string

	// Hosts are the git hosting domains a remote may point at.
	Hosts []string

	// Dir is the working directory for the tool and relative paths.
	Dir string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Tool:    "knowledge_repo",
		Verbose: true,
		Remote:  "origin",
		Hosts:   []string{"github.com"},
	}
}

// Validate checks the configuration. An empty Repo is not a validation
// error: it is reported by the operation that needs it.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Tool, validation.Required, validation.By(notBlank)),
		validation.Field(&c.Remote, validation.Required),
		validation.Field(&c.Hosts, validation.Required, validation.Each(validation.Required)),
	)
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.ErrRequired
	}
	return nil
}
