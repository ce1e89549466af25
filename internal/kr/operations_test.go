package kr

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaeldyrynda/kr/internal/cmdline"
	krerrors "github.com/michaeldyrynda/kr/internal/errors"
)

func writePost(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// tail returns the arguments after the subcommand.
func tail(argv []string, subcommand string) []string {
	for i, tok := range argv {
		if tok == subcommand {
			return argv[i+1:]
		}
	}
	return nil
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"post.ipynb", "ipynb"},
		{"post.Rmd", "Rmd"},
		{"post.rmd", "Rmd"},
		{"post.md", "md"},
		{"dir.v2/post.MD", "md"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			format, err := FormatOf(tt.filename)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestCreate_UnknownExtensionFailsBeforeDispatch(t *testing.T) {
	tc := newTestClient(t, nil)

	err := tc.Create(context.Background(), CreateOptions{Filename: "notes.txt"})

	require.ErrorIs(t, err, krerrors.ErrUnknownFormat)
	assert.Contains(t, err.Error(), ".txt")
	assert.Equal(t, 0, tc.mock.CallCount())
}

func TestCreate_NoExtension(t *testing.T) {
	tc := newTestClient(t, nil)

	err := tc.Create(context.Background(), CreateOptions{Filename: "notes"})
	require.ErrorIs(t, err, krerrors.ErrUnknownFormat)
	assert.Equal(t, 0, tc.mock.CallCount())
}

func TestCreate_InfersFormat(t *testing.T) {
	tc := newTestClient(t, nil)

	require.NoError(t, tc.Create(context.Background(), CreateOptions{Filename: "test.Rmd"}))
	assert.Equal(t, []string{"Rmd", "test.Rmd"}, tail(tc.mock.LastCall().Argv(), "create"))
}

func TestCreate_TemplateAndFormatOverride(t *testing.T) {
	tc := newTestClient(t, nil)

	err := tc.Create(context.Background(), CreateOptions{
		Filename: "analysis",
		Format:   "ipynb",
		Template: cmdline.String("templates/base.ipynb"),
	})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"--template", "templates/base.ipynb", "ipynb", "analysis"},
		tail(tc.mock.LastCall().Argv(), "create"))
}

func TestCreate_BadFormatOverride(t *testing.T) {
	tc := newTestClient(t, nil)

	err := tc.Create(context.Background(), CreateOptions{Filename: "post.md", Format: "docx"})
	require.ErrorIs(t, err, krerrors.ErrUnknownFormat)
	assert.Contains(t, err.Error(), "docx")
}

func TestAdd_PathThenFilenameEndTheCommand(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "test.Rmd", "---\npath: ex/test\n---\n# body\n")
	tc := newTestClient(t, func(c *Config) { c.Dir = dir })

	err := tc.Add(context.Background(), AddOptions{
		Filename: "test.Rmd",
		Path:     cmdline.String("ex/test"),
	})
	require.NoError(t, err)

	argv := tc.mock.LastCall().Argv()
	assert.Equal(t, []string{"--path", "ex/test", "test.Rmd"}, argv[len(argv)-3:])
	assert.Contains(t, tc.logs.String(), "--path 'ex/test' 'test.Rmd'")
}

func TestAdd_MissingTitleWarnsAndStillDispatches(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "test.Rmd", "---\npath: ex/test\n---\n")
	tc := newTestClient(t, func(c *Config) { c.Dir = dir })

	require.NoError(t, tc.Add(context.Background(), AddOptions{Filename: "test.Rmd"}))

	assert.Contains(t, tc.logs.String(), "no title")
	assert.Equal(t, 1, tc.mock.CallCount())
	assert.Equal(t, []string{"--message", "Adding post", "test.Rmd"}, tail(tc.mock.LastCall().Argv(), "add"))
}

func TestAdd_UnreadablePostStillDispatches(t *testing.T) {
	tc := newTestClient(t, func(c *Config) { c.Dir = t.TempDir() })

	require.NoError(t, tc.Add(context.Background(), AddOptions{Filename: "missing.md"}))

	assert.Contains(t, tc.logs.String(), "could not read post header")
	assert.Equal(t, []string{"--message", "Adding post", "missing.md"}, tail(tc.mock.LastCall().Argv(), "add"))
}

func TestAdd_MessageFromTitle(t *testing.T) {
	dir := t.TempDir()
	post := writePost(t, dir, "post.md", "---\ntitle: Churn in Q3\npath: team/churn\n---\nbody\n")
	tc := newTestClient(t, nil)

	require.NoError(t, tc.Add(context.Background(), AddOptions{Filename: post}))

	assert.Equal(t, []string{"--message", "Adding post: Churn in Q3", post}, tail(tc.mock.LastCall().Argv(), "add"))
	assert.NotContains(t, tc.logs.String(), "WARN")
}

func TestAdd_ExplicitMessageSkipsHeader(t *testing.T) {
	tc := newTestClient(t, nil)

	err := tc.Add(context.Background(), AddOptions{
		Filename: "missing.md",
		Message:  cmdline.String("Fix typo"),
		Update:   cmdline.Switch(true),
		Squash:   cmdline.Switch(false),
		Branch:   cmdline.String("feature"),
		Browse:   cmdline.Switch(true),
	})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"--update", "--branch", "feature", "--message", "Fix typo", "--browse", "missing.md"},
		tail(tc.mock.LastCall().Argv(), "add"))
	assert.NotContains(t, tc.logs.String(), "could not read")
}

func TestAdd_RequiresFilename(t *testing.T) {
	tc := newTestClient(t, nil)

	assert.Error(t, tc.Add(context.Background(), AddOptions{}))
	assert.Equal(t, 0, tc.mock.CallCount())
}

func TestInit_ToolingFlagsUseHyphens(t *testing.T) {
	tc := newTestClient(t, nil)

	err := tc.Init(context.Background(), InitOptions{
		ToolingEmbed: cmdline.Switch(true),
		ToolingRepo:  cmdline.String("/srv/tools"),
	})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"--tooling-embed", "--tooling-repo", "/srv/tools"},
		tail(tc.mock.LastCall().Argv(), "init"))
}

func TestInit_NoFlags(t *testing.T) {
	tc := newTestClient(t, nil)

	require.NoError(t, tc.Init(context.Background(), InitOptions{ToolingEmbed: cmdline.Switch(false)}))
	assert.Empty(t, tail(tc.mock.LastCall().Argv(), "init"))
}

func TestPreview(t *testing.T) {
	tc := newTestClient(t, nil)

	err := tc.Preview(context.Background(), PreviewOptions{
		Path: "team/churn",
		Port: cmdline.Int(7001),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"--port", "7001", "team/churn"}, tail(tc.mock.LastCall().Argv(), "preview"))
}

func TestPreview_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts PreviewOptions
	}{
		{name: "missing path", opts: PreviewOptions{}},
		{name: "port zero", opts: PreviewOptions{Path: "a/b", Port: cmdline.Int(0)}},
		{name: "port not a number", opts: PreviewOptions{Path: "a/b", Port: cmdline.String("http")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestClient(t, nil)
			assert.Error(t, tc.Preview(context.Background(), tt.opts))
			assert.Equal(t, 0, tc.mock.CallCount())
		})
	}
}

func TestDeploy(t *testing.T) {
	tc := newTestClient(t, nil)

	err := tc.Deploy(context.Background(), DeployOptions{
		Port:      cmdline.Int(8080),
		DBURI:     cmdline.String("postgresql://kr@db/kr"),
		Workers:   cmdline.Int(4),
		Engine:    cmdline.String("gunicorn"),
		Supervise: cmdline.Switch(true),
	})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"--port", "8080", "--dburi", "postgresql://kr@db/kr", "--workers", "4", "--engine", "gunicorn", "--supervise"},
		tail(tc.mock.LastCall().Argv(), "deploy"))
}

func TestDeploy_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts DeployOptions
	}{
		{name: "unknown engine", opts: DeployOptions{Engine: cmdline.String("apache")}},
		{name: "port too large", opts: DeployOptions{Port: cmdline.Int(70000)}},
		{name: "zero workers", opts: DeployOptions{Workers: cmdline.Int(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestClient(t, nil)
			assert.Error(t, tc.Deploy(context.Background(), tt.opts))
			assert.Equal(t, 0, tc.mock.CallCount())
		})
	}
}

func TestStatus(t *testing.T) {
	tc := newTestClient(t, nil)

	require.NoError(t, tc.Status(context.Background()))
	assert.Empty(t, tail(tc.mock.LastCall().Argv(), "status"))
}
