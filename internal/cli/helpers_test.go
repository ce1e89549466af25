package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	krexec "github.com/michaeldyrynda/kr/internal/exec"
	"github.com/michaeldyrynda/kr/internal/ui"
)

type recordingOpener struct {
	opened []string
}

func (o *recordingOpener) Open(url string) error {
	o.opened = append(o.opened, url)
	return nil
}

type harness struct {
	deps   *Deps
	mock   *krexec.MockCommander
	opener *recordingOpener
	dir    string
}

// newHarness runs commands in a fresh directory with a fake process runner
// and no ambient configuration.
func newHarness(t *testing.T) *harness {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	t.Setenv("KNOWLEDGE_REPO", "")
	t.Setenv("KR_REPO", "")

	h := &harness{
		mock:   krexec.NewMockCommander(),
		opener: &recordingOpener{},
		dir:    dir,
	}
	h.deps = &Deps{
		Commander: h.mock,
		Opener:    h.opener,
		Confirmer: ui.AutoConfirmer{Answer: true},
		Progress:  ui.PlainProgress{},
		LookPath:  func(file string) (string, error) { return "/usr/local/bin/" + file, nil },
	}
	return h
}

// run executes kr with args and returns what it printed to stdout and stderr.
func (h *harness) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCmd(h.deps)
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func (h *harness) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, err := h.run(t, args...)
	require.NoError(t, err, "stderr: %s", stderr)
	return stdout
}
