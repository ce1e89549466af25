package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvRepository, "")
	t.Setenv("KR_REPO", "")

	settings, err := Load(New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "", settings.Repo)
	assert.Equal(t, DefaultTool, settings.Tool)
	assert.True(t, settings.Verbose)
	assert.False(t, settings.Shell)
	assert.Equal(t, "", settings.MainBranch)
	assert.Equal(t, DefaultRemote, settings.Remote)
	assert.Equal(t, []string{"github.com"}, settings.Hosts)
}

func TestLoad_ReadsFile(t *testing.T) {
	t.Setenv(EnvRepository, "")
	dir := t.TempDir()
	content := `repo: /data/kr
tool: python -m knowledge_repo
verbose: false
main_branch: trunk
hosts:
  - github.com
  - github.example.com
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kr.yaml"), []byte(content), 0644))

	settings, err := Load(New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "/data/kr", settings.Repo)
	assert.Equal(t, "python -m knowledge_repo", settings.Tool)
	assert.False(t, settings.Verbose)
	assert.Equal(t, "trunk", settings.MainBranch)
	assert.Equal(t, []string{"github.com", "github.example.com"}, settings.Hosts)
}

func TestLoad_KnowledgeRepoEnv(t *testing.T) {
	t.Setenv(EnvRepository, "/env/kr")

	settings, err := Load(New(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "/env/kr", settings.Repo)
}

func TestLoad_PrefixedEnvAndCommaHosts(t *testing.T) {
	t.Setenv(EnvRepository, "")
	t.Setenv("KR_HOSTS", "github.com, ghe.corp.net")
	t.Setenv("KR_SHELL", "true")

	settings, err := Load(New(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"github.com", "ghe.corp.net"}, settings.Hosts)
	assert.True(t, settings.Shell)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kr.yaml"), []byte("repo: [unclosed"), 0644))

	_, err := Load(New(), dir)
	assert.Error(t, err)
}

func TestGlobalConfigDir_UsesXDG(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	assert.Equal(t, filepath.Join(home, "kr"), GlobalConfigDir())
	assert.Equal(t, filepath.Join(home, "kr", "kr.yaml"), GlobalConfigPath())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("KR_DOTENV_PROBE=from-file\n"), 0644))
	t.Setenv("KR_DOTENV_PROBE", "")
	os.Unsetenv("KR_DOTENV_PROBE")

	require.NoError(t, LoadDotEnv(dir))
	assert.Equal(t, "from-file", os.Getenv("KR_DOTENV_PROBE"))
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("KR_DOTENV_KEEP=from-file\n"), 0644))
	t.Setenv("KR_DOTENV_KEEP", "from-shell")

	require.NoError(t, LoadDotEnv(dir))
	assert.Equal(t, "from-shell", os.Getenv("KR_DOTENV_KEEP"))
}

func TestLoadDotEnv_Missing(t *testing.T) {
	assert.NoError(t, LoadDotEnv(t.TempDir()))
}
