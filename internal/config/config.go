package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// Exit codes
	ExitSuccess = iota
	ExitGeneralError
	ExitInvalidArguments
	ExitGitOperationFailed
	ExitConfigurationError
)

const (
	// FileName is the config file name without extension.
	FileName = "kr"

	// EnvRepository supplies the default knowledge repository.
	EnvRepository = "KNOWLEDGE_REPO"

	// EnvPrefix prefixes the environment variables of every other setting.
	EnvPrefix = "KR"

	DefaultTool   = "knowledge_repo"
	DefaultRemote = "origin"
)

// DefaultHosts lists the git hosting domains recognized out of the box.
var DefaultHosts = []string{"github.com"}

// Settings is the resolved kr configuration.
type Settings struct {
	Repo       string   `mapstructure:"repo"`
	Tool       string   `mapstructure:"tool"`
	Verbose    bool     `mapstructure:"verbose"`
	Shell      bool     `mapstructure:"shell"`
	MainBranch string   `mapstructure:"main_branch"`
	Remote     string   `mapstructure:"remote"`
	Hosts      []string `mapstructure:"hosts"`
	Browse     bool     `mapstructure:"browse"`
}

// Keys lists the settable keys in display order.
var Keys = []string{"repo", "tool", "verbose", "shell", "main_branch", "remote", "hosts", "browse"}

// New returns a viper instance with kr's defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")

	v.SetDefault("repo", "")
	v.SetDefault("tool", DefaultTool)
	v.SetDefault("verbose", true)
	v.SetDefault("shell", false)
	v.SetDefault("main_branch", "")
	v.SetDefault("remote", DefaultRemote)
	v.SetDefault("hosts", DefaultHosts)
	v.SetDefault("browse", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("repo", EnvRepository, EnvPrefix+"_REPO")

	return v
}

// Load reads kr.yaml from the first search path that has one and decodes
// the merged settings. A missing file is not an error.
func Load(v *viper.Viper, searchPaths ...string) (*Settings, error) {
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var settings Settings
	hook := viper.DecodeHook(mapstructure.StringToSliceHookFunc(","))
	if err := v.Unmarshal(&settings, hook); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	settings.Hosts = cleanHosts(settings.Hosts)
	return &settings, nil
}

func cleanHosts(hosts []string) []string {
	var out []string
	for _, h := range hosts {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}

// SearchPaths returns the directories searched for kr.yaml, most specific first.
func SearchPaths(cwd string) []string {
	return []string{cwd, GlobalConfigDir()}
}

// GlobalConfigDir returns the per-user config directory.
func GlobalConfigDir() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, FileName)
}

// GlobalConfigPath returns the per-user config file.
func GlobalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), FileName+".yaml")
}

// LoadDotEnv loads dir/.env into the process environment without
// overriding variables that are already set. A missing file is ignored.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
