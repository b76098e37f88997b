// Package app holds process-level wiring: configuration and logger
// construction shared by the CLI commands.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultRemote    = "origin"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// Config captures runtime options sourced from an optional YAML config file
// layered under environment variables. Environment wins.
type Config struct {
	RepoPath        string `yaml:"repo_path"`
	Remote          string `yaml:"remote"`
	GitBinary       string `yaml:"git_binary"`
	GitHubToken     string `yaml:"-"`
	GitHubBaseURL   string `yaml:"github_base_url"`
	GitHubUploadURL string `yaml:"github_upload_url"`
	LogLevel        string `yaml:"log_level"`
	LogFormat       string `yaml:"log_format"`
	LogDir          string `yaml:"log_dir"`
	DryRun          bool   `yaml:"-"`
}

// ConfigPath returns the default config file location. GITAGENT_CONFIG
// overrides it.
func ConfigPath() string {
	if p := strings.TrimSpace(os.Getenv("GITAGENT_CONFIG")); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".gitagent", "config.yaml")
}

// LoadConfig reads the optional config file, applies environment overrides
// and defaults, and validates the result. The GitHub token is only read from
// the environment, never from the file.
func LoadConfig() (Config, error) {
	cfg := Config{
		Remote:    defaultRemote,
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}

	if data, err := os.ReadFile(ConfigPath()); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", ConfigPath(), err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config file %s: %w", ConfigPath(), err)
	}

	applyEnv(&cfg)

	if cfg.RepoPath == "" {
		cfg.RepoPath = "."
	}
	if cfg.Remote == "" {
		cfg.Remote = defaultRemote
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	if cfg.LogFormat == "" {
		cfg.LogFormat = defaultLogFormat
	}

	if (cfg.GitHubBaseURL == "") != (cfg.GitHubUploadURL == "") {
		return Config{}, fmt.Errorf("github base url and upload url must both be set for GitHub Enterprise")
	}

	supportedLevels := map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "warning": {}, "error": {}}
	if _, ok := supportedLevels[cfg.LogLevel]; !ok {
		return Config{}, fmt.Errorf("unsupported log level %q", cfg.LogLevel)
	}

	supportedFormats := map[string]struct{}{"text": {}, "json": {}}
	if _, ok := supportedFormats[cfg.LogFormat]; !ok {
		return Config{}, fmt.Errorf("unsupported log format %q", cfg.LogFormat)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("GITAGENT_REPO_PATH")); v != "" {
		cfg.RepoPath = v
	}
	if v := strings.TrimSpace(os.Getenv("GITAGENT_REMOTE")); v != "" {
		cfg.Remote = v
	}
	if v := strings.TrimSpace(os.Getenv("GITAGENT_GIT_BINARY")); v != "" {
		cfg.GitBinary = v
	}
	if v := strings.TrimSpace(os.Getenv("GITAGENT_GITHUB_BASE_URL")); v != "" {
		cfg.GitHubBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("GITAGENT_GITHUB_UPLOAD_URL")); v != "" {
		cfg.GitHubUploadURL = v
	}
	if v := strings.TrimSpace(os.Getenv("GITAGENT_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("GITAGENT_LOG_FORMAT")); v != "" {
		cfg.LogFormat = v
	}
	if v := strings.TrimSpace(os.Getenv("GITAGENT_LOG_DIR")); v != "" {
		cfg.LogDir = v
	}

	cfg.GitHubToken = strings.TrimSpace(os.Getenv("GITAGENT_GITHUB_TOKEN"))
	if cfg.GitHubToken == "" {
		cfg.GitHubToken = strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
	}

	if raw := strings.TrimSpace(os.Getenv("GITAGENT_DRY_RUN")); raw != "" {
		if dryRun, err := strconv.ParseBool(raw); err == nil {
			cfg.DryRun = dryRun
		}
	}
}
