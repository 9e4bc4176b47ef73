// Package config reads the optional autogit settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultWidth is the panel window width in columns.
	DefaultWidth = 100

	repoConfigName = "autogit.yaml"
	userConfigDir  = "autogit"
	userConfigName = "config.yaml"

	envRemote = "AUTOGIT_REMOTE"
)

// Config holds user settings. Every field is optional in the file.
type Config struct {
	// Git is the git executable to run.
	Git string `yaml:"git"`
	// Remote is the remote pushed to.
	Remote  string `yaml:"remote"`
	Width   int    `yaml:"width"`
	LogFile string `yaml:"log_file"`

	// Path is the file the settings were read from, empty for defaults.
	Path string `yaml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Git:    "git",
		Remote: "origin",
		Width:  DefaultWidth,
	}
}

// Load reads the first config file found, in order: explicit (when set),
// <repoRoot>/.git/autogit.yaml, then the user config directory. A missing
// file yields defaults; an explicit path that does not exist is an error.
// AUTOGIT_REMOTE overrides the remote in every case.
func Load(explicit, repoRoot string) (Config, error) {
	cfg := Default()

	if explicit != "" {
		if err := cfg.readFile(explicit); err != nil {
			return cfg, err
		}
	} else {
		for _, path := range searchPaths(repoRoot) {
			err := cfg.readFile(path)
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			if err != nil {
				return cfg, err
			}
			break
		}
	}

	if remote := strings.TrimSpace(os.Getenv(envRemote)); remote != "" {
		cfg.Remote = remote
	}
	return cfg, nil
}

func searchPaths(repoRoot string) []string {
	var paths []string
	if repoRoot != "" {
		paths = append(paths, filepath.Join(repoRoot, ".git", repoConfigName))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, userConfigDir, userConfigName))
	}
	return paths
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := c.parse(data); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	c.Path = path
	return nil
}

// parse overlays the YAML document on c, then restores defaults for fields
// left empty.
func (c *Config) parse(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}

	def := Default()
	if strings.TrimSpace(c.Git) == "" {
		c.Git = def.Git
	}
	if strings.TrimSpace(c.Remote) == "" {
		c.Remote = def.Remote
	}
	if c.Width <= 0 {
		c.Width = def.Width
	}
	return nil
}
