package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// isolate points the user config directory at an empty temp dir.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv(envRemote, "")
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "git", cfg.Git)
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, DefaultWidth, cfg.Width)
}

func TestLoadRepoConfig(t *testing.T) {
	isolate(t)
	repo := t.TempDir()
	path := filepath.Join(repo, ".git", "autogit.yaml")
	writeFile(t, path, "remote: upstream\nwidth: 80\nlog_file: /tmp/autogit.log\n")

	cfg, err := Load("", repo)
	require.NoError(t, err)
	assert.Equal(t, "upstream", cfg.Remote)
	assert.Equal(t, 80, cfg.Width)
	assert.Equal(t, "/tmp/autogit.log", cfg.LogFile)
	assert.Equal(t, "git", cfg.Git, "unset fields keep defaults")
	assert.Equal(t, path, cfg.Path)
}

func TestRepoConfigWinsOverUserConfig(t *testing.T) {
	isolate(t)
	userDir, err := os.UserConfigDir()
	require.NoError(t, err)
	writeFile(t, filepath.Join(userDir, "autogit", "config.yaml"), "remote: fromuser\n")

	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "fromuser", cfg.Remote)

	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, ".git", "autogit.yaml"), "remote: fromrepo\n")
	cfg, err = Load("", repo)
	require.NoError(t, err)
	assert.Equal(t, "fromrepo", cfg.Remote)
}

func TestLoadExplicit(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "git: /usr/local/bin/git\nwidth: 0\n")

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/git", cfg.Git)
	assert.Equal(t, DefaultWidth, cfg.Width)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalidYAML(t *testing.T) {
	isolate(t)
	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, ".git", "autogit.yaml"), "width: [not a number\n")

	_, err := Load("", repo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestRemoteEnvOverride(t *testing.T) {
	isolate(t)
	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, ".git", "autogit.yaml"), "remote: upstream\n")
	t.Setenv(envRemote, "fork")

	cfg, err := Load("", repo)
	require.NoError(t, err)
	assert.Equal(t, "fork", cfg.Remote)
}
