package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("MONGODB__URI", "mongodb://mongo:27017")
	t.Setenv("FLOOD_CONTROL__WINDOW", "30s")
	t.Setenv("RATE_LIMIT__ENABLED", "true")

	conf, file, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Empty(t, file)

	assert.Equal(t, "mongodb://mongo:27017", conf.MongoDB.URI)
	assert.Equal(t, 30*time.Second, conf.FloodControl.Window)
	assert.True(t, conf.RateLimit.Enabled)
	assert.Equal(t, uint32(3000), conf.App.Port)
	assert.Equal(t, "medcard", conf.Redis.KeyPrefix)
	assert.Equal(t, 60, conf.RateLimit.Limit)
}

func TestLoad_YAMLUnderConfDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "conf"), 0o755))
	yaml := []byte("APP:\n  NAME: medcard-test\n  PORT: 8080\nVK:\n  TIMEOUT: 3s\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, "conf", "test.yaml"), yaml, 0o644))
	t.Setenv("APP__PORT", "9090")

	conf, file, err := Load(LoadOptions{RootPath: root, YAMLFile: "test.yaml"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "conf", "test.yaml"), file)
	assert.Equal(t, "medcard-test", conf.App.Name)
	assert.Equal(t, uint32(9090), conf.App.Port)
	assert.Equal(t, 3*time.Second, conf.VK.Timeout)
}

func TestLoad_EnvFileWins(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("AUTH__ISSUER=from-env-file\n"), 0o644))

	conf, file, err := Load(LoadOptions{RootPath: root, EnvFile: ".env", YAMLFile: "missing.yaml"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".env"), file)
	assert.Equal(t, "from-env-file", conf.Auth.Issuer)
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(LoadOptions{RootPath: t.TempDir(), YAMLFile: "nope.yaml"})
	assert.Error(t, err)
}

func TestLoadOptions_BindFlags(t *testing.T) {
	var opts LoadOptions
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.BindFlags(fs)

	require.NoError(t, fs.Parse([]string{"-c", "prod.yaml", "--env", ".env.local"}))
	assert.Equal(t, "prod.yaml", opts.YAMLFile)
	assert.Equal(t, ".env.local", opts.EnvFile)
}
