package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specgen/internal/config"
	"specgen/internal/features/versionsync"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0o644))
	return dir
}

func TestDefault(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	assert.Equal(t, "npm", cfg.Runner.Binary)
	assert.Equal(t, versionsync.DefaultComponents(), cfg.Components)
	assert.Equal(t, "specgen", cfg.Process.Name)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("should return defaults without a config file", func(t *testing.T) {
		cfg, err := config.Load(t.TempDir())
		require.NoError(t, err)

		def, err := config.Default()
		require.NoError(t, err)
		assert.Equal(t, def, cfg)
	})

	t.Run("should overlay values from specgen.toml", func(t *testing.T) {
		dir := writeConfig(t, `
[runner]
binary = "pnpm"

[[components]]
name = "server"
dir = "packages/server"
package = "@acme/server"

[process]
cwd = "/srv/specgen"
instances = 2

[process.env]
PORT = "8080"
`)

		cfg, err := config.Load(dir)
		require.NoError(t, err)

		assert.Equal(t, "pnpm", cfg.Runner.Binary)
		assert.Equal(t, []versionsync.Component{{Name: "server", Dir: "packages/server", Package: "@acme/server"}}, cfg.Components)
		assert.Equal(t, "/srv/specgen", cfg.Process.Cwd)
		assert.Equal(t, 2, cfg.Process.Instances)
		assert.Equal(t, "specgen", cfg.Process.Name)
		assert.Equal(t, "500M", cfg.Process.MaxMemoryRestart)
		assert.Equal(t, map[string]string{"PORT": "8080"}, cfg.Process.Env)
	})

	t.Run("should reject unknown keys", func(t *testing.T) {
		dir := writeConfig(t, "[runner]\nbinnary = \"yarn\"\n")

		_, err := config.Load(dir)
		assert.ErrorContains(t, err, "unknown keys")
	})

	t.Run("should reject malformed TOML", func(t *testing.T) {
		dir := writeConfig(t, "[runner\n")

		_, err := config.Load(dir)
		assert.ErrorContains(t, err, "failed to parse")
	})

	t.Run("should reject duplicate components", func(t *testing.T) {
		dir := writeConfig(t, `
[[components]]
name = "server"
dir = "server"
package = "a"

[[components]]
name = "server"
dir = "other"
package = "b"
`)

		_, err := config.Load(dir)
		assert.ErrorContains(t, err, "duplicate component")
	})

	t.Run("should reject incomplete components", func(t *testing.T) {
		dir := writeConfig(t, "[[components]]\nname = \"server\"\n")

		_, err := config.Load(dir)
		assert.ErrorContains(t, err, "name, dir and package are required")
	})
}
