package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/minion/internal/domain/config"
)

func TestProvider(t *testing.T) {
	t.Run("resolves paths and defaults", func(t *testing.T) {
		dir := t.TempDir()
		v := SetupViper(dir, &cobra.Command{})

		cfg, err := Provider(v)
		require.NoError(t, err)
		assert.Equal(t, dir, cfg.ProjectRoot)
		assert.Equal(t, filepath.Join(dir, ".minion"), cfg.DataDir)
		assert.Equal(t, "table", cfg.Format)
		assert.Equal(t, config.StoreFS, cfg.Store)
		assert.Equal(t, time.Minute, cfg.Timeout)
		require.NotNil(t, cfg.Guild)
		assert.Empty(t, cfg.GuildFile)
	})

	t.Run("json flag forces json format", func(t *testing.T) {
		v := viper.New()
		v.Set("project_root", t.TempDir())
		v.Set("json", true)
		v.Set("format", "yaml")

		cfg, err := Provider(v)
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Format)
	})

	t.Run("environment and local config", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, ".minion"), 0755))
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, ".minion", "config.local.json"),
			[]byte(`{"store": "leveldb"}`),
			0644,
		))
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, ".env"),
			[]byte("MINION_TEST_SENDER=0x70997970C51812dc3A010C7d01b50e0d17dc79C8\n"),
			0644,
		))
		t.Setenv("MINION_FROM", "${MINION_TEST_SENDER}")
		t.Setenv("MINION_FORMAT", "YAML")

		cfg, err := Provider(SetupViper(dir, &cobra.Command{}))
		require.NoError(t, err)
		assert.Equal(t, config.StoreLevelDB, cfg.Store)
		assert.Equal(t, "yaml", cfg.Format)
		assert.Equal(t, "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", cfg.From)
	})

	t.Run("invalid guild.toml fails", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, GuildFileName), []byte("quorum_percentage = 150\n"), 0644))

		_, err := Provider(SetupViper(dir, &cobra.Command{}))
		assert.ErrorContains(t, err, "invalid guild.toml")
	})

	t.Run("flags are bound", func(t *testing.T) {
		cmd := &cobra.Command{}
		cmd.Flags().Bool("non-interactive", false, "")
		require.NoError(t, cmd.Flags().Set("non-interactive", "true"))

		v := SetupViper(t.TempDir(), cmd)
		cfg, err := Provider(v)
		require.NoError(t, err)
		assert.True(t, cfg.NonInteractive)
	})
}

func TestFindProjectRoot(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, GuildFileName), nil, 0644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	root, err := FindProjectRoot()
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
