package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadConfigFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, `
db_path = "/tmp/from-file.db"
log_level = "info"
log_json = true
series_days = 14
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{DBPath: "/tmp/from-file.db", LogLevel: "info", LogJSON: true, SeriesDays: 14}, cfg)

	t.Setenv(EnvDBPath, "/tmp/from-env.db")
	t.Setenv(EnvLogJSON, "false")
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", cfg.DBPath)
	assert.False(t, cfg.LogJSON)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	unknown := filepath.Join(dir, "unknown.toml")
	writeFile(t, unknown, `colour = "blue"`)
	_, err := LoadConfig(unknown)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")

	broken := filepath.Join(dir, "broken.toml")
	writeFile(t, broken, `db_path = `)
	_, err = LoadConfig(broken)
	require.Error(t, err)

	for _, days := range []string{"-1", "91"} {
		outOfRange := filepath.Join(dir, "days"+days+".toml")
		writeFile(t, outOfRange, "series_days = "+days+"\n")
		_, err = LoadConfig(outOfRange)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "between 1 and 90")
	}

	t.Setenv(EnvLogJSON, "maybe")
	_, err = LoadConfig("")
	require.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	writeFile(t, envPath, "LIFELOG_LOG_LEVEL=debug\n")
	t.Setenv(EnvLogLevel, "")
	require.NoError(t, os.Unsetenv(EnvLogLevel))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), envPath))
	assert.Equal(t, "debug", os.Getenv(EnvLogLevel))
	t.Cleanup(func() { _ = os.Unsetenv(EnvLogLevel) })
}

func TestResolveConfigPath(t *testing.T) {
	p, err := ResolveConfigPath("/etc/lifelog.toml")
	require.NoError(t, err)
	assert.Equal(t, "/etc/lifelog.toml", p)

	t.Setenv(EnvConfig, "/tmp/env.toml")
	p, err = ResolveConfigPath("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.toml", p)
}

func TestPaths(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("/data", "backups"), BackupDir("/data/lifelog.db"))
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "lifelog.db")
	require.NoError(t, EnsureDBDir(dbPath))
	st, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err)
	assert.True(t, st.IsDir())
}
