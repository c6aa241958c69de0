package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyDir returns a config directory with no YAML files, so only defaults
// and environment apply.
func emptyDir(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load(emptyDir(t), "")
	require.NoError(t, err)

	assert.Equal(t, "pencil-api", cfg.App.Name)
	assert.Equal(t, "dev", cfg.App.Version)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, DefaultBcryptCost, cfg.Credentials.BcryptCost)

	require.NoError(t, cfg.Validate())
}

func TestLoad_StorageDefaults(t *testing.T) {
	cfg, err := Load(emptyDir(t), "")
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Storage.DataDir)
	assert.Equal(t, "hitokoto.json", cfg.Storage.QuotesFile)
	assert.Equal(t, "user.json", cfg.Storage.UsersFile)
	assert.Equal(t, "collection.json", cfg.Storage.CollectionsFile)
	assert.Equal(t, "credentials.json", cfg.Storage.CredentialsFile)
	assert.Zero(t, cfg.Storage.RandomSeed)
}

func TestLoad_UpstreamDefaults(t *testing.T) {
	cfg, err := Load(emptyDir(t), "")
	require.NoError(t, err)

	assert.Equal(t, "https://v1.hitokoto.cn", cfg.Upstream.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 3, cfg.Upstream.Retry.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.Upstream.Retry.InitialInterval)
	assert.InDelta(t, 2.0, cfg.Upstream.Retry.Multiplier, 0)
	assert.Equal(t, 5, cfg.Upstream.Breaker.MaxFailures)
	assert.Equal(t, 30*time.Second, cfg.Upstream.Breaker.CoolDown)
}

func TestLoad_DurationParsing(t *testing.T) {
	cfg, err := Load(emptyDir(t), "")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("APP_SERVER__PORT", "9090")
	t.Setenv("APP_LOG__LEVEL", "warn")
	t.Setenv("APP_STORAGE__DATA_DIR", "/var/lib/pencil")
	t.Setenv("APP_STORAGE__RANDOM_SEED", "7")
	t.Setenv("APP_LOG__FILE__MAX_SIZE", "5")
	t.Setenv("APP_TELEMETRY__ENABLED", "true")

	cfg, err := Load(emptyDir(t), "")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/var/lib/pencil", cfg.Storage.DataDir)
	assert.Equal(t, uint64(7), cfg.Storage.RandomSeed)
	assert.Equal(t, 5, cfg.Log.File.MaxSizeMB)
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestLoad_FilePrecedence(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte(`
app:
  environment: dev
storage:
  data_dir: /srv/base
  quotes_file: quotes.json
`), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "prod.yaml"), []byte(`
app:
  environment: prod
storage:
  data_dir: /srv/prod
`), 0o644))

	t.Run("base only", func(t *testing.T) {
		cfg, err := Load(dir, "")
		require.NoError(t, err)

		assert.Equal(t, "dev", cfg.App.Environment)
		assert.Equal(t, "/srv/base", cfg.Storage.DataDir)
		assert.Equal(t, "quotes.json", cfg.Storage.QuotesFile)
	})

	t.Run("profile over base", func(t *testing.T) {
		cfg, err := Load(dir, "prod")
		require.NoError(t, err)

		assert.Equal(t, "prod", cfg.App.Environment)
		assert.Equal(t, "/srv/prod", cfg.Storage.DataDir)
		assert.Equal(t, "quotes.json", cfg.Storage.QuotesFile)
	})

	t.Run("env over profile", func(t *testing.T) {
		t.Setenv("APP_STORAGE__DATA_DIR", "/srv/env")

		cfg, err := Load(dir, "prod")
		require.NoError(t, err)

		assert.Equal(t, "/srv/env", cfg.Storage.DataDir)
	})
}

func TestLoad_NonExistentProfile(t *testing.T) {
	cfg, err := Load(emptyDir(t), "nonexistent")
	require.NoError(t, err)

	assert.Equal(t, "pencil-api", cfg.App.Name)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte("app: [unterminated"), 0o644))

	_, err := Load(dir, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading base config")
}

func TestLoad_LogFileDefaults(t *testing.T) {
	cfg, err := Load(emptyDir(t), "")
	require.NoError(t, err)

	assert.False(t, cfg.Log.File.Enabled)
	assert.Equal(t, "./logs/pencil.log", cfg.Log.File.Path)
	assert.Equal(t, DefaultLogFileMaxSizeMB, cfg.Log.File.MaxSizeMB)
	assert.Equal(t, DefaultLogFileMaxBackups, cfg.Log.File.MaxBackups)
	assert.Equal(t, DefaultLogFileMaxAgeDays, cfg.Log.File.MaxAgeDays)
	assert.True(t, cfg.Log.File.Compress)
}

func TestStorageConfig_CredentialsPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", "credentials.json"),
		StorageConfig{DataDir: "/data", CredentialsFile: "credentials.json"}.CredentialsPath())
	assert.Equal(t, "/etc/pencil/creds.json",
		StorageConfig{DataDir: "/data", CredentialsFile: "/etc/pencil/creds.json"}.CredentialsPath())
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"APP_SERVER__PORT":             "server.port",
		"APP_STORAGE__DATA_DIR":        "storage.data_dir",
		"APP_LOG__FILE__MAX_SIZE":      "log.file.max_size",
		"APP_CREDENTIALS__BCRYPT_COST": "credentials.bcrypt_cost",
	}

	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}
