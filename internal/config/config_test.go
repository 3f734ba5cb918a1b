package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: scanmenu\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DefaultRetention, cfg.Tracking.Retention)
	assert.Equal(t, 17520*time.Hour, cfg.Tracking.Retention)
	assert.Equal(t, "@every 1h", cfg.Tracking.PurgeSchedule)
	assert.Equal(t, 1000, cfg.Tracking.PurgeBatch)
	assert.Equal(t, 2*time.Second, cfg.Tracking.RecordTimeout)
	assert.Equal(t, 5, cfg.Tracking.MaxSlugTries)
	assert.Equal(t, time.Hour, cfg.Storage.UploadExpiry)
	assert.Equal(t, 1000, cfg.Cache.LocalSize)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
tracking:
  ip_salt: from-file
  retention: 720h
  record_timeout: 500ms
rate_limit:
  enabled: true
  requests_per_minute: 30
  skip_paths: ["/health"]
`)
	t.Setenv("TRACKING_IP_SALT", "from-env")
	t.Setenv("AUTH_SECRET", "env-secret")
	t.Setenv("SERVER_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Tracking.IPSalt)
	assert.Equal(t, "env-secret", cfg.Auth.Secret)
	assert.Equal(t, 720*time.Hour, cfg.Tracking.Retention)
	assert.Equal(t, 500*time.Millisecond, cfg.Tracking.RecordTimeout)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, int64(30), cfg.RateLimit.Requests)
	assert.Equal(t, []string{"/health"}, cfg.RateLimit.SkipPaths)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
