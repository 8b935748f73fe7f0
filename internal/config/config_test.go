package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "adaptive_coach", cfg.Database.Name)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 30, cfg.Engine.DefaultTargetMinutes)
	assert.Equal(t, 30, cfg.Engine.WindowDays)
	assert.Equal(t, 20, cfg.Engine.HistoryLimit)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  address: ":9090"
jwt:
  secret: "s3cret"
  expiration: "90m"
log:
  level: debug
  json: true
engine:
  window_days: 14
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 90*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, 14, cfg.Engine.WindowDays)
	assert.Equal(t, 30, cfg.Engine.DefaultTargetMinutes)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("ENGINE_HISTORY_LIMIT", "5")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Engine.HistoryLimit)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}

func TestConfig_Validate(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, cfg.Validate(), "missing jwt secret")

	cfg.JWT.Secret = "x"
	assert.NoError(t, cfg.Validate())

	cfg.Engine.WindowDays = 0
	assert.Error(t, cfg.Validate())
}
