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

const minimalConfig = `
server:
  port: 9090
database:
  user: readcycle
  name: readcycle
session:
  secret: test-secret
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
	assert.Equal(t, "readCycle_userSession", cfg.Session.CookieName)
	assert.Equal(t, time.Hour, cfg.Session.TTL.Std())
	assert.Equal(t, "postgres://readcycle:@localhost:5432/readcycle?sslmode=disable", cfg.Database.DSN())
}

func TestLoadDurationFromYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`  ttl: 45m
`))
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, cfg.Session.TTL.Std())

	_, err = Load(writeConfig(t, minimalConfig+`  ttl: soon
`))
	require.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL.Std())
	assert.True(t, cfg.Log.Pretty)
}

func TestLoadMissingSecret(t *testing.T) {
	_, err := Load(writeConfig(t, `
database:
  user: readcycle
  name: readcycle
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session secret")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
