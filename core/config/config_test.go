package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "https://accounts.zoho.com", cfg.CRM.AccountsURL)
	assert.Equal(t, 200, cfg.CRM.PageSize)
	assert.False(t, cfg.Sync.WipeOnEmpty)
	assert.Equal(t, 4, cfg.Sync.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("CRM_CLIENT_ID", "abc123")
	t.Setenv("SYNC_WIPE_ON_EMPTY", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "abc123", cfg.CRM.ClientID)
	assert.True(t, cfg.Sync.WipeOnEmpty)
}
