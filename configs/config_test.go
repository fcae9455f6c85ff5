package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Uses defaults when nothing is set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "http://localhost:8080/graphql", cfg.API.Endpoint)
		assert.Equal(t, 10*time.Second, cfg.API.Timeout)
		assert.Equal(t, "/tmp/crm_heartbeat_log.txt", cfg.Logs.Heartbeat)
		assert.Equal(t, "AFRICASTKNG", cfg.AfricaTalking.SenderID)
		assert.False(t, cfg.OIDC.Enabled())
	})

	t.Run("Reads overrides from the environment", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "sqlite")
		t.Setenv("SQLITE_PATH", "/var/lib/crm.db")
		t.Setenv("CRM_API_TIMEOUT", "3s")
		t.Setenv("CRM_API_KEY", "secret")
		t.Setenv("OIDC_ISSUER", "https://issuer.example.com")
		t.Setenv("REPORT_LOG", "/var/log/report.txt")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "/var/lib/crm.db", cfg.Database.SQLitePath)
		assert.Equal(t, 3*time.Second, cfg.API.Timeout)
		assert.Equal(t, "secret", cfg.API.Key)
		assert.True(t, cfg.OIDC.Enabled())
		assert.Equal(t, "/var/log/report.txt", cfg.Logs.Report)
	})

	t.Run("Rejects an invalid timeout", func(t *testing.T) {
		t.Setenv("CRM_API_TIMEOUT", "soon")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("Rejects an unknown driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "oracle")

		_, err := Load()
		assert.ErrorContains(t, err, "unsupported DB_DRIVER")
	})
}
