package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.False(t, cfg.Database.Configured())
	assert.Equal(t, 100, cfg.Fallback.Capacity)
	assert.Equal(t, int64(5*1024*1024), cfg.Storage.MaxUploadBytes)
	assert.Equal(t, "product-images", cfg.Storage.Bucket)
	assert.Equal(t, 10*time.Second, cfg.Webhook.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Auth.CredentialsFile)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
}

func TestLoad_WriteTimeoutOutlastsUpstreams(t *testing.T) {
	t.Setenv("SERVER_WRITE_TIMEOUT", "10s")
	t.Setenv("STORAGE_TIMEOUT", "30s")
	t.Setenv("WEBHOOK_TIMEOUT", "10s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Greater(t, cfg.Server.WriteTimeout, cfg.Storage.Timeout)
	assert.Greater(t, cfg.Server.WriteTimeout, cfg.Webhook.Timeout)
	assert.Equal(t, 35*time.Second, cfg.Server.WriteTimeout)
}

func TestLoad_KeepsLongerWriteTimeout(t *testing.T) {
	t.Setenv("SERVER_WRITE_TIMEOUT", "2m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.Server.WriteTimeout)
}

func TestLoad_NormalizesDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", " MySQL ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Database.Driver)
}

func TestNormalizeDriver(t *testing.T) {
	assert.Equal(t, "postgres", NormalizeDriver(""))
	assert.Equal(t, "postgres", NormalizeDriver("  "))
	assert.Equal(t, "postgres", NormalizeDriver("Postgres"))
	assert.Equal(t, "sqlite3", NormalizeDriver("sqlite3"))
}

func TestDefaultCredentials_Embedded(t *testing.T) {
	assert.Contains(t, string(DefaultCredentials), "credentials:")
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.example.supabase.co")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("WEBHOOK_URL", "https://hooks.example.com/whatsapp")
	t.Setenv("ORDERS_CAPACITY", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Database.Configured())
	assert.Equal(t, "https://hooks.example.com/whatsapp", cfg.Webhook.URL)
	assert.Equal(t, 25, cfg.Fallback.Capacity)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("WEBHOOK_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseConfig_Configured(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		want bool
	}{
		{"empty", DatabaseConfig{}, false},
		{"missing password", DatabaseConfig{Host: "db.example.com"}, false},
		{"placeholder host", DatabaseConfig{Host: "placeholder.supabase.co", Password: "x"}, false},
		{"placeholder password", DatabaseConfig{Host: "db.example.com", Password: "your-placeholder-key"}, false},
		{"complete", DatabaseConfig{Host: "db.example.com", Password: "x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Configured())
		})
	}
}

func TestStorageConfig_Configured(t *testing.T) {
	assert.False(t, StorageConfig{}.Configured())
	assert.False(t, StorageConfig{URL: "https://placeholder.supabase.co", ServiceRoleKey: "k"}.Configured())
	assert.True(t, StorageConfig{URL: "https://abc.supabase.co", ServiceRoleKey: "k"}.Configured())
}
