package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("DATABASE_PATH", "./exercise-tracker.db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "*")
	t.Setenv("MAINTENANCE_CRON", "0 3 * * *")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.ServerPort)
	assert.Equal(t, BackendSQLite, cfg.StorageBackend)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{ServerPort: 3000, StorageBackend: BackendSQLite, DatabasePath: "x.db"}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid sqlite", mutate: func(c *Config) {}},
		{name: "mongo without uri", mutate: func(c *Config) { c.StorageBackend = BackendMongo }, wantErr: true},
		{name: "mongo with uri", mutate: func(c *Config) {
			c.StorageBackend = BackendMongo
			c.MongoURI = "mongodb://localhost:27017"
		}},
		{name: "unknown backend", mutate: func(c *Config) { c.StorageBackend = "redis" }, wantErr: true},
		{name: "bad cron", mutate: func(c *Config) { c.MaintenanceCron = "every day" }, wantErr: true},
		{name: "cron disabled", mutate: func(c *Config) { c.MaintenanceCron = "" }},
		{name: "port out of range", mutate: func(c *Config) { c.ServerPort = 70000 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, splitAndTrim(" http://a , ,http://b "))
	assert.Empty(t, splitAndTrim(""))
}
