package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvDefaults(t *testing.T) {
	cfg, err := Load("1.2.3")
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, "127.0.0.1", cfg.BindAddr)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "migrations", cfg.Database.MigrationsPath)
	assert.Equal(t, "uploads/evidence", cfg.Uploads.Dir)
	assert.Equal(t, 20, cfg.Pagination.DefaultSize)
	assert.Equal(t, 100, cfg.Pagination.MaxSize)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PGHOST", "db.internal")
	t.Setenv("PGPASSWORD", "hunter2")

	cfg, err := Load("dev")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "hunter2", cfg.Database.Password)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("port: \"3000\"\ndatabase:\n  host: pg.example.com\n  max_connections: 50\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("dev")
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "pg.example.com", cfg.Database.Host)
	assert.Equal(t, int32(50), cfg.Database.MaxConnections)
}

func TestLoad_PaginationSanity(t *testing.T) {
	t.Setenv("PAGE_DEFAULT_SIZE", "50")
	t.Setenv("PAGE_MAX_SIZE", "10")

	cfg, err := Load("dev")
	require.NoError(t, err)

	// MaxSize can never be below DefaultSize.
	assert.Equal(t, 50, cfg.Pagination.DefaultSize)
	assert.Equal(t, 50, cfg.Pagination.MaxSize)
}

func TestConnectionString(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "ideahub",
		Password: "secret",
		Database: "ideahub_engine",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=ideahub password=secret dbname=ideahub_engine sslmode=disable",
		db.ConnectionString())
}
