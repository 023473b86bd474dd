package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atinyakov/shortlink-registry/internal/config"
)

var envKeys = []string{
	"SERVER_ADDRESS", "BASE_URL", "ROOT_DOMAIN", "FILE_STORAGE_PATH", "DATABASE_DSN",
	"SQLITE_DSN", "GRPC_PORT", "JWT_SECRET", "TRUSTED_SUBNET", "ANONYMOUS_RATE",
	"REAP_INTERVAL", "LOG_LEVEL", "CERT_CACHE_DIR", "CONFIG", "ENABLE_HTTPS",
}

// clearEnv blanks every variable Parse reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestParse(t *testing.T) {
	t.Run("no env, no config", func(t *testing.T) {
		clearEnv(t)

		opts, err := config.Parse()
		require.NoError(t, err)
		require.Equal(t, "localhost:8080", opts.Port)
		require.Equal(t, "http://localhost:8080", opts.ResultHostname)
		require.Equal(t, "", opts.FilePath)
		require.Equal(t, 3200, opts.GRPCPort)
		require.Equal(t, "30-M", opts.AnonymousRate)
		require.Equal(t, time.Hour, opts.ReapInterval)
		require.False(t, opts.EnableHTTPS)
		require.False(t, opts.EnablePprof)
	})

	t.Run("env overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SERVER_ADDRESS", "127.0.0.1:9999")
		t.Setenv("BASE_URL", "http://example.com")
		t.Setenv("ROOT_DOMAIN", "sho.rt")
		t.Setenv("FILE_STORAGE_PATH", "/tmp/data")
		t.Setenv("GRPC_PORT", "4000")
		t.Setenv("REAP_INTERVAL", "15m")
		t.Setenv("ENABLE_HTTPS", "true")
		t.Setenv("TRUSTED_SUBNET", "192.168.0.0/24")

		opts, err := config.Parse()
		require.NoError(t, err)
		require.Equal(t, "127.0.0.1:9999", opts.Port)
		require.Equal(t, "http://example.com", opts.ResultHostname)
		require.Equal(t, "sho.rt", opts.RootDomain)
		require.Equal(t, "/tmp/data", opts.FilePath)
		require.Equal(t, 4000, opts.GRPCPort)
		require.Equal(t, 15*time.Minute, opts.ReapInterval)
		require.True(t, opts.EnableHTTPS)
		require.Equal(t, "192.168.0.0/24", opts.TrustedSubnet)
	})

	t.Run("bad env value", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GRPC_PORT", "grpc")

		_, err := config.Parse()
		require.Error(t, err)
	})

	t.Run("config file overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BASE_URL", "http://from-env")

		cfgPath := filepath.Join(t.TempDir(), "cfg.json")
		content := `{
			"server_address": "10.0.0.1:8081",
			"database_dsn": "postgres://test",
			"sqlite_dsn": "libsql://db.example.turso.io",
			"reap_interval": "2h",
			"enable_pprof": true,
			"trusted_subnet": "10.10.0.0/16"
		}`
		require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
		t.Setenv("CONFIG", cfgPath)

		opts, err := config.Parse()
		require.NoError(t, err)
		require.Equal(t, "10.0.0.1:8081", opts.Port)
		require.Equal(t, "http://from-env", opts.ResultHostname)
		require.Equal(t, "postgres://test", opts.DatabaseDSN)
		require.Equal(t, "libsql://db.example.turso.io", opts.SQLitePath)
		require.Equal(t, 2*time.Hour, opts.ReapInterval)
		require.True(t, opts.EnablePprof)
		require.False(t, opts.EnableHTTPS)
		require.Equal(t, "10.10.0.0/16", opts.TrustedSubnet)
	})

	t.Run("missing config file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CONFIG", filepath.Join(t.TempDir(), "absent.json"))

		_, err := config.Parse()
		require.Error(t, err)
	})
}
