package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedEnv = []string{
	"STOREFRONT_APP_NAME",
	"STOREFRONT_APP_ENV",
	"STOREFRONT_APP_PORT",
	"STOREFRONT_DATABASE_HOST",
	"STOREFRONT_DATABASE_PORT",
	"STOREFRONT_DATABASE_PASSWORD",
	"STOREFRONT_DATABASE_SSLMODE",
	"STOREFRONT_DATABASE_MAX_OPEN_CONNS",
	"STOREFRONT_DATABASE_MAX_IDLE_CONNS",
	"STOREFRONT_JWT_SECRET",
	"STOREFRONT_TELEMETRY_SAMPLING_RATIO",
	"STOREFRONT_TELEMETRY_DB_LOG_FULL_SQL",
	"STOREFRONT_STORAGE_ENABLED",
	"STOREFRONT_STORAGE_ACCESS_KEY",
	"STOREFRONT_STORAGE_SECRET_KEY",
	"STOREFRONT_IMPORT_CHANNEL",
	"STOREFRONT_IMPORT_REFERENCE_CACHE_TTL",
	"STOREFRONT_IMPORT_ARCHIVE_ENABLED",
}

// isolateEnv clears every managed variable and restores the originals when the test ends
func isolateEnv(t *testing.T) {
	t.Helper()
	original := make(map[string]string, len(managedEnv))
	for _, k := range managedEnv {
		original[k] = os.Getenv(k)
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for k, v := range original {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		isolateEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "storefront-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "storefront", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "api", cfg.Import.Channel)
		assert.Equal(t, time.Hour, cfg.Import.ReferenceCacheTTL)
		assert.False(t, cfg.Import.ArchiveEnabled)
		assert.Equal(t, "storefront-backend", cfg.Telemetry.ServiceName)
		assert.Equal(t, "us-east-1", cfg.Storage.Region)
	})

	t.Run("loads values from environment variables with STOREFRONT prefix", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("STOREFRONT_APP_NAME", "test-app")
		os.Setenv("STOREFRONT_APP_PORT", "9000")
		os.Setenv("STOREFRONT_DATABASE_HOST", "testdb.local")
		os.Setenv("STOREFRONT_DATABASE_PORT", "5433")
		os.Setenv("STOREFRONT_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("STOREFRONT_DATABASE_MAX_IDLE_CONNS", "10")
		os.Setenv("STOREFRONT_IMPORT_CHANNEL", "spree")
		os.Setenv("STOREFRONT_IMPORT_REFERENCE_CACHE_TTL", "5m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, "spree", cfg.Import.Channel)
		assert.Equal(t, 5*time.Minute, cfg.Import.ReferenceCacheTTL)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("STOREFRONT_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("STOREFRONT_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("STOREFRONT_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})

	t.Run("rejects sampling ratio above one", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("STOREFRONT_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestLoad_ImportArchive(t *testing.T) {
	t.Run("archive requires storage", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("STOREFRONT_IMPORT_ARCHIVE_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires storage.enabled")
	})

	t.Run("archive requires credentials", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("STOREFRONT_IMPORT_ARCHIVE_ENABLED", "true")
		os.Setenv("STOREFRONT_STORAGE_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access_key")
	})

	t.Run("archive with storage credentials passes", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("STOREFRONT_IMPORT_ARCHIVE_ENABLED", "true")
		os.Setenv("STOREFRONT_STORAGE_ENABLED", "true")
		os.Setenv("STOREFRONT_STORAGE_ACCESS_KEY", "minio")
		os.Setenv("STOREFRONT_STORAGE_SECRET_KEY", "minio-secret")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Import.ArchiveEnabled)
		assert.Equal(t, "order-imports", cfg.Storage.Bucket)
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func() {
		os.Setenv("STOREFRONT_APP_ENV", "production")
		os.Setenv("STOREFRONT_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("STOREFRONT_DATABASE_PASSWORD", "secure-password")
		os.Setenv("STOREFRONT_DATABASE_SSLMODE", "require")
	}

	tests := []struct {
		name    string
		mutate  func()
		wantErr string
	}{
		{
			name:    "short jwt secret",
			mutate:  func() { os.Setenv("STOREFRONT_JWT_SECRET", "short-secret") },
			wantErr: "jwt.secret must be at least 32 characters",
		},
		{
			name:    "missing database password",
			mutate:  func() { os.Unsetenv("STOREFRONT_DATABASE_PASSWORD") },
			wantErr: "database.password is required in production",
		},
		{
			name:    "ssl disabled",
			mutate:  func() { os.Setenv("STOREFRONT_DATABASE_SSLMODE", "disable") },
			wantErr: "database.sslmode cannot be 'disable' in production",
		},
		{
			name:    "full sql logging",
			mutate:  func() { os.Setenv("STOREFRONT_TELEMETRY_DB_LOG_FULL_SQL", "true") },
			wantErr: "db_log_full_sql",
		},
		{
			name:   "valid production config",
			mutate: func() {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			setValidProductionBase()
			tt.mutate()

			cfg, err := Load()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "production", cfg.App.Env)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "shop",
		Password: "p@ss word",
		DBName:   "storefront",
		SSLMode:  "disable",
	}
	assert.Equal(t, "postgres://shop:p%40ss%20word@db:5432/storefront?sslmode=disable", d.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", r.Addr())
}
