package config_test

import (
	"testing"
	"time"

	"backoffice/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

// 外から入った値に左右されないよう、読むキーは全部空にしておく
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DB_DRIVER", "DATABASE_URL", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_SSLMODE", "SQLITE_PATH", "JWT_SECRET", "GO_ENV",
		"LOG_LEVEL", "KAFKA_BROKERS", "KAFKA_TOPIC", "REDIS_ADDR", "REPORT_CACHE_TTL", "REPORT_TIMEZONE",
		"LOW_STOCK_THRESHOLD", "CURRENCY", "SEED_DEFAULTS",
		"BOOTSTRAP_ADMIN_ID", "BOOTSTRAP_ADMIN_NAME", "BOOTSTRAP_ADMIN_EMAIL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, config.DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 5432, cfg.PostgresPort)
	assert.Equal(t, 5*time.Minute, cfg.ReportCacheTTL)
	assert.Equal(t, time.UTC, cfg.ReportLocation)
	assert.Equal(t, int64(10), cfg.LowStockThreshold)
	assert.Equal(t, "EGP", cfg.Currency.String())
	assert.True(t, cfg.SeedDefaults)
	assert.Equal(t, "admin", cfg.BootstrapAdminName)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "backoffice.ledger", cfg.KafkaTopic)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", ":9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("REPORT_CACHE_TTL", "30s")
	t.Setenv("LOW_STOCK_THRESHOLD", "3")
	t.Setenv("CURRENCY", "USD")
	t.Setenv("SEED_DEFAULTS", "false")
	t.Setenv("BOOTSTRAP_ADMIN_ID", "admin-1")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, config.DriverSQLite, cfg.DBDriver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Second, cfg.ReportCacheTTL)
	assert.Equal(t, int64(3), cfg.LowStockThreshold)
	assert.Equal(t, currency.USD, cfg.Currency)
	assert.False(t, cfg.SeedDefaults)
	assert.Equal(t, "admin-1", cfg.BootstrapAdminID)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing jwt secret", env: map[string]string{}},
		{name: "unknown driver", env: map[string]string{"JWT_SECRET": "s", "DB_DRIVER": "mysql"}},
		{name: "bad port", env: map[string]string{"JWT_SECRET": "s", "POSTGRES_PORT": "abc"}},
		{name: "bad ttl", env: map[string]string{"JWT_SECRET": "s", "REPORT_CACHE_TTL": "soon"}},
		{name: "bad timezone", env: map[string]string{"JWT_SECRET": "s", "REPORT_TIMEZONE": "Mars/Olympus"}},
		{name: "bad currency", env: map[string]string{"JWT_SECRET": "s", "CURRENCY": "XX"}},
		{name: "bad seed flag", env: map[string]string{"JWT_SECRET": "s", "SEED_DEFAULTS": "maybe"}},
		{name: "negative low stock", env: map[string]string{"JWT_SECRET": "s", "LOW_STOCK_THRESHOLD": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestCSV(t *testing.T) {
	assert.Nil(t, config.CSV(""))
	assert.Equal(t, []string{"a", "b"}, config.CSV(" a ,b, "))
}
