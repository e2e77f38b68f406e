package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DBDriver string // postgres / sqlite / memory

	DatabaseURL      string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int
	PostgresSSLMode  string
	SQLitePath       string

	JWTSecret string // JWT署名シークレット（発行は外部、ここでは検証のみ）

	GoEnv    string // dev/prod
	LogLevel string

	KafkaBrokers []string // 空ならイベントはログに出すだけ
	KafkaTopic   string

	RedisAddr      string // 空ならレポートをキャッシュしない
	ReportCacheTTL time.Duration

	ReportLocation    *time.Location // 売上バケットの暦
	LowStockThreshold int64
	Currency          currency.Unit

	SeedDefaults bool // ステータスが空なら既定値を投入する

	// 起動時に用意する管理者（ID が空なら作らない）
	BootstrapAdminID    string
	BootstrapAdminName  string
	BootstrapAdminEmail string
}

// Loadは環境変数（.envがあればそれも）から設定を読む。
func Load() (Config, error) {
	_ = godotenv.Load()

	pgPort, err := envInt("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	lowStock, err := envInt("LOW_STOCK_THRESHOLD", 10)
	if err != nil {
		return Config{}, err
	}
	ttl, err := time.ParseDuration(envDefault("REPORT_CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("REPORT_CACHE_TTL must be duration: %w", err)
	}
	loc, err := time.LoadLocation(envDefault("REPORT_TIMEZONE", "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("REPORT_TIMEZONE is invalid: %w", err)
	}
	cur, err := currency.ParseISO(envDefault("CURRENCY", "EGP"))
	if err != nil {
		return Config{}, fmt.Errorf("CURRENCY is invalid: %w", err)
	}
	seed, err := strconv.ParseBool(envDefault("SEED_DEFAULTS", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("SEED_DEFAULTS must be bool: %w", err)
	}

	cfg := Config{
		Port: envDefault("PORT", "8080"),

		DBDriver: strings.ToLower(envDefault("DB_DRIVER", DriverPostgres)),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     envDefault("POSTGRES_USER", "postgres"),
		PostgresPassword: envDefault("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       envDefault("POSTGRES_DB", "backoffice"),
		PostgresHost:     envDefault("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  envDefault("POSTGRES_SSLMODE", "disable"),
		SQLitePath:       envDefault("SQLITE_PATH", "backoffice.db"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GoEnv:    envDefault("GO_ENV", "dev"),
		LogLevel: envDefault("LOG_LEVEL", "info"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   envDefault("KAFKA_TOPIC", "backoffice.ledger"),

		RedisAddr:      os.Getenv("REDIS_ADDR"),
		ReportCacheTTL: ttl,

		ReportLocation:    loc,
		LowStockThreshold: int64(lowStock),
		Currency:          cur,

		SeedDefaults: seed,

		BootstrapAdminID:    os.Getenv("BOOTSTRAP_ADMIN_ID"),
		BootstrapAdminName:  envDefault("BOOTSTRAP_ADMIN_NAME", "admin"),
		BootstrapAdminEmail: os.Getenv("BOOTSTRAP_ADMIN_EMAIL"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return Config{}, fmt.Errorf("DB_DRIVER must be one of postgres, sqlite, memory: %q", cfg.DBDriver)
	}
	if cfg.LowStockThreshold < 0 {
		return Config{}, fmt.Errorf("LOW_STOCK_THRESHOLD must be >= 0")
	}

	return cfg, nil
}

// Addr は ":8080" 形式の待ち受けアドレス。
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
