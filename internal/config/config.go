package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// MinJWTSecretLength is the smallest signing secret accepted at startup.
// 32 characters of a random secret give the 256 bits HS256 expects.
const MinJWTSecretLength = 32

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	JWT      JWTConfig
	Login    LoginConfig
	Notify   NotifyConfig
	Demo     DemoConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// JWTConfig defines token issuance and validation parameters. Issuer,
// audience and secret are fixed configuration, never negotiated per request.
type JWTConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	TTLMinutes int
}

// LoginConfig tunes credential verification and throttling.
type LoginConfig struct {
	BcryptCost         int
	MaxFailedAttempts  int
	LockoutWindowMin   int
	LockoutDurationMin int
}

// NotifyConfig holds stub notification endpoints.
type NotifyConfig struct {
	EmailFrom  string
	WebhookURL string
}

// DemoConfig optionally seeds an ephemeral admin account on startup.
type DemoConfig struct {
	Enabled       bool
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from environment variables, applying defaults
// where possible. JWT settings are validated here so a misconfigured
// deployment fails before it ever serves a request.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "admin-console"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		JWT: JWTConfig{
			Secret:     os.Getenv("JWT_SECRET"),
			Issuer:     getEnv("JWT_ISSUER", "admin-console"),
			Audience:   getEnv("JWT_AUDIENCE", "admin-console-clients"),
			TTLMinutes: getEnvAsInt("JWT_TTL_MINUTES", 60),
		},
		Login: LoginConfig{
			BcryptCost:         getEnvAsInt("AUTH_BCRYPT_COST", 12),
			MaxFailedAttempts:  getEnvAsInt("LOGIN_MAX_FAILED_ATTEMPTS", 5),
			LockoutWindowMin:   getEnvAsInt("LOGIN_LOCKOUT_WINDOW_MINUTES", 15),
			LockoutDurationMin: getEnvAsInt("LOGIN_LOCKOUT_DURATION_MINUTES", 15),
		},
		Notify: NotifyConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
		Demo: DemoConfig{
			Enabled:       getEnvAsBool("DEMO_ENABLED", false),
			AdminEmail:    getEnv("DEMO_ADMIN_EMAIL", "admin@demo.local"),
			AdminPassword: getEnv("DEMO_ADMIN_PASSWORD", ""),
		},
	}

	if err := cfg.JWT.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (j JWTConfig) validate() error {
	if j.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(j.Secret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", MinJWTSecretLength)
	}
	if j.Issuer == "" || j.Audience == "" {
		return fmt.Errorf("JWT_ISSUER and JWT_AUDIENCE are required")
	}
	if j.TTLMinutes <= 0 {
		return fmt.Errorf("JWT_TTL_MINUTES must be positive")
	}
	return nil
}

// TTL returns the access token lifetime.
func (j JWTConfig) TTL() time.Duration {
	return time.Duration(j.TTLMinutes) * time.Minute
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// LockoutWindow returns the sliding window for counting failed logins.
func (l LoginConfig) LockoutWindow() time.Duration {
	return time.Duration(l.LockoutWindowMin) * time.Minute
}

// LockoutDuration returns how long a transient lockout lasts.
func (l LoginConfig) LockoutDuration() time.Duration {
	return time.Duration(l.LockoutDurationMin) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
