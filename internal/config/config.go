package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MinSecretLength is the smallest accepted HMAC-SHA256 signing secret, in bytes.
const MinSecretLength = 32

// Supported password hash algorithms.
const (
	HashBcrypt   = "bcrypt"
	HashArgon2id = "argon2id"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Lockout  LockoutConfig
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

// AuthConfig defines token and password hashing parameters. Immutable after Load.
type AuthConfig struct {
	JWTSecret      string
	TokenTTL       time.Duration
	PasswordHash   string
	BcryptCost     int
	ChallengeRealm string
}

// LockoutConfig bounds repeated failed logins for a username.
type LockoutConfig struct {
	Enabled     bool
	MaxAttempts int
	Window      time.Duration
}

// DefaultLockout is the lockout used when no AUTH_LOCKOUT_* variable is set.
// Lockout is opt-in.
func DefaultLockout() LockoutConfig {
	return LockoutConfig{Enabled: false, MaxAttempts: 5, Window: 15 * time.Minute}
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	ttl, err := getEnvAsDuration("AUTH_TOKEN_TTL", 2*time.Minute)
	if err != nil {
		return nil, err
	}
	lockout := DefaultLockout()
	window, err := getEnvAsDuration("AUTH_LOCKOUT_WINDOW", lockout.Window)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "park-api"),
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
		Auth: AuthConfig{
			JWTSecret:      os.Getenv("AUTH_JWT_SECRET"),
			TokenTTL:       ttl,
			PasswordHash:   strings.ToLower(getEnv("AUTH_PASSWORD_HASH", HashBcrypt)),
			BcryptCost:     getEnvAsInt("AUTH_BCRYPT_COST", 10),
			ChallengeRealm: getEnv("AUTH_CHALLENGE_REALM", "/api/v1/auth"),
		},
		Lockout: LockoutConfig{
			Enabled:     getEnvAsBool("AUTH_LOCKOUT_ENABLED", lockout.Enabled),
			MaxAttempts: getEnvAsInt("AUTH_LOCKOUT_MAX_ATTEMPTS", lockout.MaxAttempts),
			Window:      window,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every setting the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Auth.JWTSecret) < MinSecretLength {
		errs = append(errs, fmt.Errorf("AUTH_JWT_SECRET must be at least %d bytes", MinSecretLength))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("AUTH_TOKEN_TTL must be positive"))
	}
	switch c.Auth.PasswordHash {
	case HashBcrypt, HashArgon2id:
	default:
		errs = append(errs, fmt.Errorf("AUTH_PASSWORD_HASH %q is not supported", c.Auth.PasswordHash))
	}
	if c.Lockout.Enabled && (c.Lockout.MaxAttempts <= 0 || c.Lockout.Window <= 0) {
		errs = append(errs, errors.New("AUTH_LOCKOUT_MAX_ATTEMPTS and AUTH_LOCKOUT_WINDOW must be positive"))
	}
	return errors.Join(errs...)
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

// getEnvAsDuration is strict: a malformed duration is a startup error, not a silent default.
func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
