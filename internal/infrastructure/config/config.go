package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT, default=8080"`
	Env       string `env:"ENV, default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	JWTSecret string `env:"JWT_SECRET, required"`

	TokenTTL   time.Duration `env:"TOKEN_TTL, default=60m"`
	BcryptCost int           `env:"BCRYPT_COST, default=12"`

	// RequireAuthForResources puts the registry routes behind bearer auth and
	// role checks.
	RequireAuthForResources bool     `env:"REQUIRE_AUTH_FOR_RESOURCES, default=false"`
	CORSAllowOrigins        []string `env:"CORS_ALLOW_ORIGINS, default=*"`

	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Login    LoginConfig
	Payment  PaymentConfig
}

type PostgresConfig struct {
	URL      string `env:"DATABASE_URL, required"`
	MaxConns int32  `env:"DATABASE_MAX_CONNS, default=20"`
}

// MongoConfig is optional; an empty URI disables the audit trail.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=accounts_audit"`
}

// RedisConfig is optional; an empty address disables login throttling.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type LoginConfig struct {
	MaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	LockoutWindow time.Duration `env:"LOGIN_LOCKOUT_WINDOW, default=15m"`
}

type PaymentConfig struct {
	BaseURL   string        `env:"PAYMENT_BASE_URL, default=https://api.razorpay.com/v1"`
	KeyID     string        `env:"PAYMENT_KEY_ID"`
	KeySecret string        `env:"PAYMENT_KEY_SECRET"`
	Currency  string        `env:"PAYMENT_CURRENCY, default=INR"`
	Timeout   time.Duration `env:"PAYMENT_TIMEOUT, default=10s"`
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be blank"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, errors.New("BCRYPT_COST must be between 4 and 31"))
	}
	if c.Login.MaxAttempts <= 0 {
		errs = append(errs, errors.New("LOGIN_MAX_ATTEMPTS must be positive"))
	}
	if (c.Payment.KeyID == "") != (c.Payment.KeySecret == "") {
		errs = append(errs, errors.New("PAYMENT_KEY_ID and PAYMENT_KEY_SECRET must be set together"))
	}
	return errors.Join(errs...)
}
