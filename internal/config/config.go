// Package config loads the server configuration from environment variables.
//
// Every setting has a default, so `go run ./cmd/server` works with an empty
// environment. Override what you need:
//
//	PORT=9000 DB_PATH=/var/lib/articles/prod.db LOG_LEVEL=debug ./server
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port     int    `env:"PORT"      envDefault:"8080"`
	DBPath   string `env:"DB_PATH"   envDefault:"data/articles.db"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// JWTSecret signs write-route tokens. Empty disables authentication:
	// the server still starts, but every write route is open.
	JWTSecret string `env:"JWT_SECRET"`

	// AdminPasswordHash is a bcrypt hash checked by POST /auth/login.
	// Generate one with: go run ./cmd/articlesctl hash-password
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// CacheSize is how many articles GET /articles/{id} keeps in memory.
	// 0 disables the cache.
	CacheSize int           `env:"CACHE_SIZE" envDefault:"256"`
	CacheTTL  time.Duration `env:"CACHE_TTL"  envDefault:"1m"`

	// Login attempts per client IP: one token every LOGIN_RATE_INTERVAL,
	// bursting up to LOGIN_RATE_BURST.
	LoginRateInterval time.Duration `env:"LOGIN_RATE_INTERVAL" envDefault:"2s"`
	LoginRateBurst    int           `env:"LOGIN_RATE_BURST"    envDefault:"5"`

	// CORSAllowedOrigins enables CORS for the listed origins,
	// e.g. CORS_ALLOWED_ORIGINS=https://blog.example.com,http://localhost:5173
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// TrustProxyHeaders takes the client IP from X-Forwarded-For / X-Real-IP.
	// Only set it behind a proxy that overwrites those headers; otherwise
	// clients pick their own IP and walk around the login rate limit.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
}

// Parse reads the configuration from the process environment.
func Parse() (*Config, error) {
	return parse(env.Options{})
}

// ParseFrom reads the configuration from the given map instead of the
// process environment, for tests and articlesctl.
func ParseFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (*Config, error) {
	conf, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}

	if conf.Port <= 0 || conf.Port > 65535 {
		return nil, fmt.Errorf("config: invalid PORT %d", conf.Port)
	}

	if conf.CacheSize < 0 {
		return nil, fmt.Errorf("config: invalid CACHE_SIZE %d", conf.CacheSize)
	}

	if conf.LoginRateBurst < 1 || conf.LoginRateInterval <= 0 {
		return nil, fmt.Errorf("config: LOGIN_RATE_BURST must be >= 1 and LOGIN_RATE_INTERVAL > 0")
	}

	if _, err := conf.SlogLevel(); err != nil {
		return nil, err
	}

	return &conf, nil
}

// AuthEnabled reports whether write routes require a token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// SlogLevel converts LOG_LEVEL ("debug", "info", "warn", "error") to a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
