package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string `env:"APP_ENV" env-default:"dev"`

	HTTPAddr string `env:"HTTP_ADDR" env-default:":8085"`

	// Empty DatabaseURL keeps listings, ratings, subscriptions and conversations in memory.
	DatabaseURL   string `env:"DATABASE_URL"`
	DBAutoMigrate bool   `env:"DB_AUTO_MIGRATE" env-default:"true"`

	JWTSecret string `env:"JWT_SECRET"`
	JWTIssuer string `env:"JWT_ISSUER"`

	// RabbitMQ
	RabbitURL      string `env:"RABBIT_URL"`
	RabbitExchange string `env:"RABBIT_EXCHANGE" env-default:"barter.events"`

	// Redis holds favorites, search history and suggestion lists; empty means in memory.
	RedisURL      string        `env:"REDIS_URL"`
	SuggestionTTL time.Duration `env:"SUGGESTION_TTL" env-default:"24h"`

	// Suggestions
	SuggestionDebounce     time.Duration `env:"SUGGESTION_DEBOUNCE" env-default:"500ms"`
	SuggestionDisplayLimit int           `env:"SUGGESTION_DISPLAY_LIMIT" env-default:"3"`

	// Rate Limiting
	RLEnabled bool          `env:"RL_ENABLED" env-default:"true"`
	RLLimit   int           `env:"RL_IP_LIMIT" env-default:"100"`
	RLWindow  time.Duration `env:"RL_IP_WINDOW" env-default:"1m"`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"console"`

	HTTPReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"20s"`
	HTTPIdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	cfg.trim()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) trim() {
	c.AppEnv = strings.TrimSpace(c.AppEnv)
	c.DatabaseURL = strings.TrimSpace(c.DatabaseURL)
	c.RedisURL = strings.TrimSpace(c.RedisURL)
	c.RabbitURL = strings.TrimSpace(c.RabbitURL)
	c.JWTSecret = strings.TrimSpace(c.JWTSecret)
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("missing JWT_SECRET")
	}
	// Rabbit may be empty in dev only
	if c.AppEnv != "dev" && c.RabbitURL == "" {
		return fmt.Errorf("missing RABBIT_URL (required when APP_ENV != dev)")
	}
	if c.SuggestionDisplayLimit <= 0 {
		return fmt.Errorf("SUGGESTION_DISPLAY_LIMIT must be > 0 (got %d)", c.SuggestionDisplayLimit)
	}
	if c.SuggestionDebounce < 0 {
		return fmt.Errorf("SUGGESTION_DEBOUNCE must be >= 0 (got %s)", c.SuggestionDebounce)
	}
	if c.RLEnabled && (c.RLLimit <= 0 || c.RLWindow <= 0) {
		return fmt.Errorf("RL_IP_LIMIT and RL_IP_WINDOW must be > 0 when RL_ENABLED")
	}
	return nil
}

func (c *Config) UsePostgres() bool { return c.DatabaseURL != "" }
func (c *Config) UseRedis() bool    { return c.RedisURL != "" }
