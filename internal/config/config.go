package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultDatabaseURL = "sqlite://blog.db"

type Config struct {
	SecretKey          string        `mapstructure:"SECRET_KEY"`
	DatabaseURL        string        `mapstructure:"DATABASE_URL"`
	Addr               string        `mapstructure:"ADDR"`
	SessionTTL         time.Duration `mapstructure:"SESSION_TTL"`
	DBStatementTimeout time.Duration `mapstructure:"DB_STATEMENT_TIMEOUT"`
	DBDebug            bool          `mapstructure:"DB_DEBUG"`
	RateLimitPerMinute int           `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	SecureCookies      bool          `mapstructure:"SECURE_COOKIES"`
}

// LoadEnv подгружает .env в окружение процесса, если файл есть
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found")
	}
}

// Load читает конфигурацию из окружения. Старые имена переменных (APP_TOKEN, Database_url)
// используются, если новые не заданы.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SECRET_KEY", "")
	v.SetDefault("DATABASE_URL", DefaultDatabaseURL)
	v.SetDefault("ADDR", ":8080")
	v.SetDefault("SESSION_TTL", "72h")
	v.SetDefault("DB_STATEMENT_TIMEOUT", "5s")
	v.SetDefault("DB_DEBUG", false)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 20)
	v.SetDefault("SECURE_COOKIES", false)

	// порядок имен = приоритет
	if err := v.BindEnv("SECRET_KEY", "SECRET_KEY", "APP_TOKEN"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("DATABASE_URL", "DATABASE_URL", "Database_url"); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = DefaultDatabaseURL
	}

	return &cfg, nil
}

// Validate проверяет то, без чего сервер не стартует
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY (or APP_TOKEN) is required")
	}
	if c.Addr == "" {
		return errors.New("ADDR is required")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.RateLimitPerMinute <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}
