package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App   AppConfig
	Mongo MongoConfig
	Redis RedisConfig
	Auth  AuthConfig
}

type AppConfig struct {
	Port     string `env:"PORT" env-default:"8080"`
	HostName string `env:"HOST_NAME" env-default:"http://localhost:8080/"`
	Env      string `env:"APP_ENV" env-default:"dev"`
}

type MongoConfig struct {
	URI    string `env:"MONGO_URI" env-required:"true"`
	DBName string `env:"DB_NAME" env-default:"social-app"`
}

type RedisConfig struct {
	// Addr is "host:port". Leave empty to run without the feed cache.
	Addr     string        `env:"REDIS_ADDR" env-default:""`
	Password string        `env:"REDIS_PASSWORD" env-default:""`
	DB       int           `env:"REDIS_DB" env-default:"0"`
	FeedTTL  time.Duration `env:"REDIS_FEED_TTL" env-default:"60s"`
}

type AuthConfig struct {
	// SecretKey signs session tokens. Loaded once at startup.
	SecretKey string        `env:"SECRET_KEY" env-required:"true"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"15m"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}
