package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server    ServerConfig
	FiatAPI   FiatAPIConfig
	CryptoAPI CryptoAPIConfig
	Cache     CacheConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" env-default:"120s"`
}

type FiatAPIConfig struct {
	BaseURL string        `env:"FIAT_API_BASE_URL" env-default:"https://open.er-api.com/v6/latest"`
	Timeout time.Duration `env:"FIAT_API_TIMEOUT" env-default:"10s"`
}

type CryptoAPIConfig struct {
	BaseURL string        `env:"CRYPTO_API_BASE_URL" env-default:"https://api.coingecko.com/api/v3"`
	Timeout time.Duration `env:"CRYPTO_API_TIMEOUT" env-default:"12s"`
}

type CacheConfig struct {
	TTL           time.Duration `env:"CACHE_TTL" env-default:"15m"`
	CatalogTTL    time.Duration `env:"CACHE_CATALOG_TTL" env-default:"24h"`
	SweepInterval time.Duration `env:"CACHE_SWEEP_INTERVAL" env-default:"10m"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
