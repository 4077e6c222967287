package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Postgres struct {
		URL string `env:"DATABASE_URL,required"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Session struct {
		CookieName string        `env:"SESSION_COOKIE" envDefault:"session"`
		TTL        time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	}

	Cache struct {
		// Срок устаревания кэша статистики и справочников
		StatsTTL time.Duration `env:"STATS_CACHE_TTL" envDefault:"5m"`
		DictTTL  time.Duration `env:"DICT_CACHE_TTL" envDefault:"30m"`
	}

	Telegram struct {
		APIID      int    `env:"TELEGRAM_API_ID,required"`
		APIHash    string `env:"TELEGRAM_API_HASH,required"`
		SessionDir string `env:"TELEGRAM_SESSION_DIR" envDefault:"sessions"`
	}

	Retention struct {
		SweepInterval time.Duration `env:"RETENTION_SWEEP_INTERVAL" envDefault:"1h"`
	}
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// Игнорируем ошибку, если .env файл не найден
		// В production окружении переменные могут быть установлены напрямую
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
