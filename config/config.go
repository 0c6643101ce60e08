// Package config loads application configuration from the environment, with
// optional .env file support for local development.
package config

import (
	"log/slog"
	"regexp"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type DB struct {
	Url string `envconfig:"URL"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET_KEY" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type Redis struct {
	// URL enables the Redis rate cache when set; empty keeps the in-memory cache.
	URL string `envconfig:"URL"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Exchange struct {
	ApiKey      string        `envconfig:"API_KEY"`
	ApiUrl      string        `envconfig:"API_URL" default:"http://data.fixer.io/api"`
	CacheTTL    time.Duration `envconfig:"CACHE_TTL" default:"1h"`
	SymbolsTTL  time.Duration `envconfig:"SYMBOLS_TTL" default:"24h"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"5s"`
	// EnableFallback substitutes static approximate rates when the live
	// source fails; transfers proceed flagged as fallback_mode.
	EnableFallback bool   `envconfig:"ENABLE_FALLBACK" default:"true"`
	CachePrefix    string `envconfig:"CACHE_PREFIX" default:"fx:rates:"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"transfeo"`
}

type AppConfig struct {
	Env       string    `envconfig:"APP_ENV" default:"development"`
	Host      string    `envconfig:"APP_HOST" default:"localhost"`
	Port      int       `envconfig:"APP_PORT" default:"3000"`
	DB        DB        `envconfig:"DATABASE"`
	Jwt       Jwt       `envconfig:"JWT"`
	Exchange  Exchange  `envconfig:"EXCHANGE_RATE"`
	Redis     Redis     `envconfig:"REDIS"`
	RateLimit RateLimit `envconfig:"RATE_LIMIT"`
	Log       Log       `envconfig:"LOG"`
}

func maskApiKey(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}

func maskApiKeyInUrl(url string) string {
	qre := regexp.MustCompile(`([?&]access_key=)[^&]+`)
	return qre.ReplaceAllString(url, `${1}[MASKED]`)
}

// Load reads configuration from the environment, preferring variables from an
// optional .env file when one exists.
func Load(logger *slog.Logger, envFilePath ...string) (*AppConfig, error) {
	var err error
	if len(envFilePath) > 0 && envFilePath[0] != "" {
		err = godotenv.Load(envFilePath[0])
	} else {
		err = godotenv.Load()
	}

	if err != nil {
		logger.Warn("No .env file found or specified, using system environment variables")
	} else {
		logger.Info("Environment variables loaded from .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	logger.Info("App config loaded",
		"env", cfg.Env,
		"db", cfg.DB.Url,
		"jwt_expiry", cfg.Jwt.Expiry,
		"exchange_api_url", maskApiKeyInUrl(cfg.Exchange.ApiUrl),
		"exchange_api_key", maskApiKey(cfg.Exchange.ApiKey),
		"exchange_cache_ttl", cfg.Exchange.CacheTTL,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
	)
	return &cfg, nil
}
