package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// PlaceholderAPIKey es el valor de ejemplo del .env; se trata igual que una key ausente.
const PlaceholderAPIKey = "your_openai_api_key_here"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogFile  string `env:"LOG_FILE"`

	LLMAPIKey  string        `env:"OPENAI_API_KEY"`
	LLMModel   string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	LLMBaseURL string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMTimeout time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	UpstreamRateLimit  int           `env:"UPSTREAM_RATE_LIMIT" envDefault:"30"`
	UpstreamRateWindow time.Duration `env:"UPSTREAM_RATE_WINDOW" envDefault:"1m"`

	// Proxies cuyo X-Forwarded-For se acepta como IP del cliente. Vacío: se usa la IP de la conexión.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	ExposeDegraded bool `env:"EXPOSE_DEGRADED" envDefault:"false"`
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MockMode indica si no hay credencial real y los endpoints deben responder con datos mock.
func (c *Config) MockMode() bool {
	key := strings.TrimSpace(c.LLMAPIKey)
	return key == "" || key == PlaceholderAPIKey
}

// IsProduction reporta si APP_ENV pide logs en formato producción.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.AppEnv), "production")
}
