package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port             string `envconfig:"PORT" default:"8080"`
	AuthServiceAddr  string `envconfig:"AUTH_SERVICE_ADDR" default:"localhost:3001"`
	OrderServiceAddr string `envconfig:"ORDER_SERVICE_ADDR" default:"localhost:3000"`
	CookieSecret     string `envconfig:"COOKIE_SECRET" default:"dev-only-secret"`
	SecureCookies    bool   `envconfig:"SECURE_COOKIES" default:"false"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
