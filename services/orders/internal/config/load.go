package config

import "github.com/compras-io/compras/pkg/config"

type ServiceConfig struct {
	config.Config
}

func Load() ServiceConfig {
	cfg := config.Load()

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	if cfg.ServiceName == "" {
		cfg.ServiceName = "orders"
	}

	return ServiceConfig{Config: cfg}
}
