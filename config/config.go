package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"4000"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	DatabaseURL string `envconfig:"DB_CONNECTION_STRING" default:""`
	RedisURL    string `envconfig:"REDIS_URL" default:"localhost:6379"`

	SessionSecret   string `envconfig:"SESSION_SECRET" default:""`
	AdminSetupToken string `envconfig:"ADMIN_SETUP_TOKEN" default:""`
}

// Load reads configuration from the environment. A .env file is honored in
// development only, the same way the deployment platform injects real env vars
// in production.
func Load() (Config, error) {
	if os.Getenv("ENVIRONMENT") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Debug("no .env file loaded")
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Production() bool {
	return c.Environment == "production"
}
