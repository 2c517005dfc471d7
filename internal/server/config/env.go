package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

type envConfig struct {
	EndpointAddr          string        `env:"AUTHGATE_ADDRESS"`
	SecretKey             string        `env:"AUTHGATE_SECRET_KEY"`
	TokenValidityDuration time.Duration `env:"AUTHGATE_TOKEN_VALIDITY"`
	BcryptCost            int           `env:"AUTHGATE_BCRYPT_COST"`
	LogLevel              string        `env:"AUTHGATE_LOG_LEVEL"`
}

// parseEnv overlays values from AUTHGATE_* environment variables onto
// the Config. Unset variables leave the current values in place.
func parseEnv(config *Config) {
	c := envConfig{}
	if err := env.Parse(&c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
