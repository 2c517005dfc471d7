// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables, and
// command-line flags.
package config

import "time"

// Config holds runtime settings for the authgate server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - SecretKey: HMAC secret for signing access tokens (HS256). The
//     default exists for development only and must be overridden in any
//     real deployment.
//   - TokenValidityDuration: access token lifetime.
//   - BcryptCost: cost factor for hashing registration secrets.
//   - LogLevel: minimum log level (debug, info, warn, error).
type Config struct {
	EndpointAddr          string
	SecretKey             string
	TokenValidityDuration time.Duration
	BcryptCost            int
	LogLevel              string
}

// LoadDefaults populates Config with development defaults.
// NOTE: The secret key is insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 1 * time.Hour
	c.BcryptCost = 10
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, environment variables, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
