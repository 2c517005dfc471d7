package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/authgate/authgate/internal/flagx"
	"github.com/authgate/authgate/internal/timex"
)

// JsonConfig is the intermediate DTO used only for reading JSON
// configuration files. Duration fields accept both string values such as
// "1h" and integer nanoseconds; after unmarshalling, values are copied
// into the runtime Config.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	BcryptCost            int            `json:"bcrypt_cost"`
	LogLevel              string         `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config flags. When neither flag is set, the Config is left
// untouched. An unreadable or invalid file panics: a config file that
// was explicitly requested but cannot be used is a startup failure.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	config.BcryptCost = c.BcryptCost
	config.LogLevel = c.LogLevel
}
