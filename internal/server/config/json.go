package config

import (
	"encoding/json"
	"os"

	"github.com/medesi/portal/internal/flagx"
	"github.com/medesi/portal/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Interval
// fields use timex.Duration, which accepts both "30m" and integer
// nanoseconds. Pointer fields let a partial file override only what it
// mentions.
type JsonConfig struct {
	EndpointAddr                *string         `json:"endpoint_addr"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	LogLevel                    *string         `json:"log_level"`
	SeedDemoPatient             *bool           `json:"seed_demo_patient"`
}

// parseJson loads configuration values from the JSON file named by -c,
// -config or the environment (see flagx.ConfigPath). If no file is named
// nothing is loaded. Read and decode errors panic.
func parseJson(config *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
	if c.SeedDemoPatient != nil {
		config.SeedDemoPatient = *c.SeedDemoPatient
	}
}
