// Package config handles configuration for the development server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the patient portal development server.
//
// Fields:
//   - EndpointAddr: bind address of the REST endpoint.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: lifetime of issued session tokens.
//   - LogLevel: minimum level of the JSON log.
//   - SeedDemoPatient: register the demo patient on start.
type Config struct {
	EndpointAddr                string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	LogLevel                    string
	SeedDemoPatient             bool
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 30 * time.Minute
	c.LogLevel = "info"
	c.SeedDemoPatient = true
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
