package config

import "time"

// Config holds runtime settings for the patient CLI.
//
// SplashDelay is how long the launcher screen stays up before the app-entry
// gate routes the user; ResetRedirectDelay is the pause between a successful
// password-reset request and the return to the login prompt.
type Config struct {
	BaseURL            string
	DatabasePath       string
	LogLevel           string
	SplashDelay        time.Duration
	ResetRedirectDelay time.Duration
}

// LoadDefaults populates c with development defaults pointing at a local
// sandbox server.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.DatabasePath = "user_prefs.db"
	c.LogLevel = "warn"
	c.SplashDelay = 1 * time.Second
	c.ResetRedirectDelay = 2 * time.Second
}

// LoadConfig applies defaults, then the JSON file, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
