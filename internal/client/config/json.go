package config

import (
	"encoding/json"
	"os"

	"github.com/medesi/portal/internal/flagx"
	"github.com/medesi/portal/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields let a
// partial file override only what it mentions.
type JsonConfig struct {
	BaseURL            *string         `json:"base_url"`
	DatabasePath       *string         `json:"database_path"`
	LogLevel           *string         `json:"log_level"`
	SplashDelay        *timex.Duration `json:"splash_delay"`
	ResetRedirectDelay *timex.Duration `json:"reset_redirect_delay"`
}

// parseJson overlays cfg with the file named by flagx.ConfigPath.
// It panics on read or decode errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != nil {
		cfg.BaseURL = *jc.BaseURL
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.SplashDelay != nil {
		cfg.SplashDelay = jc.SplashDelay.Duration
	}
	if jc.ResetRedirectDelay != nil {
		cfg.ResetRedirectDelay = jc.ResetRedirectDelay.Duration
	}
}
