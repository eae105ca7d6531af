// Package config loads runtime configuration for the patient CLI.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file given with -c/-config or the MEDESI_CONFIG variable.
//  3. Command-line flags.
//
// Flags
//
//	-a string   base URL of the patient portal API
//	-d string   path of the local SQLite preferences database
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations accept strings such as "2s" or integer nanoseconds:
//
//	{
//	  "base_url": "http://127.0.0.1:8080",
//	  "database_path": "user_prefs.db",
//	  "log_level": "info",
//	  "splash_delay": "1s",
//	  "reset_redirect_delay": "2s"
//	}
package config
