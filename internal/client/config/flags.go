package config

import (
	"flag"
	"os"
	"strings"

	"github.com/medesi/portal/internal/flagx"
)

// parseFlags overlays cfg with -a, -d and -l. Other arguments are ignored so
// the config file flag can live on the same command line.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-l"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the patient portal API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local preferences database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
}
