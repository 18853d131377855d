package config

import (
	"flag"
	"os"
	"time"

	"github.com/mlapshin/storefront/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   local database path/DSN (default from Config)
//	-l int      simulated auth latency in milliseconds (default from Config)
//	-o string   base URL of the order API (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "local database path")
	authLatency := fs.Int("l", int(cfg.AuthLatency.Milliseconds()), "simulated auth latency (in milliseconds)")
	fs.StringVar(&cfg.OrderAPIAddr, "o", cfg.OrderAPIAddr, "base URL of the order API")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AuthLatency = time.Duration(*authLatency) * time.Millisecond
}
