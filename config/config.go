package config

import (
	"flag"
	"time"
)

// Config holds the runtime settings shared by the CLI subcommands.
type Config struct {
	ServerAddress string
	DataDir       string
	LogLevel      string
	SessionTTL    time.Duration
}

// ParseFlags parses the given arguments into a Config.
func ParseFlags(name string, args []string) *Config {
	config := &Config{}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&config.ServerAddress, "a", ":8080", "HTTP server address")
	fs.StringVar(&config.DataDir, "d", "data/badger", "Badger data directory")
	fs.StringVar(&config.LogLevel, "l", "info", "log level")
	fs.DurationVar(&config.SessionTTL, "session-ttl", 24*time.Hour, "session lifetime")
	fs.Parse(args)
	return config
}
