package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultServer is where the backend listens in local development.
const DefaultServer = "http://localhost:8000"

// Config is the client's runtime configuration. Flags win over env.
type Config struct {
	Server   string
	Theme    string
	Timeout  time.Duration
	LogFile  string
	LogLevel string // empty: caller picks a default per front end
}

// FromEnv reads NOTES_* variables on top of the defaults.
func FromEnv() (Config, error) {
	cfg := Config{
		Server: DefaultServer,
		Theme:  "classic",
	}
	if v := strings.TrimSpace(os.Getenv("NOTES_SERVER")); v != "" {
		cfg.Server = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv("NOTES_THEME")); v != "" {
		cfg.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("NOTES_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("invalid NOTES_TIMEOUT %q", v)
		}
		cfg.Timeout = d
	}
	cfg.LogFile = strings.TrimSpace(os.Getenv("NOTES_LOG_FILE"))
	if v := strings.TrimSpace(os.Getenv("NOTES_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}

// DevServer configures the development backend.
type DevServer struct {
	Addr     string
	DataFile string // empty keeps everything in memory
	LogLevel string
}

// DevServerFromEnv reads NOTES_DEV_* variables.
func DevServerFromEnv() DevServer {
	cfg := DevServer{Addr: ":8000", LogLevel: "info"}
	if v := strings.TrimSpace(os.Getenv("NOTES_DEV_ADDR")); v != "" {
		cfg.Addr = v
	}
	cfg.DataFile = strings.TrimSpace(os.Getenv("NOTES_DEV_DATA"))
	if v := strings.TrimSpace(os.Getenv("NOTES_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}
