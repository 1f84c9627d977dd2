// Package config defines the runtime configuration for tcpsock and
// provides helpers for parsing ports and validating a session.
package config

import (
	"fmt"
	"strconv"
	"time"

	ncerr "tcpsock/internal/errors"
	"tcpsock/util"
)

// Config holds every tuneable for a single tcpsock run.
type Config struct {
	// ── Connection ───────────────────────────────────────────────────
	Listen bool   `yaml:"listen"`
	Host   string `yaml:"host"` // bind host (listen) or IPv4 peer (connect)
	Port   int    `yaml:"port"`

	SourcePort int `yaml:"source_port"` // connect: local port to bind (0 = any)

	// ── Demo behaviour ───────────────────────────────────────────────
	Count   int           `yaml:"count"`   // connections to serve before stopping
	Message string        `yaml:"message"` // greeting (listen) or payload (connect)
	Wait    time.Duration `yaml:"wait"`    // connect: keep retrying a refused peer this long

	// ── Output ───────────────────────────────────────────────────────
	Verbose int  `yaml:"verbose"`
	Stats   bool `yaml:"stats"`

	ConfigFile string `yaml:"-"`
}

// Default returns a Config populated from defaults.go.
func Default() *Config {
	return &Config{
		Port:  DefaultPort,
		Count: DefaultCount,
	}
}

// ParsePort accepts a decimal port in 0-65535.
func ParsePort(spec string) (int, error) {
	port, err := strconv.Atoi(spec)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", spec)
	}
	if port < 0 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range 0-65535", port)
	}
	return port, nil
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return &ncerr.ConfigError{
			Field:   "port",
			Value:   c.Port,
			Message: "out of range 0-65535",
		}
	}

	if c.SourcePort < 0 || c.SourcePort > 65535 {
		return &ncerr.ConfigError{
			Field:   "source-port",
			Value:   c.SourcePort,
			Message: "out of range 0-65535",
		}
	}

	if c.Wait < 0 {
		return &ncerr.ConfigError{
			Field:   "wait",
			Value:   c.Wait,
			Message: "must not be negative",
		}
	}

	if c.Listen {
		if c.Count < 1 {
			return &ncerr.ConfigError{
				Field:   "count",
				Value:   c.Count,
				Message: "must be at least 1",
				Hint:    "use --count 2 to serve two clients in a row",
			}
		}
		return nil
	}

	if c.Host == "" {
		return &ncerr.ConfigError{
			Field:   "host",
			Message: "required in connect mode",
			Hint:    "tcpsock connect 127.0.0.1 8080",
		}
	}
	if _, err := util.ParseIPv4(c.Host); err != nil {
		return &ncerr.ConfigError{
			Field:   "host",
			Value:   c.Host,
			Message: "must be an IPv4 address",
			Hint:    "host names are only resolved when listening",
		}
	}
	if c.Port == 0 {
		return &ncerr.ConfigError{
			Field:   "port",
			Value:   c.Port,
			Message: "connect mode needs a destination port",
		}
	}
	return nil
}
