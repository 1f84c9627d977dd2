package core

import (
	"io"

	"tcpsock/config"
	"tcpsock/internal/capability"
	"tcpsock/internal/metrics"
	"tcpsock/util"
)

// IO is the local end of a session.  A nil Stdin means there is no
// local input to forward.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
}

// Build constructs the appropriate Mode from the given configuration.
// stats may be nil.
func Build(cfg *config.Config, logger *util.Logger, stats *metrics.Collector, stdio IO) (Mode, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Listen {
		return buildListen(cfg, logger, stats, stdio), nil
	}
	return buildConnect(cfg, logger, stats, stdio), nil
}

// ── mode builders ────────────────────────────────────────────────────

func buildListen(cfg *config.Config, logger *util.Logger, stats *metrics.Collector, stdio IO) Mode {
	greeting := cfg.Message
	if greeting == "" {
		greeting = config.DefaultGreeting
	}

	return &ListenMode{
		Host:       cfg.Host,
		Port:       cfg.Port,
		Count:      cfg.Count,
		Capability: &capability.Greet{Message: greeting},
		Logger:     logger,
		Metrics:    stats,
		Stdin:      stdio.Stdin,
		Stdout:     stdio.Stdout,
	}
}

func buildConnect(cfg *config.Config, logger *util.Logger, stats *metrics.Collector, stdio IO) Mode {
	return &ConnectMode{
		Host:       cfg.Host,
		Port:       cfg.Port,
		Wait:       cfg.Wait,
		SourcePort: cfg.SourcePort,
		Capability: &capability.Relay{Message: cfg.Message},
		Logger:     logger,
		Metrics:    stats,
		Stdin:      stdio.Stdin,
		Stdout:     stdio.Stdout,
	}
}
