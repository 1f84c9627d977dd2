package config

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags, config file parsing, and environment variable
// loading.

const (
	// DefaultPort is the port the demo server listens on.
	DefaultPort = 8080

	// DefaultCount is how many connections the demo server serves
	// before it stops listening.
	DefaultCount = 1

	// DefaultGreeting is sent to every accepted client when no message
	// is configured.
	DefaultGreeting = "Hello, client!"

	// EnvPrefix prefixes every supported environment variable.
	EnvPrefix = "TCPSOCK_"
)
