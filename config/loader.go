package config

// loader.go - configuration loading from a YAML file and environment
// variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables
//   3. YAML config file (--config)
//   4. Defaults   (defaults.go)

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadFile overlays the YAML document at path onto cfg.  Keys absent
// from the file leave cfg untouched; unknown keys are an error.
func LoadFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the TCPSOCK_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv(EnvPrefix + "HOST"); v != "" {
		cfg.Host = v
	}
	if v, ok := envInt(EnvPrefix + "PORT"); ok {
		cfg.Port = v
	}
	if v, ok := envInt(EnvPrefix + "SOURCE_PORT"); ok {
		cfg.SourcePort = v
	}
	if envBool(EnvPrefix + "LISTEN") {
		cfg.Listen = true
	}
	if v, ok := envInt(EnvPrefix + "COUNT"); ok && v > 0 {
		cfg.Count = v
	}
	if v := os.Getenv(EnvPrefix + "MESSAGE"); v != "" {
		cfg.Message = v
	}
	if v, ok := envDuration(EnvPrefix + "WAIT"); ok && v >= 0 {
		cfg.Wait = v
	}

	// Output
	if v, ok := envInt(EnvPrefix + "VERBOSE"); ok && v > 0 {
		cfg.Verbose = v
	}
	if envBool(EnvPrefix + "STATS") {
		cfg.Stats = true
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}
