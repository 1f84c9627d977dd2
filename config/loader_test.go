package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromEnv_Host(t *testing.T) {
	t.Setenv("TCPSOCK_HOST", "127.0.0.1")
	cfg := &Config{}
	LoadFromEnv(cfg)
	if cfg.Host != "127.0.0.1" {
		t.Errorf("Host = %q, want %q", cfg.Host, "127.0.0.1")
	}
}

func TestLoadFromEnv_Port(t *testing.T) {
	t.Setenv("TCPSOCK_PORT", "9090")
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
}

func TestLoadFromEnv_ZeroPort(t *testing.T) {
	t.Setenv("TCPSOCK_PORT", "0")
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.Port != 0 {
		t.Errorf("Port = %d, want 0 (ephemeral)", cfg.Port)
	}
}

func TestLoadFromEnv_Booleans(t *testing.T) {
	for _, v := range []string{"1", "true", "yes", "TRUE", "Yes"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("TCPSOCK_LISTEN", v)
			t.Setenv("TCPSOCK_STATS", v)
			cfg := &Config{}
			LoadFromEnv(cfg)
			if !cfg.Listen {
				t.Error("Listen should be true")
			}
			if !cfg.Stats {
				t.Error("Stats should be true")
			}
		})
	}
}

func TestLoadFromEnv_DemoFields(t *testing.T) {
	t.Setenv("TCPSOCK_COUNT", "3")
	t.Setenv("TCPSOCK_MESSAGE", "hi there")
	t.Setenv("TCPSOCK_VERBOSE", "2")

	cfg := Default()
	LoadFromEnv(cfg)

	if cfg.Count != 3 {
		t.Errorf("Count = %d", cfg.Count)
	}
	if cfg.Message != "hi there" {
		t.Errorf("Message = %q", cfg.Message)
	}
	if cfg.Verbose != 2 {
		t.Errorf("Verbose = %d", cfg.Verbose)
	}
}

func TestLoadFromEnv_Wait(t *testing.T) {
	t.Setenv("TCPSOCK_WAIT", "1500ms")
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.Wait != 1500*time.Millisecond {
		t.Errorf("Wait = %v", cfg.Wait)
	}

	t.Setenv("TCPSOCK_WAIT", "soon")
	cfg = Default()
	LoadFromEnv(cfg)
	if cfg.Wait != 0 {
		t.Errorf("Wait should ignore %q, got %v", "soon", cfg.Wait)
	}
}

func TestLoadFromEnv_SourcePort(t *testing.T) {
	t.Setenv("TCPSOCK_SOURCE_PORT", "40100")
	cfg := Default()
	LoadFromEnv(cfg)
	if cfg.SourcePort != 40100 {
		t.Errorf("SourcePort = %d", cfg.SourcePort)
	}
}

func TestLoadFromEnv_NoOverrideWhenEmpty(t *testing.T) {
	// Ensure no TCPSOCK_ vars are set.
	os.Clearenv()

	cfg := &Config{Host: "original", Port: 1234}
	LoadFromEnv(cfg)

	if cfg.Host != "original" {
		t.Errorf("Host was overridden: %q", cfg.Host)
	}
	if cfg.Port != 1234 {
		t.Errorf("Port was overridden: %d", cfg.Port)
	}
}

func TestLoadFromEnv_InvalidIntIgnored(t *testing.T) {
	t.Setenv("TCPSOCK_PORT", "not-a-number")
	cfg := &Config{Port: 8080}
	LoadFromEnv(cfg)
	if cfg.Port != 8080 {
		t.Errorf("Port should stay 8080 for invalid input, got %d", cfg.Port)
	}
}

// ── YAML file ────────────────────────────────────────────────────────

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tcpsock.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile_Overlay(t *testing.T) {
	path := writeFile(t, "listen: true\nport: 9000\ncount: 2\n")

	cfg := Default()
	if err := LoadFile(cfg, path); err != nil {
		t.Fatal(err)
	}
	if !cfg.Listen || cfg.Port != 9000 || cfg.Count != 2 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Host != "" {
		t.Errorf("absent key set Host: %q", cfg.Host)
	}
}

func TestLoadFile_Duration(t *testing.T) {
	path := writeFile(t, "wait: 3s\n")
	cfg := Default()
	if err := LoadFile(cfg, path); err != nil {
		t.Fatal(err)
	}
	if cfg.Wait != 3*time.Second {
		t.Errorf("Wait = %v, want 3s", cfg.Wait)
	}
}

func TestLoadFile_Empty(t *testing.T) {
	cfg := Default()
	if err := LoadFile(cfg, writeFile(t, "")); err != nil {
		t.Fatalf("empty file: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d", cfg.Port)
	}
}

func TestLoadFile_UnknownKey(t *testing.T) {
	if err := LoadFile(Default(), writeFile(t, "tunnel: bastion\n")); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if err := LoadFile(Default(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPrecedence_EnvOverFile(t *testing.T) {
	path := writeFile(t, "port: 9000\nmessage: from-file\n")
	t.Setenv("TCPSOCK_PORT", "9100")

	cfg := Default()
	if err := LoadFile(cfg, path); err != nil {
		t.Fatal(err)
	}
	LoadFromEnv(cfg)

	if cfg.Port != 9100 {
		t.Errorf("Port = %d, env should win", cfg.Port)
	}
	if cfg.Message != "from-file" {
		t.Errorf("Message = %q, file should win over default", cfg.Message)
	}
}
