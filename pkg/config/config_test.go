package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Database.Path != DefaultDBPath {
		t.Errorf("Database.Path = %q, expected %q", cfg.Database.Path, DefaultDBPath)
	}
	if cfg.Server.ListenAddr != DefaultListenAddr {
		t.Errorf("Server.ListenAddr = %q, expected %q", cfg.Server.ListenAddr, DefaultListenAddr)
	}
	if cfg.Debug {
		t.Error("Debug = true, expected false")
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("FINLEDGER_DB_PATH", "/tmp/custom.db")
	t.Setenv("FINLEDGER_LISTEN_ADDR", ":9090")
	t.Setenv("FINLEDGER_DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Database.Path != "/tmp/custom.db" {
		t.Errorf("Database.Path = %q, expected /tmp/custom.db", cfg.Database.Path)
	}
	if cfg.Server.ListenAddr != ":9090" {
		t.Errorf("Server.ListenAddr = %q, expected :9090", cfg.Server.ListenAddr)
	}
	if !cfg.Debug {
		t.Error("Debug = false, expected true")
	}
}

func TestLoadFromYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "finledger.yaml")
	yaml := `
database:
  path: /data/ledger.db
server:
  listen_addr: ":7070"
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FINLEDGER_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Database.Path != "/data/ledger.db" {
		t.Errorf("Database.Path = %q, expected /data/ledger.db", cfg.Database.Path)
	}
	if cfg.Server.ListenAddr != ":7070" {
		t.Errorf("Server.ListenAddr = %q, expected :7070", cfg.Server.ListenAddr)
	}
}

// Environment variables win over the YAML file.
func TestEnvOverridesYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "finledger.yaml")
	if err := os.WriteFile(path, []byte("database:\n  path: /data/ledger.db\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FINLEDGER_CONFIG", path)
	t.Setenv("FINLEDGER_DB_PATH", "/env/wins.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Database.Path != "/env/wins.db" {
		t.Errorf("Database.Path = %q, expected /env/wins.db", cfg.Database.Path)
	}
}

func TestLoadMissingYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("FINLEDGER_CONFIG", "/nonexistent/finledger.yaml")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for missing config file")
	}
}

// clearEnv blanks all FINLEDGER_* variables for the test, restoring them
// afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"FINLEDGER_CONFIG", "FINLEDGER_DB_PATH", "FINLEDGER_LISTEN_ADDR", "FINLEDGER_DEBUG"} {
		t.Setenv(key, "")
	}
}
