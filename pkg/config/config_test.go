package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "environment: development\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port %d, want 8080", cfg.Server.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level %q, want info", cfg.Logging.Level)
	}
	if cfg.Store.DataFile != "market_data.json" {
		t.Errorf("data file %q", cfg.Store.DataFile)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("token ttl %v", cfg.Auth.TokenTTL)
	}
	if cfg.Predictor.MinSamples != 3 || cfg.Predictor.RecentWindow != 5 {
		t.Errorf("predictor defaults: %+v", cfg.Predictor)
	}
	if cfg.Predictor.TestFraction != 0.2 || cfg.Predictor.SplitSeed != 42 {
		t.Errorf("predictor split defaults: %+v", cfg.Predictor)
	}
}

func TestLoadRejectsMissingEnvironment(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")

	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "environment") {
		t.Fatalf("expected environment error, got %v", err)
	}
}

func TestLoadRejectsSecretlessProduction(t *testing.T) {
	path := writeConfig(t, "environment: production\n")

	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "jwt_secret") {
		t.Fatalf("expected jwt_secret error, got %v", err)
	}
}

func TestLoadRejectsBadTestFraction(t *testing.T) {
	path := writeConfig(t, "environment: development\npredictor:\n  test_fraction: 1.5\n")

	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "test_fraction") {
		t.Fatalf("expected test_fraction error, got %v", err)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: development\n")
	t.Setenv("FARMPULSE_JWT_SECRET", "from-env")
	t.Setenv("FARMPULSE_DATA_FILE", "/tmp/records.json")

	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("jwt secret %q", cfg.Auth.JWTSecret)
	}
	if cfg.Store.DataFile != "/tmp/records.json" {
		t.Errorf("data file %q", cfg.Store.DataFile)
	}
}
