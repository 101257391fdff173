package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ConfigYAML(t *testing.T) {
	path := filepath.Join("..", "..", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Database.Host == "" {
		t.Fatalf("expected database.host to be set")
	}
	if cfg.RabbitMQ.Port == 0 {
		t.Fatalf("expected rabbitmq.port to be set")
	}
	if cfg.Dashboard.RefreshIntervalMS != 4000 {
		t.Fatalf("expected dashboard.refresh_interval_ms = 4000, got %d", cfg.Dashboard.RefreshIntervalMS)
	}
}

func TestLoad_EnvOverridesPassword(t *testing.T) {
	os.Setenv("DB_PASSWORD", "override-secret")
	defer os.Unsetenv("DB_PASSWORD")

	path := filepath.Join("..", "..", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Database.Password != "override-secret" {
		t.Fatalf("expected DB_PASSWORD to override config value, got %q", cfg.Database.Password)
	}
}
