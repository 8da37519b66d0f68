package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Host != "127.0.0.1" {
		t.Errorf("Expected default db host 127.0.0.1, got %s", cfg.Database.Host)
	}
	if cfg.JWT.AccessTokenExpire != 12*time.Hour {
		t.Errorf("Expected default token expiry 12h, got %s", cfg.JWT.AccessTokenExpire)
	}
	if cfg.JWT.Issuer != "guardpass" {
		t.Errorf("Expected default issuer guardpass, got %s", cfg.JWT.Issuer)
	}
	if cfg.MinIO.Bucket != "guardpass" {
		t.Errorf("Expected default bucket guardpass, got %s", cfg.MinIO.Bucket)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Expected default log format json, got %s", cfg.Log.Format)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090 from env, got %d", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Expected db host from env, got %s", cfg.Database.Host)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("Expected jwt secret from env, got %s", cfg.JWT.Secret)
	}
}
