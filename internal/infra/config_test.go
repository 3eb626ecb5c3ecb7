package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/app")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port = %q, want 8080", cfg.Port)
	}
	if cfg.GenerationQuota != 1 {
		t.Fatalf("quota = %d, want 1", cfg.GenerationQuota)
	}
	if cfg.ChatModel != "gpt-4" || cfg.ImageModel != "dall-e-3" || cfg.EditModel != "gpt-image-1" {
		t.Fatalf("models = %q/%q/%q", cfg.ChatModel, cfg.ImageModel, cfg.EditModel)
	}
	if cfg.VisionModel != "gpt-4o" {
		t.Fatalf("vision model = %q, want gpt-4o", cfg.VisionModel)
	}
	if cfg.DBMaxConns != 10 || cfg.DBMinConns != 1 {
		t.Fatalf("db conns = %d/%d, want 10/1", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.DBConnMaxLifetime != time.Hour || cfg.DBConnMaxIdleTime != 30*time.Minute {
		t.Fatalf("db conn lifetimes = %s/%s", cfg.DBConnMaxLifetime, cfg.DBConnMaxIdleTime)
	}
	if cfg.UpstreamTimeout != 90*time.Second {
		t.Fatalf("upstream timeout = %s", cfg.UpstreamTimeout)
	}
	if cfg.MinioConfigured() {
		t.Fatalf("minio should not be configured by default")
	}
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}
}

func TestLoadConfigRejectsZeroQuota(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("GENERATION_QUOTA", "0")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for zero quota")
	}
}

func TestLoadConfigRejectsInvertedPoolBounds(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "5")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when min conns exceed max conns")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("GENERATION_QUOTA", "5")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("MINIO_ACCESS_KEY", "access")
	t.Setenv("MINIO_SECRET_KEY", "secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.GenerationQuota != 5 {
		t.Fatalf("quota = %d, want 5", cfg.GenerationQuota)
	}
	if cfg.DBMaxConns != 25 {
		t.Fatalf("db max conns = %d, want 25", cfg.DBMaxConns)
	}
	if !cfg.MinioConfigured() {
		t.Fatalf("minio should be configured")
	}
}
