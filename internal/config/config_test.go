package config

import (
	"os"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_DSN", "postgres://test")
	t.Setenv("MONGO_URI", "mongodb://test")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port: got %q", cfg.Port)
	}
	if cfg.MongoDB != "job_portal" {
		t.Errorf("mongo db: got %q", cfg.MongoDB)
	}
	if cfg.MinioBucket != "resumes" {
		t.Errorf("bucket: got %q", cfg.MinioBucket)
	}
	if cfg.TokenTTL != 168*time.Hour {
		t.Errorf("token ttl: got %v", cfg.TokenTTL)
	}
	if cfg.MaxUploadBytes != 5242880 {
		t.Errorf("max upload: got %d", cfg.MaxUploadBytes)
	}
	if cfg.ResumeOwnerOnlyDownload {
		t.Error("owner-only download should default to off")
	}
	if cfg.LoginRateLimit != 10 || cfg.LoginRateWindow != time.Minute {
		t.Errorf("rate limit defaults: got %d per %v", cfg.LoginRateLimit, cfg.LoginRateWindow)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	setRequired(t)
	// t.Setenv above registers the restore; drop the variable entirely
	// since an empty-but-set value still counts as provided.
	os.Unsetenv("JWT_SECRET")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("RESUME_OWNER_ONLY_DOWNLOAD", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("token ttl: got %v", cfg.TokenTTL)
	}
	if !cfg.ResumeOwnerOnlyDownload {
		t.Error("owner-only download should be on")
	}
}
