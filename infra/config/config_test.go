package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/CrestNiraj12/rivalsnexus/infra/storage"
)

func TestLoad_ParsesEnvAndDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RIVALS_API_URL", "https://api.example.com/")
	t.Setenv("RIVALS_DATA_DIR", dir)
	t.Setenv("RIVALS_STORAGE", "SQLite")
	t.Setenv("RIVALS_STORAGE_QUOTA", "1024")
	t.Setenv("RIVALS_SHARE_BASE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.APIURL != "https://api.example.com" {
		t.Fatalf("api url must be normalized: %q", cfg.APIURL)
	}
	if cfg.Storage != StorageSQLite || cfg.StorageQuota != 1024 {
		t.Fatalf("unexpected storage config: %#v", cfg)
	}
	if cfg.ShareBase != "https://rivalsnexus.local/community" {
		t.Fatalf("share base default: %q", cfg.ShareBase)
	}
	if cfg.StorePath() != filepath.Join(dir, "community.db") {
		t.Fatalf("store path: %q", cfg.StorePath())
	}
	if cfg.UIStatePath != filepath.Join(dir, "ui_state.json") {
		t.Fatalf("ui state path: %q", cfg.UIStatePath)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RIVALS_API_URL", "")
	t.Setenv("RIVALS_DATA_DIR", t.TempDir())
	t.Setenv("RIVALS_STORAGE", "")
	t.Setenv("RIVALS_STORAGE_QUOTA", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.APIURL != "http://localhost:3000" || cfg.Storage != StorageFile || cfg.StorageQuota != storage.DefaultQuota {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"relative api url", "RIVALS_API_URL", "localhost:3000/api"},
		{"ftp api url", "RIVALS_API_URL", "ftp://example.com"},
		{"unknown backend", "RIVALS_STORAGE", "redis"},
		{"bad quota", "RIVALS_STORAGE_QUOTA", "lots"},
		{"zero quota", "RIVALS_STORAGE_QUOTA", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RIVALS_DATA_DIR", t.TempDir())
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoadServer(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := LoadServer(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "8080")
	t.Setenv("ADMIN_EMAIL", " Boss@Example.com ")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Addr() != ":8080" || cfg.AdminEmail != "boss@example.com" {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("origins: %#v", cfg.CORSOrigins)
	}
	if cfg.Database != "mywebapp" {
		t.Fatalf("database default: %q", cfg.Database)
	}

	t.Setenv("PORT", "http")
	if _, err := LoadServer(); err == nil {
		t.Fatal("expected error for non-numeric port")
	}
}

func TestUIState_LoadAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ui_state.json")

	st, err := LoadUIState(path)
	if err != nil {
		t.Fatalf("missing state should not error: %v", err)
	}
	if st != (UIState{}) {
		t.Fatalf("expected empty state for missing file")
	}

	want := UIState{Tab: "popular", View: "roster"}
	if err := SaveUIState(path, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := LoadUIState(path)
	if err != nil {
		t.Fatalf("load after save failed: %v", err)
	}
	if got != want {
		t.Fatalf("unexpected loaded state got=%#v want=%#v", got, want)
	}

	if err := os.WriteFile(path, []byte("not-json"), 0o600); err != nil {
		t.Fatalf("write corrupt state failed: %v", err)
	}
	if _, err := LoadUIState(path); err == nil {
		t.Fatalf("expected parse error for invalid json")
	}
}
