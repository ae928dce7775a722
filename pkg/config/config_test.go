package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/hobohm/pkg/errors"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvRedisURL, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoadTOML(t *testing.T) {
	isolate(t)
	path := write(t, "config.toml", `
relation = "dist"
cutoff = 0.3
skip_malformed = true

[cache]
redis_url = "redis://localhost:6379/1"
ttl = "72h"

[server]
addr = "127.0.0.1:9000"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Relation != "dist" || cfg.Cutoff == nil || *cfg.Cutoff != 0.3 || !cfg.SkipMalformed {
		t.Errorf("top-level fields = %+v", cfg)
	}
	if cfg.Cache.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("RedisURL = %q", cfg.Cache.RedisURL)
	}
	if cfg.Cache.TTL != 72*time.Hour {
		t.Errorf("TTL = %v, want 72h", cfg.Cache.TTL)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoadYAML(t *testing.T) {
	isolate(t)
	path := write(t, "config.yaml", `
relation: sim
cutoff: 0.9
keep_file: keep.txt
cache:
  ttl: 30m
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.KeepFile != "keep.txt" || *cfg.Cutoff != 0.9 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Cache.TTL != 30*time.Minute {
		t.Errorf("TTL = %v, want 30m", cfg.Cache.TTL)
	}
	if cfg.Server.Addr != DefaultServerAddr {
		t.Errorf("Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoadMissingDefaultIsEmpty(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Path != "" || cfg.Cutoff != nil {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadXDGDefault(t *testing.T) {
	isolate(t)
	dir := os.Getenv("XDG_CONFIG_HOME")
	if err := os.MkdirAll(filepath.Join(dir, "hobohm"), 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "hobohm", "config.toml")
	if err := os.WriteFile(path, []byte(`relation = "distance"`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Relation != "distance" || cfg.Path != path {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadEnv(t *testing.T) {
	isolate(t)
	path := write(t, "c.toml", `cutoff = 1.5`)
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvRedisURL, "redis://cache:6379")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if *cfg.Cutoff != 1.5 {
		t.Errorf("Cutoff = %v", *cfg.Cutoff)
	}
	if cfg.Cache.RedisURL != "redis://cache:6379" {
		t.Errorf("RedisURL = %q, want env value", cfg.Cache.RedisURL)
	}
}

func TestLoadErrors(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"explicit missing", filepath.Join(t.TempDir(), "none.toml"), errors.ErrCodeFileNotFound},
		{"bad toml", write(t, "bad.toml", "relation = "), errors.ErrCodeInvalidConfig},
		{"bad relation", write(t, "rel.toml", `relation = "cosine"`), errors.ErrCodeInvalidConfig},
		{"negative ttl", write(t, "ttl.yaml", "cache:\n  ttl: -1h\n"), errors.ErrCodeInvalidConfig},
		{"unknown ext", write(t, "c.json", `{}`), errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("Load(%s) error = %v, want %s", tt.name, err, tt.code)
			}
		})
	}
}

func TestDefaultCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := DefaultCacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg", "hobohm") {
		t.Errorf("DefaultCacheDir() = %q", dir)
	}
}
