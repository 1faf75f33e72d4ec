package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse(empty) = %v, want nil", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %v, want 8080", cfg.Port)
	}
	if cfg.WaitTimeout.Duration() != 25*time.Second {
		t.Errorf("WaitTimeout = %v, want 25s", cfg.WaitTimeout.Duration())
	}
	if cfg.ShutdownTimeout.Duration() != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout.Duration())
	}
	if cfg.Title != "" {
		t.Errorf("Title = %q, want empty", cfg.Title)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Port != 8080 {
		t.Errorf("Port = %v, want 8080", cfg.Port)
	}
	if cfg.WaitTimeout.Duration() != 25*time.Second {
		t.Errorf("WaitTimeout = %v, want 25s", cfg.WaitTimeout.Duration())
	}
}

func TestParse_Full(t *testing.T) {
	yaml := `
title: Main Stage
port: 9090
wait_timeout: 30s
shutdown_timeout: 10s
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() = %v, want nil", err)
	}

	if cfg.Title != "Main Stage" {
		t.Errorf("Title = %q, want Main Stage", cfg.Title)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %v, want 9090", cfg.Port)
	}
	if cfg.WaitTimeout.Duration() != 30*time.Second {
		t.Errorf("WaitTimeout = %v, want 30s", cfg.WaitTimeout.Duration())
	}
	if cfg.ShutdownTimeout.Duration() != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout.Duration())
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("port: [not a number"))
	if err == nil {
		t.Fatal("Parse(malformed) = nil, want error")
	}
}

func TestParse_InvalidDuration(t *testing.T) {
	_, err := Parse([]byte("wait_timeout: soon"))
	if err == nil || !strings.Contains(err.Error(), "invalid duration") {
		t.Fatalf("Parse(bad duration) = %v, want invalid duration error", err)
	}
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"port too small", "port: -1", "port must be"},
		{"port too large", "port: 70000", "port must be"},
		{"wait too small", "wait_timeout: 100ms", "wait_timeout must be at least"},
		{"wait too large", "wait_timeout: 10m", "wait_timeout must not exceed"},
		{"shutdown too small", "shutdown_timeout: 10ms", "shutdown_timeout must be at least"},
		{"shutdown too large", "shutdown_timeout: 5m", "shutdown_timeout must not exceed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("CUE_STAGE", "Main Stage")

	cfg, err := Parse([]byte("title: ${CUE_STAGE} Cues"))
	if err != nil {
		t.Fatalf("Parse() = %v, want nil", err)
	}
	if cfg.Title != "Main Stage Cues" {
		t.Errorf("Title = %q, want expanded env var", cfg.Title)
	}
}

func TestParse_EnvExpansionDefault(t *testing.T) {
	cfg, err := Parse([]byte("title: ${CUE_UNSET_VAR:-Fallback}"))
	if err != nil {
		t.Fatalf("Parse() = %v, want nil", err)
	}
	if cfg.Title != "Fallback" {
		t.Errorf("Title = %q, want Fallback", cfg.Title)
	}
}

func TestParse_EnvExpansionMissing(t *testing.T) {
	_, err := Parse([]byte("title: ${CUE_UNSET_VAR}"))
	if err == nil || !strings.Contains(err.Error(), "is not set") {
		t.Fatalf("Parse() = %v, want unset env var error", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("port: 3000"), 0o600); err != nil {
		t.Fatalf("WriteFile() = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("Port = %v, want 3000", cfg.Port)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load(missing) = nil, want error")
	}
}
