package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		want  Mode
	}{
		{"development", ModeDevelopment},
		{"deployed", ModeDeployed},
		{"production", ModeDeployed},
		{"", ModeDevelopment},
		{"garbage", ModeDevelopment},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.input); got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDefaultDataDir(t *testing.T) {
	if got := ModeDeployed.DefaultDataDir(); got != "/tmp/data" {
		t.Errorf("deployed default = %q, want /tmp/data", got)
	}
	if got := ModeDevelopment.DefaultDataDir(); got != "./data" {
		t.Errorf("development default = %q, want ./data", got)
	}
}

func TestEffectiveDataDirPrecedence(t *testing.T) {
	t.Run("env beats config", func(t *testing.T) {
		t.Setenv(EnvDataDir, "/from/env")
		cfg := &Config{DataDir: "/from/config"}
		if got := cfg.EffectiveDataDir(); got != "/from/env" {
			t.Errorf("got %q, want /from/env", got)
		}
	})

	t.Run("config beats mode default", func(t *testing.T) {
		t.Setenv(EnvDataDir, "")
		os.Unsetenv(EnvDataDir)
		cfg := &Config{DataDir: "/from/config", Mode: ModeDeployed}
		if got := cfg.EffectiveDataDir(); got != "/from/config" {
			t.Errorf("got %q, want /from/config", got)
		}
	})

	t.Run("mode default is the fallback", func(t *testing.T) {
		t.Setenv(EnvDataDir, "")
		os.Unsetenv(EnvDataDir)
		cfg := &Config{Mode: ModeDeployed}
		if got := cfg.EffectiveDataDir(); got != "/tmp/data" {
			t.Errorf("got %q, want /tmp/data", got)
		}
	})
}

func TestEffectiveModeEnvOverride(t *testing.T) {
	t.Setenv(EnvMode, "deployed")
	cfg := &Config{Mode: ModeDevelopment}
	if got := cfg.EffectiveMode(); got != ModeDeployed {
		t.Errorf("env should win, got %q", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Addr != ":3000" {
		t.Errorf("default addr = %q, want :3000", cfg.Addr)
	}
	if cfg.Mode != ModeDevelopment {
		t.Errorf("default mode = %q, want development", cfg.Mode)
	}
	if cfg.Auth.Username != "admin" || cfg.Auth.Password != "123456" {
		t.Errorf("unexpected default credentials: %+v", cfg.Auth)
	}
	if cfg.SerializeWrites {
		t.Error("write serialization should be off by default")
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostsadmin.yaml")
	content := `version: 1
addr: ":8080"
mode: deployed
data_dir: /srv/hosts
serialize_writes: true
auth:
  username: ops
  password: secret
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, loadedFrom, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loadedFrom != path {
		t.Errorf("loadedFrom = %q, want %q", loadedFrom, path)
	}
	if cfg.Addr != ":8080" || cfg.Mode != ModeDeployed || cfg.DataDir != "/srv/hosts" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !cfg.SerializeWrites {
		t.Error("serialize_writes not loaded")
	}
	if cfg.Auth.Username != "ops" || cfg.Auth.Password != "secret" {
		t.Errorf("unexpected auth: %+v", cfg.Auth)
	}
}

func TestLoadFromPathAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostsadmin.yaml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, _, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("missing addr should default, got %q", cfg.Addr)
	}
	if cfg.Auth.Username != "admin" {
		t.Errorf("missing auth should default, got %+v", cfg.Auth)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "hostsadmin.yaml")

	cfg := DefaultConfig()
	cfg.Addr = ":9999"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, _, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Addr != ":9999" {
		t.Errorf("addr did not round trip, got %q", loaded.Addr)
	}
}
