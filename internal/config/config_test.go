package config

import (
	"testing"
	"time"
)

func TestLoadFallsBackToDefaults(t *testing.T) {
	// No config/config.test.yaml exists in the test working directory.
	t.Setenv("CONFIG_ENV", "test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Mode != "release" {
		t.Errorf("Mode = %q; want release", cfg.Mode)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d; want 8080", cfg.Port)
	}
	if cfg.ReadLimit != 65536 {
		t.Errorf("ReadLimit = %d; want 65536", cfg.ReadLimit)
	}
	if cfg.PingPeriod != 54*time.Second {
		t.Errorf("PingPeriod = %v; want 54s", cfg.PingPeriod)
	}
	if cfg.WriteTimeout != 5*time.Second {
		t.Errorf("WriteTimeout = %v; want 5s", cfg.WriteTimeout)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d; want 10", cfg.BcryptCost)
	}
	if cfg.JoinLimit != 20 || cfg.JoinInterval != 10*time.Second {
		t.Errorf("join limits = %d/%v; want 20/10s", cfg.JoinLimit, cfg.JoinInterval)
	}
}
