package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	cfg, err := LoadFrom(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.API.Port)
	}
	if cfg.Storage.Driver != DriverMemory {
		t.Errorf("driver = %q, want memory", cfg.Storage.Driver)
	}
	if cfg.Storage.Key != "saklain-portfolio-cms" {
		t.Errorf("key = %q", cfg.Storage.Key)
	}
	if cfg.Auth.AccessTokenTTL != 24*time.Hour {
		t.Errorf("ttl = %v", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Redis.Addr() != "" {
		t.Errorf("redis should be disabled by default, got %q", cfg.Redis.Addr())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("ADMIN_USERNAME", "owner")
	t.Setenv("API_PORT", "9090")

	cfg, err := LoadFrom(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Redis.Addr() != "cache:6379" {
		t.Errorf("redis addr = %q", cfg.Redis.Addr())
	}
	if cfg.Auth.Username != "owner" {
		t.Errorf("username = %q", cfg.Auth.Username)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("port = %d", cfg.API.Port)
	}
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "floppy")
	if _, err := LoadFrom(viper.New()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestValidateRedisDriverNeedsHost(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_HOST", "")
	if _, err := LoadFrom(viper.New()); err == nil {
		t.Fatal("expected error when redis host is missing")
	}
}

func TestStorageShared(t *testing.T) {
	for driver, want := range map[string]bool{
		DriverMemory:   false,
		DriverNone:     false,
		DriverFile:     true,
		DriverRedis:    true,
		DriverPostgres: true,
		DriverSQLite:   true,
		DriverMinIO:    true,
	} {
		if got := (StorageConfig{Driver: driver}).Shared(); got != want {
			t.Errorf("Shared(%s) = %v, want %v", driver, got, want)
		}
	}
}
