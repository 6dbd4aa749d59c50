package config

import (
	"log/slog"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"MONGO_URI", "MONGO_DB", "PORT", "SERVER_ADDR", "API_BASE_PATH", "APP_ENV", "NODE_ENV", "STORE_DRIVER", "LOG_LEVEL", "TZ", "ACCESS_TTL_MINUTES", "REFRESH_TTL_MINUTES"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.MongoURI != "mongodb://localhost:27017/bookinub" {
		t.Fatalf("unexpected mongo uri: %s", cfg.MongoURI)
	}
	if cfg.MongoDB != "bookinub" {
		t.Fatalf("expected db name from uri, got %s", cfg.MongoDB)
	}
	if cfg.ServerAddr != ":5000" {
		t.Fatalf("expected :5000, got %s", cfg.ServerAddr)
	}
	if cfg.APIBasePath != "/api" {
		t.Fatalf("expected /api, got %s", cfg.APIBasePath)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("expected non-development default")
	}
	if cfg.StoreDriver != StoreMongo {
		t.Fatalf("expected mongo store, got %s", cfg.StoreDriver)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("expected info level, got %v", cfg.LogLevel)
	}
	if cfg.AccessTTLMinutes != 15 || cfg.RefreshTTLMinutes != 43200 {
		t.Fatalf("unexpected token ttls: access=%d refresh=%d", cfg.AccessTTLMinutes, cfg.RefreshTTLMinutes)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "7001")
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("API_BASE_PATH", "v2/")
	t.Setenv("APP_ENV", "")
	t.Setenv("NODE_ENV", "development")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("FRONTEND_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.ServerAddr != ":7001" {
		t.Fatalf("expected :7001, got %s", cfg.ServerAddr)
	}
	if cfg.APIBasePath != "/v2" {
		t.Fatalf("expected /v2, got %s", cfg.APIBasePath)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected NODE_ENV to select development")
	}
	if cfg.StoreDriver != StoreMemory {
		t.Fatalf("expected memory store, got %s", cfg.StoreDriver)
	}
	if len(cfg.FrontendOrigins) != 2 || cfg.FrontendOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.FrontendOrigins)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown store driver")
	}
}

func TestMongoDBFromURI(t *testing.T) {
	if got := mongoDBFromURI("mongodb://user:pw@host:27017/bookings/extra?authSource=admin"); got != "bookings" {
		t.Fatalf("expected bookings, got %q", got)
	}
	if got := mongoDBFromURI("mongodb://host:27017"); got != "" {
		t.Fatalf("expected empty name, got %q", got)
	}
}
