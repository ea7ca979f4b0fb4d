package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdusco/shelf/internal/db"
	"github.com/abdusco/shelf/internal/functions"
	"github.com/abdusco/shelf/internal/repo"
)

func TestNewConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"HOST", "PORT", "DB_PATH", "ADMIN_CREDENTIALS", "JWT_SECRET", "LOG_LEVEL", "DEBUG"} {
			t.Setenv(key, "")
		}

		cfg, err := newConfigFromEnv()
		if err != nil {
			t.Fatalf("newConfigFromEnv() error = %v", err)
		}
		if cfg.Addr() != "localhost:8080" || cfg.DBPath != "shelf.db" || cfg.LogLevel != "info" || cfg.Debug {
			t.Errorf("unexpected defaults %+v", cfg)
		}
		if cfg.AdminCreds != "" || cfg.JWTSecret != "" {
			t.Errorf("auth should be off by default, got %+v", cfg)
		}
	})

	t.Run("jwt secret falls back to credentials", func(t *testing.T) {
		t.Setenv("ADMIN_CREDENTIALS", "admin:secret")
		t.Setenv("JWT_SECRET", "")

		cfg, err := newConfigFromEnv()
		if err != nil {
			t.Fatalf("newConfigFromEnv() error = %v", err)
		}
		if cfg.JWTSecret != "admin:secret" {
			t.Errorf("JWTSecret = %q", cfg.JWTSecret)
		}
	})

	t.Run("malformed credentials", func(t *testing.T) {
		t.Setenv("ADMIN_CREDENTIALS", "admin")

		if _, err := newConfigFromEnv(); err == nil {
			t.Error("expected error for credentials without password separator")
		}
	})
}

func newTestRegistry(t *testing.T) *functions.Registry {
	t.Helper()

	instance, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { instance.Close() })

	registry := functions.NewRegistry()
	registry.Register(functions.LinkFunctions(repo.NewLinksRepo(instance))...)
	registry.Register(functions.ModelFunctions(repo.NewModelsRepo(instance))...)
	return registry
}

func TestNewServer(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		basicAuth bool
		wantAPI   int
		wantLogin int
	}{
		{name: "open api", cfg: Config{}, wantAPI: http.StatusOK, wantLogin: http.StatusNotFound},
		{name: "protected api", cfg: Config{AdminCreds: "admin:secret", JWTSecret: "s"}, wantAPI: http.StatusUnauthorized, wantLogin: http.StatusOK},
		{name: "protected api with basic auth", cfg: Config{AdminCreds: "admin:secret", JWTSecret: "s"}, basicAuth: true, wantAPI: http.StatusOK, wantLogin: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := newServer(tt.cfg, newTestRegistry(t))
			if err != nil {
				t.Fatalf("newServer() error = %v", err)
			}

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			if rec.Code != http.StatusOK {
				t.Errorf("GET /health status = %d", rec.Code)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/models", nil)
			if tt.basicAuth {
				req.SetBasicAuth("admin", "secret")
			}
			rec = httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tt.wantAPI {
				t.Errorf("GET /api/models status = %d, want %d", rec.Code, tt.wantAPI)
			}

			req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"secret"}`))
			req.Header.Set("Content-Type", "application/json")
			rec = httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tt.wantLogin {
				t.Errorf("POST /login status = %d, want %d", rec.Code, tt.wantLogin)
			}
		})
	}
}
