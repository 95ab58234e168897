package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/ovira/internal/api"
	"github.com/terraincognita07/ovira/internal/config"
	"github.com/terraincognita07/ovira/internal/logger"
	"github.com/terraincognita07/ovira/internal/memstore"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("OVIRA_CONFIG", "")
	t.Setenv("SECRET_KEY", testSecret)
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("REDIS_ADDR", "")
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "token", "seed-demo"} {
		if _, _, err := root.Find([]string{name}); err != nil {
			t.Fatalf("expected %s subcommand: %v", name, err)
		}
	}
}

func TestTokenCommandPrintsUsableToken(t *testing.T) {
	isolateConfig(t)

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"token", "--user", "user-42", "--ttl", "1h"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("token command failed: %v", err)
	}

	token := strings.TrimSpace(out.String())
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected a JWT, got %q", token)
	}

	cfg := config.Defaults()
	cfg.SecretKey = testSecret
	cfg.StoreDriver = config.StoreMemory
	deps, cleanup, err := buildDependencies(context.Background(), cfg, memstore.New(), logger.NewNop())
	if err != nil {
		t.Fatalf("build dependencies: %v", err)
	}
	defer cleanup()
	handler, err := api.NewHandler(deps)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	request := httptest.NewRequest(http.MethodGet, "/api/streak", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	response, err := newApp(handler, logger.NewNop()).Test(request, -1)
	if err != nil {
		t.Fatalf("streak request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
}

func TestTokenCommandRequiresUser(t *testing.T) {
	isolateConfig(t)

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"token"})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected error without --user")
	}
}

func TestOpenStoreByDriver(t *testing.T) {
	cfg := config.Defaults()

	cfg.StoreDriver = config.StoreMemory
	memory, err := openStore(cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	_ = memory.Close()

	cfg.StoreDriver = config.StoreSQLite
	cfg.DBPath = filepath.Join(t.TempDir(), "ovira.db")
	sqlite, err := openStore(cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	_ = sqlite.Close()

	cfg.StoreDriver = "mongo"
	if _, err := openStore(cfg, logger.NewNop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestSeedDemoLogsIsIdempotent(t *testing.T) {
	dataStore := memstore.New()
	ctx := context.Background()
	today := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	count, err := seedDemoLogs(ctx, dataStore, "demo", today)
	if err != nil {
		t.Fatalf("seed demo logs: %v", err)
	}
	if count != memstore.DemoDays {
		t.Fatalf("expected %d demo logs, got %d", memstore.DemoDays, count)
	}

	count, err = seedDemoLogs(ctx, dataStore, "demo", today)
	if err != nil {
		t.Fatalf("reseed demo logs: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected reseed to skip, got %d", count)
	}

	if _, err := seedDemoLogs(ctx, dataStore, " ", today); err == nil {
		t.Fatal("expected error for blank user id")
	}
}

func TestNewAppServesHealthz(t *testing.T) {
	cfg := config.Defaults()
	cfg.SecretKey = testSecret
	deps, cleanup, err := buildDependencies(context.Background(), cfg, memstore.New(), logger.NewNop())
	if err != nil {
		t.Fatalf("build dependencies: %v", err)
	}
	defer cleanup()
	handler, err := api.NewHandler(deps)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	response, err := newApp(handler, logger.NewNop()).Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	if err != nil {
		t.Fatalf("healthz request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if response.Header.Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}

func TestNewLoggerHonoursMode(t *testing.T) {
	cfg := config.Defaults()
	cfg.Mode = "production"
	log, err := newLogger(cfg)
	if err != nil {
		t.Fatalf("newLogger() unexpected error: %v", err)
	}
	log.Info("logger ready", "user_id", "user-1")
}
