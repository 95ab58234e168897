package main

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/ovira/internal/api"
	"github.com/terraincognita07/ovira/internal/assistant"
	"github.com/terraincognita07/ovira/internal/config"
	"github.com/terraincognita07/ovira/internal/db"
	"github.com/terraincognita07/ovira/internal/logger"
	"github.com/terraincognita07/ovira/internal/memstore"
	"github.com/terraincognita07/ovira/internal/render"
	"github.com/terraincognita07/ovira/internal/services"
	"github.com/terraincognita07/ovira/internal/store"
	"go.uber.org/zap/zapcore"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}
}

func runServe(ctx context.Context, cfg config.Config) error {
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	location := cfg.Location()
	time.Local = location

	dataStore, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := dataStore.Close(); err != nil {
			log.Warn("store close failed", "error", err)
		}
	}()

	if cfg.DemoSeed {
		count, err := seedDemoLogs(ctx, dataStore, memstore.DemoUserID, time.Now().In(location))
		if err != nil {
			return err
		}
		log.Info("demo logs seeded", "user_id", memstore.DemoUserID, "count", count)
	}

	deps, cleanup, err := buildDependencies(ctx, cfg, dataStore, log)
	if err != nil {
		return err
	}
	defer cleanup()

	handler, err := api.NewHandler(deps)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(handler, log)

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Warn("server shutdown failed", "error", err)
		}
	}()

	log.Info("ovira listening", "port", cfg.Port, "store", cfg.StoreDriver, "tz", location.String())
	return app.Listen(":" + strconv.Itoa(cfg.Port))
}

// newLogger falls back to a per-process salt, so hashed user ids only correlate within one run
// unless LOG_HASH_SALT is set.
func newLogger(cfg config.Config) (*logger.Logger, error) {
	salt := cfg.LogHashSalt
	if salt == "" {
		salt = uuid.NewString()
	}
	log, err := logger.New(logger.Options{
		Production: cfg.IsProduction(),
		Redact:     cfg.LogRedaction,
		HashSalt:   salt,
	})
	if err != nil {
		return nil, fmt.Errorf("logger init failed: %w", err)
	}
	return log, nil
}

func newApp(handler *api.Handler, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Ovira",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		Output: log.StdLogger(zapcore.InfoLevel).Writer(),
	}))
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)
	return app
}

func openStore(cfg config.Config, log *logger.Logger) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return memstore.New(), nil
	case config.StorePostgres:
		database, err := db.OpenPostgres(cfg.DatabaseURL, log)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		return db.NewStore(database), nil
	case config.StoreSQLite:
		database, err := db.OpenSQLite(cfg.DBPath, log)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		return db.NewStore(database), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func buildDependencies(ctx context.Context, cfg config.Config, dataStore store.Store, log *logger.Logger) (api.Dependencies, func(), error) {
	location := cfg.Location()
	cleanup := func() {}

	var assistantClient services.AssistantClient
	if cfg.GeminiAPIKey != "" {
		client, err := assistant.New(cfg.GeminiAPIKey, cfg.GeminiModel, log.With("component", "assistant"))
		if err != nil {
			return api.Dependencies{}, cleanup, err
		}
		assistantClient = client
	} else {
		log.Info("GEMINI_API_KEY not set, chat replies use fallback guidance")
	}

	var limiter api.ChatLimiter
	if cfg.RedisAddr != "" {
		redisLimiter, client, err := api.DialRedisLimiter(ctx, cfg.RedisAddr)
		if err != nil {
			return api.Dependencies{}, cleanup, err
		}
		limiter = redisLimiter
		cleanup = func() {
			if err := client.Close(); err != nil {
				log.Warn("redis close failed", "error", err)
			}
		}
	}

	profiles := services.NewProfileService(dataStore, dataStore, location)
	deps := api.Dependencies{
		Logs:           services.NewSymptomLogService(dataStore, dataStore, location),
		Dashboard:      services.NewDashboardService(dataStore, profiles, location, cfg.LogWindowSize),
		Reports:        services.NewReportService(dataStore, dataStore, render.NewPDFRenderer(), cfg.LogWindowSize, cfg.ReportWindowDays),
		Profiles:       profiles,
		Chat:           services.NewChatService(assistantClient, profiles),
		SecretKey:      cfg.SecretKey,
		Location:       location,
		Logger:         log.With("component", "api"),
		ChatLimiter:    limiter,
		ChatRateLimit:  cfg.ChatRateLimit,
		ChatRateWindow: cfg.ChatRateWindow,
	}
	return deps, cleanup, nil
}
