package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"medvault-backend/internal/chat"
	"medvault-backend/internal/records"
	"medvault-backend/internal/services/health"
	"medvault-backend/internal/shared/config"
	"medvault-backend/internal/shared/server"
	"medvault-backend/internal/shared/server/middleware"
	"medvault-backend/internal/shared/storage/db"
	"medvault-backend/internal/shared/storage/object"
	objectlocal "medvault-backend/internal/shared/storage/object/local"
	objectminio "medvault-backend/internal/shared/storage/object/minio"
	"medvault-backend/internal/shared/telemetry"
	"medvault-backend/internal/users"
)

// App holds the assembled application.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
}

// Build wires repositories, services and handlers from configuration.
//
// Without DATABASE_URL the app runs on in-memory repositories, which is
// only acceptable outside production. Without CHAT_API_KEY the chat
// endpoint serves its fallback reply.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildObjectStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var recordsRepo records.Repo
	var usersRepo users.Repo
	if database != nil {
		recordsRepo = &records.PGRepo{DB: database}
		usersRepo = &users.PGRepo{DB: database}
	} else {
		recordsRepo = records.NewMemoryRepo()
		usersRepo = users.NewMemoryRepo()
	}

	var completer chat.Completer
	if cfg.ChatAPIKey != "" {
		client, err := chat.NewClient(cfg.ChatAPIURL, cfg.ChatAPIKey, cfg.ChatModel, cfg.ChatTimeout)
		if err != nil {
			return nil, fmt.Errorf("chat client: %w", err)
		}
		completer = client
	} else {
		telemetry.Warn("chat.disabled", map[string]any{"reason": "CHAT_API_KEY not set"})
	}

	metrics, metricsHandler, err := buildMetrics()
	if err != nil {
		return nil, err
	}

	router := server.NewRouter(server.RouterDeps{
		Config:         cfg,
		RecordsHandler: records.NewHandler(&records.Service{Store: store, Repo: recordsRepo}),
		ChatHandler:    chat.NewHandler(completer),
		UsersHandler:   users.NewHandler(users.NewService(usersRepo)),
		Health:         health.NewService(database),
		Metrics:        metrics,
		MetricsHandler: metricsHandler,
	})

	return &App{Config: cfg, Router: router, DB: database, Store: store}, nil
}

// Close releases held resources.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func openDatabase(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("DATABASE_URL is required in production")
		}
		telemetry.Warn("db.disabled", map[string]any{"mode": "memory"})
		return nil, nil
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.RunMigrations(ctx, database); err != nil {
		database.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return database, nil
}

func buildObjectStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "minio":
		store, err := objectminio.New(ctx, objectminio.Config{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			UseSSL:    cfg.MinIOUseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("minio store: %w", err)
		}
		return store, nil
	default:
		return objectlocal.New(cfg.LocalStoreDir), nil
	}
}

func buildMetrics() (*middleware.Metrics, http.Handler, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := middleware.NewMetrics(reg)
	if err != nil {
		return nil, nil, fmt.Errorf("register metrics: %w", err)
	}
	return metrics, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}
