// Package bootstrap assembles the application: config, logger,
// database, dependencies and the router.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hassy/readcycle/internal/app/controllers"
	"github.com/hassy/readcycle/internal/app/migrations"
	"github.com/hassy/readcycle/internal/app/repositories"
	"github.com/hassy/readcycle/internal/app/routes"
	"github.com/hassy/readcycle/internal/app/services"
	"github.com/hassy/readcycle/internal/config"
	"github.com/hassy/readcycle/internal/db"
	"github.com/hassy/readcycle/internal/middleware"
	"github.com/hassy/readcycle/internal/pkg/auth"
	"github.com/hassy/readcycle/internal/pkg/email"
	"github.com/hassy/readcycle/internal/pkg/filestorage"
	"github.com/hassy/readcycle/internal/pkg/logger"
	"github.com/hassy/readcycle/internal/pkg/websocket"
	"github.com/hassy/readcycle/internal/seed"
)

// App holds everything the server needs to run and shut down.
type App struct {
	Config *config.Config
	Router *gin.Engine
	Pool   *pgxpool.Pool
	Hub    *websocket.Hub
}

// LoadConfigAndSetupLogger reads the config file and configures the
// global logger from it.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Configure(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	return cfg, nil
}

// SetupDatabase connects the pool and applies pending migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, migrationsDir string) (*pgxpool.Pool, error) {
	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := migrations.NewMigrator(pool, migrationsDir).Run(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return pool, nil
}

// Build wires the full application on top of a connected pool.
func Build(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (*App, error) {
	storage, err := filestorage.NewLocalStorage(cfg.Storage)
	if err != nil {
		return nil, err
	}
	sessions := auth.NewSessionManager(cfg.Session.Secret, cfg.Session.TTL.Std())
	mailer := email.NewSender(cfg.Email)

	repos := repositories.NewRepositories(pool)
	svcs := services.NewServices(repos, mailer, sessions, storage, cfg.Server.ClientOrigin)

	seed.Run(ctx, repos)

	hub := websocket.NewHub()
	go hub.Run()
	gateway := websocket.NewGateway(hub, svcs.Chat)

	if cfg.Log.Pretty {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	routes.Register(router, routes.Controllers{
		Auth:         controllers.NewAuthController(svcs.Auth, cfg.Session.CookieName, cfg.Session.CookieSecure),
		Book:         controllers.NewBookController(svcs.Book),
		Chat:         controllers.NewChatController(svcs.Chat),
		Notification: controllers.NewNotificationController(svcs.Notification),
		Socket:       websocket.NewHandler(gateway, cfg.Server.ClientOrigin),
	}, sessions, cfg)

	return &App{Config: cfg, Router: router, Pool: pool, Hub: hub}, nil
}
