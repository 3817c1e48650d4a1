package main

// @title           Local Library Catalog API
// @version         1.0
// @description     Authors, genres, books and book copies of a local library.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /catalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/catalog"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/config"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/db"
	docs "github.com/snnyvrz/shelfshare/apps/catalog/internal/docs"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/handler"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/logger"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/repository"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	appVersion      = "0.1.0"
	shutdownTimeout = 20 * time.Second
)

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(log)

	if err := run(cfg, log, startTime); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger, startTime time.Time) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.GinMode)

	e := gin.Default()

	e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	})

	if cfg.RateLimitRPS > 0 {
		limiter := handler.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go limiter.Sweep(ctx)
		e.Use(limiter.Middleware())
	}

	docs.SwaggerInfo.BasePath = model.BasePath

	database, err := db.ConnectWithRetry(cfg, log)
	if err != nil {
		return err
	}

	if err := db.Migrate(database); err != nil {
		return err
	}

	store := repository.NewStore(database)
	svc := catalog.NewService(store, log)

	healthHandler := handler.NewHealthHandler(store, startTime, appVersion)
	healthHandler.RegisterRoutes(e)

	api := e.Group(model.BasePath)
	{
		handler.NewHomeHandler(svc, log).RegisterRoutes(api)
		handler.NewAuthorHandler(svc, log).RegisterRoutes(api)
		handler.NewGenreHandler(svc, log).RegisterRoutes(api)
		handler.NewBookHandler(svc, log).RegisterRoutes(api)
		handler.NewBookInstanceHandler(svc, log).RegisterRoutes(api)
	}

	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      e,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server",
		slog.String("addr", srv.Addr),
		slog.String("mode", cfg.GinMode),
		slog.String("db_driver", cfg.DBDriver),
	)

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-shutdownErr
}
