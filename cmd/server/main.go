package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"itemtrack/internal/api"
	"itemtrack/internal/app/service"
	"itemtrack/internal/common/security"
	"itemtrack/internal/domain/repository"
	"itemtrack/internal/platform/cache"
	"itemtrack/internal/platform/config"
	"itemtrack/internal/platform/database"
	"itemtrack/internal/platform/migrations"

	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load Configuration
	config.Load()

	// 2. Initialize Logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(config.AppConfig.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// 3. Initialize JWT
	security.InitJWT()

	// 4. Initialize Database & run migrations
	database.Connect()
	defer database.Close()
	if err := migrations.Run(context.Background(), database.DB); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// 5. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	itemRepo := repository.NewPgItemRepository(database.DB)

	// 7. Initialize Services
	subjectCache := service.NewRedisSubjectCache(cache.RDB, config.AppConfig.SubjectCacheTTL, logger)
	resolver := service.NewSubjectResolver(userRepo, subjectCache)
	authService := service.NewAuthService(userRepo, logger)
	itemService := service.NewItemService(itemRepo, logger)
	userService := service.NewUserService(userRepo, itemRepo, subjectCache, database.DB, logger)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, itemService, userService, resolver)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Infof("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Could not listen on %s: %v", config.AppConfig.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("Server shutdown failed: %v", err)
	}

	logger.Info("Server stopped gracefully.")
}
