package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "clubpay/docs"
	"clubpay/internal/config"
	"clubpay/internal/db"
	"clubpay/internal/logger"
	"clubpay/internal/notify"
	"clubpay/internal/payment"
	"clubpay/internal/server"

	"github.com/redis/go-redis/v9"
)

// @title ClubPay API
// @version 1.0
// @description Training approval and trainer compensation settlement.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	logger.Info("Starting ClubPay application")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL, db.Options{
		MaxOpenConns:  cfg.DBMaxOpenConns,
		MaxIdleConns:  cfg.DBMaxIdleConns,
		Attempts:      cfg.DBConnectAttempts,
		RetryDelay:    cfg.DBConnectRetryDelay,
		RetryMaxDelay: 10 * cfg.DBConnectRetryDelay,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var notifier payment.Notifier
	if cfg.Notifications {
		queue := notify.NewQueue(
			redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}),
			notify.SMTPSender{
				From:     cfg.EmailFrom,
				FromName: cfg.EmailFromName,
				Host:     cfg.SMTPHost,
				Port:     cfg.SMTPPort,
				User:     cfg.SMTPUser,
				Pass:     cfg.SMTPPass,
			},
		)
		defer queue.Close()
		go queue.Start(ctx)

		notifier = queue
		logger.Info("Payout notifications enabled", "redis", cfg.RedisAddr)
	}

	srv := server.New(database, cfg, notifier)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
