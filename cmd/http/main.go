package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"tradepost/internal/auth"
	"tradepost/internal/config"
	"tradepost/internal/handler"
	"tradepost/internal/model"
	"tradepost/internal/platform/logger"
	"tradepost/internal/platform/metrics"
	"tradepost/internal/repository"
	"tradepost/internal/service"
	"tradepost/internal/storage"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// 2. Open collection stores
	userStore, err := storage.Open[model.Account](filepath.Join(cfg.DataDir, "users.json"))
	if err != nil {
		zlog.Fatalw("failed to open user store", "error", err)
	}
	productStore, err := storage.Open[model.Listing](filepath.Join(cfg.DataDir, "products.json"))
	if err != nil {
		zlog.Fatalw("failed to open product store", "error", err)
	}
	cartStore, err := storage.Open[model.Entry](filepath.Join(cfg.DataDir, "purchases.json"))
	if err != nil {
		zlog.Fatalw("failed to open cart store", "error", err)
	}

	// 3. Setup Logic
	userRepo := repository.NewUserRepository(userStore)
	productRepo := repository.NewProductRepository(productStore)
	cartRepo := repository.NewCartRepository(cartStore)

	accounts := service.NewAccountService(userRepo)
	listings := service.NewListingService(productRepo)
	cart := service.NewCartService(productRepo, cartRepo)
	stats := service.NewStatsService(userRepo, productRepo, cartRepo)

	sessions := auth.NewSessions([]byte(cfg.Session.Secret), cfg.Session.TTL)
	m := metrics.New("tradepost")

	h := handler.NewHandler(zlog, sessions, accounts, listings, cart, stats, m)

	// 4. Setup Server
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: h,
	}

	// 5. Run Server with Graceful Shutdown
	go func() {
		zlog.Infow("starting server", "port", cfg.ServerPort, "data_dir", cfg.DataDir)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatalw("server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 2)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Infow("shutting down server")

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zlog.Fatalw("server forced to shutdown", "error", err)
	}

	zlog.Infow("server exiting")
}
