package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"currency-gateway/internal/adapter/cache"
	httpRouter "currency-gateway/internal/adapter/http"
	"currency-gateway/internal/adapter/provider"
	"currency-gateway/internal/config"
	"currency-gateway/internal/metrics"
	"currency-gateway/internal/service"
	"currency-gateway/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine: config falls back to process env and defaults.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Log.Level)
	log.Info("Starting currency gateway")

	appMetrics := metrics.NewMetrics()
	store := cache.NewMemoryCache(cfg.Cache.TTL, log)

	fiatAPI := provider.NewFiatAPI(cfg.FiatAPI.BaseURL, cfg.FiatAPI.Timeout, log)
	cryptoAPI := provider.NewCoinGeckoAPI(cfg.CryptoAPI.BaseURL, cfg.CryptoAPI.Timeout, log)

	fiatService := service.NewFiatService(fiatAPI, store, appMetrics, log)
	cryptoService := service.NewCryptoService(cryptoAPI, store, cfg.Cache.CatalogTTL, appMetrics, log)

	handler := httpRouter.NewHandler(fiatService, cryptoService, log, appMetrics)
	router := httpRouter.NewRouter(handler, log, appMetrics)
	routes := router.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      routes,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, cancelSweep := context.WithCancel(context.Background())
	go sweepCache(ctx, store, cfg.Cache.SweepInterval, log)

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	cancelSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}

// sweepCache periodically drops expired cache entries so the store does
// not accumulate dead keys between reads.
func sweepCache(ctx context.Context, store *cache.MemoryCache, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			store.ClearExpired(ctx)
		case <-ctx.Done():
			log.Info("Stopping cache sweep goroutine")
			return
		}
	}
}
