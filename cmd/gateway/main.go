package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eazybank/banking/internal/config"
	"github.com/eazybank/banking/internal/gateway"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	cfg := config.Load()

	r := gateway.NewRouter(cfg.Gateway, logger)

	serverAddr := fmt.Sprintf("%s:%s", cfg.Gateway.Host, cfg.Gateway.Port)
	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting api gateway",
			zap.String("address", serverAddr),
			zap.String("accounts_pool", cfg.Gateway.AccountsURL),
			zap.String("loans_pool", cfg.Gateway.LoansURL),
			zap.String("cards_pool", cfg.Gateway.CardsURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down gateway...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("gateway forced to shutdown", zap.Error(err))
	}

	logger.Info("gateway exited")
}
