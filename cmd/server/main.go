package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davidmesa/ventrack/internal/api"
	"github.com/davidmesa/ventrack/internal/cache"
	"github.com/davidmesa/ventrack/internal/config"
	"github.com/davidmesa/ventrack/internal/repository"
	"github.com/davidmesa/ventrack/internal/repository/memory"
	"github.com/davidmesa/ventrack/internal/repository/postgres"
	"github.com/davidmesa/ventrack/internal/service"
	"github.com/davidmesa/ventrack/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.Setup(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	clients, sales, expenses, ledgers, err := buildStores(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to initialize storage")
	}

	dashCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to initialize dashboard cache")
	}

	services := &api.Services{
		Clients:   service.NewClientService(clients),
		Sales:     service.NewSaleService(sales, clients, dashCache),
		Expenses:  service.NewExpenseService(expenses, dashCache),
		Dashboard: service.NewDashboardService(ledgers, dashCache),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).
			Str("storage", cfg.Storage.Driver).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Log.Info().Msg("server exiting")
}

func buildStores(cfg *config.Config) (repository.ClientRepository, repository.SaleRepository, repository.ExpenseRepository, repository.LedgerReader, error) {
	switch cfg.Storage.Driver {
	case "memory":
		store := memory.NewStore()
		return store, store, store, store, nil
	case "postgres":
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.EnsureSchema(context.Background()); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("failed to ensure schema: %w", err)
		}
		return postgres.NewClientRepository(db),
			postgres.NewSaleRepository(db),
			postgres.NewExpenseRepository(db),
			postgres.NewLedgerReader(db),
			nil
	default:
		return nil, nil, nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
