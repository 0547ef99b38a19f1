package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-inventory-tracker/internal/bootstrap"
	"go-inventory-tracker/internal/config"
	"go-inventory-tracker/internal/routes"
	"go-inventory-tracker/internal/ws"
	"go-inventory-tracker/pkg/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	// 1. Load Env
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	appLog := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 2. Setup WebSocket Hub
	wsHub := ws.NewHub(appLog)
	go wsHub.Run(ctx)

	// 3. Setup stores, migrate, seed access control and wire services
	rt, err := bootstrap.Open(ctx, cfg, wsHub, appLog)
	if err != nil {
		appLog.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to initialise stores")
	}

	// 4. Setup Fiber
	app := routes.NewApp(routes.Deps{
		Inventory:      rt.Inventory,
		Dashboard:      rt.Dashboard,
		Auth:           rt.Auth,
		Reports:        rt.Reports,
		Roles:          rt.Roles,
		Privileges:     rt.Privileges,
		Hub:            wsHub,
		Log:            appLog,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})

	// 5. Graceful Shutdown
	go func() {
		appLog.Info().Str("port", cfg.Port).Str("driver", cfg.StoreDriver).Msg("server starting")
		if err := app.Listen(":" + cfg.Port); err != nil {
			appLog.Fatal().Err(err).Msg("server stopped")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info().Msg("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLog.Error().Err(err).Msg("server forced to shutdown")
	}
	stop()

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rt.Close(closeCtx); err != nil {
		appLog.Error().Err(err).Msg("closing stores")
	}
	appLog.Info().Msg("server exited")
}
