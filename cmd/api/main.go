// Package main runs the PageTrail server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/pagetrail/pagetrail-server/internal/config"
	"github.com/pagetrail/pagetrail-server/internal/di"
	"github.com/pagetrail/pagetrail-server/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	injector := di.NewContainer()
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	cfg := do.MustInvoke[*config.Config](injector)
	log.Info("Server listening",
		"port", cfg.Server.Port,
		"cache_path", cfg.Data.CachePath,
		"remote_db_path", cfg.Data.RemoteDBPath,
	)

	<-ctx.Done()
	log.Info("Shutting down")

	// The HTTP server handle is shut down before the stores it depends on.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}
	log.Info("Server stopped")
}
