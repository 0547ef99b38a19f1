package main

import (
	"context"
	"fmt"
	"os"

	"go-inventory-tracker/internal/bootstrap"
	"go-inventory-tracker/internal/cli"
	"go-inventory-tracker/internal/config"
	"go-inventory-tracker/internal/service"
	"go-inventory-tracker/pkg/logger"
)

func main() {
	open := func(ctx context.Context) (*bootstrap.Runtime, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		// diagnostics go to stderr so --format json output stays parseable
		log := logger.NewWithWriter(os.Stderr, cfg.LogLevel, "console")
		return bootstrap.Open(ctx, cfg, service.NopNotifier, log)
	}

	if err := cli.NewRootCommand(open).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
