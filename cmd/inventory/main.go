package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/akaufmanis/shoestore/internal/config"
	"github.com/akaufmanis/shoestore/internal/console"
	filerepo "github.com/akaufmanis/shoestore/internal/repository/file"
	inventorysvc "github.com/akaufmanis/shoestore/internal/service/inventory"
	"github.com/akaufmanis/shoestore/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	baseLogger := logger.Must(logger.New(cfg.Logging.FilePath, level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	repo := filerepo.NewFileRepository(cfg.Inventory.FilePath, cfg.Inventory.BackupPath, baseLogger.Named("repo.file"))
	svc := inventorysvc.NewService(repo, baseLogger.Named("svc.inventory"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Load whatever is already on disk before the first menu; a missing or
	// unreadable file is not fatal at startup.
	if _, err := os.Stat(cfg.Inventory.FilePath); err == nil {
		if _, err := svc.Load(ctx); err != nil {
			baseLogger.Warn("initial inventory load failed", zap.Error(err))
		}
	}

	shell := console.NewShell(svc, os.Stdin, os.Stdout, baseLogger.Named("console"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		shell.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		fmt.Println("\nProgram terminated by user.")
	case <-done:
	}

	fmt.Println("\nExiting program.")
}
