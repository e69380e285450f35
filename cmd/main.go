package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tempScraper/internal/cli"
	"tempScraper/internal/config"
	"tempScraper/internal/database"
	"tempScraper/internal/logger"
	"tempScraper/internal/migrations"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logger.Env, cfg.Logger.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	var repo *database.RunRepository
	if cfg.Database.Enabled() {
		if err := migrations.Run(cfg, log); err != nil {
			log.Error("Ошибка миграций", zap.Error(err))
			return 1
		}

		db, err := database.New(cfg, log)
		if err != nil {
			log.Error("Ошибка подключения к БД", zap.Error(err))
			return 1
		}
		defer db.Close(log)

		repo = database.NewRunRepository(db.DB)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.New(cfg, log, repo).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, cli.ErrChecksFailed) {
			log.Error("Команда завершилась ошибкой", zap.Error(err))
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
