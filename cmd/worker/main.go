package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/filmroom/media-backend/internal/config"
	mediaRepository "github.com/filmroom/media-backend/internal/media/repository"
	"github.com/filmroom/media-backend/internal/thumbnail/generator"
	thumbnailWorker "github.com/filmroom/media-backend/internal/thumbnail/worker"
	"github.com/filmroom/media-backend/pkg/db/postgres"
	"github.com/filmroom/media-backend/pkg/logger"
	"github.com/hibiken/asynq"
)

func main() {
	log.Println("Starting thumbnail worker")
	configFile := "config.yml"
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}
	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	psqlDB, err := postgres.NewPsqlDB(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to db: %s", err)
	}
	defer psqlDB.Close()

	mediaRepo := mediaRepository.NewMediaRepo(psqlDB)
	gen := generator.NewFFmpegGenerator(cfg, appLogger)
	w := thumbnailWorker.NewWorker(mediaRepo, gen, appLogger)

	mux := asynq.NewServeMux()
	w.RegisterHandlers(mux)

	concurrency := cfg.Thumbnail.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.Redis.RedisAddr,
		Password: cfg.Redis.RedisPassword,
	}, asynq.Config{Concurrency: concurrency})

	go func() {
		if err := srv.Run(mux); err != nil {
			appLogger.Fatalf("worker failed: %v", err)
		}
	}()
	appLogger.Infof("Worker started with concurrency %d", concurrency)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	appLogger.Infof("shutting down worker")

	shutdownTimer := time.AfterFunc(30*time.Second, func() {
		appLogger.Warnf("shutdown timeout reached, exiting")
		os.Exit(1)
	})
	defer shutdownTimer.Stop()
	srv.Shutdown()
}
