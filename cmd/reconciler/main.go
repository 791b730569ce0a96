package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	convertRepository "github.com/filmroom/media-backend/internal/convert/repository"
	convertUsecase "github.com/filmroom/media-backend/internal/convert/usecase"
	mediaRepository "github.com/filmroom/media-backend/internal/media/repository"
	uploadRepository "github.com/filmroom/media-backend/internal/upload/repository"
	uploadUsecase "github.com/filmroom/media-backend/internal/upload/usecase"

	"github.com/filmroom/media-backend/internal/config"
	"github.com/filmroom/media-backend/internal/thumbnail/task"
	"github.com/filmroom/media-backend/pkg/db/aws"
	"github.com/filmroom/media-backend/pkg/db/postgres"
	"github.com/filmroom/media-backend/pkg/db/redis"
	"github.com/filmroom/media-backend/pkg/logger"
)

func main() {
	log.Println("Starting reconciler")
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

	redisClient, err := redis.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to redis: %s", err)
	}
	defer redisClient.Close()

	s3Client, presignClient, err := aws.NewS3Client(cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		appLogger.Fatalf("could not connect to s3: %s", err)
	}
	mcClient, err := aws.NewMediaConvertClient(cfg.MediaConvert.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		appLogger.Fatalf("could not connect to mediaconvert: %s", err)
	}

	dispatcher := task.NewDispatcher(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword)
	defer dispatcher.Close()

	mediaRepo := mediaRepository.NewMediaRepo(psqlDB)
	jobRepo := convertRepository.NewConvertRepo(psqlDB)
	jobRedisRepo := convertRepository.NewConvertRedisRepo(redisClient)
	transcoder := convertRepository.NewMediaConvertTranscoder(cfg, mcClient)
	convertUC := convertUsecase.NewConvertUseCase(cfg, jobRepo, mediaRepo, jobRedisRepo, transcoder, dispatcher, appLogger)

	sessionRepo := uploadRepository.NewSessionRepo(psqlDB)
	storageRepo := uploadRepository.NewS3Repository(cfg.S3.Bucket, s3Client, presignClient)
	uploadUC := uploadUsecase.NewUploadUseCase(cfg, sessionRepo, storageRepo, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Infof("shutting down reconciler")
		cancel()
	}()

	pollTicker := time.NewTicker(cfg.Poller.Interval())
	defer pollTicker.Stop()
	reapTicker := time.NewTicker(cfg.Poller.ReapInterval())
	defer reapTicker.Stop()

	appLogger.Infof("Polling active jobs every %s, reaping stale sessions every %s", cfg.Poller.Interval(), cfg.Poller.ReapInterval())
	for {
		select {
		case <-ctx.Done():
			return
		case <-pollTicker.C:
			updates, err := convertUC.PollActiveJobs(ctx)
			if err != nil {
				appLogger.Errorf("PollActiveJobs: %v", err)
				continue
			}
			if len(updates) > 0 {
				appLogger.Infof("Polled %d active jobs", len(updates))
			}
		case <-reapTicker.C:
			reaped, err := uploadUC.ReapExpiredSessions(ctx, cfg.Upload.SessionTTL())
			if err != nil {
				appLogger.Errorf("ReapExpiredSessions: %v", err)
				continue
			}
			if reaped > 0 {
				appLogger.Infof("Reaped %d stale upload sessions", reaped)
			}
		}
	}
}
