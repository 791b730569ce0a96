package main

import (
	"log"

	"github.com/filmroom/media-backend/internal/config"
	"github.com/filmroom/media-backend/internal/server"
	"github.com/filmroom/media-backend/internal/thumbnail/task"
	"github.com/filmroom/media-backend/pkg/db/aws"
	"github.com/filmroom/media-backend/pkg/db/postgres"
	"github.com/filmroom/media-backend/pkg/db/redis"
	"github.com/filmroom/media-backend/pkg/logger"
)

func main() {
	log.Println("Starting api server")
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
	appLogger.Infof("db connected, status: %#v", psqlDB.Stats())
	defer psqlDB.Close()

	redisClient, err := redis.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to redis: %s", err)
	}
	appLogger.Infof("redis connected")
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

	s := server.NewServer(cfg, psqlDB, redisClient, s3Client, presignClient, mcClient, dispatcher, appLogger)
	if err = s.Run(); err != nil {
		appLogger.Infof("could not start server: %s", err)
	}
}
