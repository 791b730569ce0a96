package server

import (
	"net/http"

	convertHttp "github.com/filmroom/media-backend/internal/convert/delivery/http"
	convertRepository "github.com/filmroom/media-backend/internal/convert/repository"
	convertUsecase "github.com/filmroom/media-backend/internal/convert/usecase"
	mediaHttp "github.com/filmroom/media-backend/internal/media/delivery/http"
	mediaRepository "github.com/filmroom/media-backend/internal/media/repository"
	mediaUsecase "github.com/filmroom/media-backend/internal/media/usecase"
	"github.com/filmroom/media-backend/internal/middleware"
	uploadHttp "github.com/filmroom/media-backend/internal/upload/delivery/http"
	uploadRepository "github.com/filmroom/media-backend/internal/upload/repository"
	uploadUsecase "github.com/filmroom/media-backend/internal/upload/usecase"
	"github.com/filmroom/media-backend/pkg/utils"
	"github.com/labstack/echo/v4"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	sessionRepo := uploadRepository.NewSessionRepo(s.db)
	storageRepo := uploadRepository.NewS3Repository(s.cfg.S3.Bucket, s.s3Client, s.preSignClient)
	mediaRepo := mediaRepository.NewMediaRepo(s.db)
	jobRepo := convertRepository.NewConvertRepo(s.db)
	jobRedisRepo := convertRepository.NewConvertRedisRepo(s.redisClient)
	transcoder := convertRepository.NewMediaConvertTranscoder(s.cfg, s.mcClient)

	uploadUC := uploadUsecase.NewUploadUseCase(s.cfg, sessionRepo, storageRepo, s.logger)
	convertUC := convertUsecase.NewConvertUseCase(s.cfg, jobRepo, mediaRepo, jobRedisRepo, transcoder, s.dispatcher, s.logger)
	mediaUC := mediaUsecase.NewMediaUseCase(mediaRepo, storageRepo, s.logger)

	uploadHandlers := uploadHttp.NewUploadHandler(uploadUC, s.logger)
	convertHandlers := convertHttp.NewConvertHandler(convertUC, s.logger)
	mediaHandlers := mediaHttp.NewMediaHandler(mediaUC, s.logger)

	mw := middleware.NewMiddlewareManager(s.cfg, []string{"*"}, s.logger)
	e.Use(mw.RequestLoggerMiddleware)

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	uploadGroup := v1.Group("/upload")
	convertGroup := v1.Group("/convert")
	mediaGroup := v1.Group("/media")

	uploadHttp.MapUploadRoutes(uploadGroup, uploadHandlers)
	convertHttp.MapConvertRoutes(convertGroup, convertHandlers)
	mediaHttp.MapMediaRoutes(mediaGroup, mediaHandlers)

	e.Static("/thumbnails", s.cfg.Thumbnail.Dir)

	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	return nil
}
