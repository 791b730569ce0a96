package http

import (
	"net/http"

	"github.com/filmroom/media-backend/internal/convert"
	"github.com/filmroom/media-backend/internal/models"
	"github.com/filmroom/media-backend/pkg/httpErrors"
	"github.com/filmroom/media-backend/pkg/logger"
	"github.com/filmroom/media-backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type convertHandler struct {
	convertUC convert.UseCase
	logger    logger.Logger
}

func NewConvertHandler(convertUC convert.UseCase, log logger.Logger) convert.Handler {
	return &convertHandler{
		convertUC: convertUC,
		logger:    log,
	}
}

func (h *convertHandler) CreateJobs() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.CreateJobsInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(httpErrors.ErrorResponse(httpErrors.NewBadRequestError("invalid request payload")))
		}
		jobIDs, err := h.convertUC.CreateJobsFromUpload(c.Request().Context(), input)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"job_ids": jobIDs,
		})
	}
}

func (h *convertHandler) GetJobStatus() echo.HandlerFunc {
	return func(c echo.Context) error {
		jobID := c.Param("job_id")
		if jobID == "" {
			return c.JSON(httpErrors.ErrorResponse(httpErrors.NewBadRequestError("job id is required")))
		}
		update, err := h.convertUC.GetJobStatus(c.Request().Context(), jobID)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, update)
	}
}

func (h *convertHandler) ListJobs() echo.HandlerFunc {
	return func(c echo.Context) error {
		pq, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(httpErrors.NewBadRequestError(err.Error())))
		}
		filter := &models.JobFilter{
			Status:  c.QueryParam("status"),
			MediaID: c.QueryParam("media_id"),
		}
		jobs, err := h.convertUC.ListJobs(c.Request().Context(), filter, pq)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, jobs)
	}
}

func (h *convertHandler) PollStatus() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &pollStatusInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(httpErrors.ErrorResponse(httpErrors.NewBadRequestError("invalid request payload")))
		}
		updates, err := h.convertUC.PollStatus(c.Request().Context(), input.JobIDs)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"jobs": updates,
		})
	}
}

func (h *convertHandler) CancelJob() echo.HandlerFunc {
	return func(c echo.Context) error {
		jobID := c.Param("job_id")
		if jobID == "" {
			return c.JSON(httpErrors.ErrorResponse(httpErrors.NewBadRequestError("job id is required")))
		}
		job, err := h.convertUC.Cancel(c.Request().Context(), jobID)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, job)
	}
}

func (h *convertHandler) GenerateThumbnail() echo.HandlerFunc {
	return func(c echo.Context) error {
		mediaID, err := uuid.Parse(c.Param("media_id"))
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(httpErrors.NewBadRequestError("invalid media id")))
		}
		if err := h.convertUC.GenerateThumbnail(c.Request().Context(), mediaID); err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusAccepted, map[string]string{
			"message": "thumbnail generation queued",
		})
	}
}

type pollStatusInput struct {
	JobIDs []string `json:"job_ids"`
}
