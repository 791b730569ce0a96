package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/filmroom/media-backend/internal/convert"
	"github.com/filmroom/media-backend/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const (
	statusKeyPrefix = "convert:status:"
	statusTTL       = 30 * time.Second
)

type convertRedisRepo struct {
	redisClient *redis.Client
}

func NewConvertRedisRepo(redisClient *redis.Client) convert.RedisRepository {
	return &convertRedisRepo{
		redisClient: redisClient,
	}
}

func (r *convertRedisRepo) CacheStatus(ctx context.Context, update *models.JobStatusUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return errors.Wrap(err, "convertRedisRepo.CacheStatus.Marshal")
	}
	if err := r.redisClient.Set(ctx, statusKey(update.JobID), data, statusTTL).Err(); err != nil {
		return errors.Wrap(err, "convertRedisRepo.CacheStatus.Set")
	}
	return nil
}

func (r *convertRedisRepo) GetCachedStatus(ctx context.Context, jobID string) (*models.JobStatusUpdate, error) {
	data, err := r.redisClient.Get(ctx, statusKey(jobID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "convertRedisRepo.GetCachedStatus.Get")
	}
	update := &models.JobStatusUpdate{}
	if err := json.Unmarshal(data, update); err != nil {
		return nil, errors.Wrap(err, "convertRedisRepo.GetCachedStatus.Unmarshal")
	}
	return update, nil
}

func statusKey(jobID string) string {
	return fmt.Sprintf("%s%s", statusKeyPrefix, jobID)
}
