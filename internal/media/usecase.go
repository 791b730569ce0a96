package media

import (
	"context"

	"github.com/google/uuid"
)

type UseCase interface {
	Delete(ctx context.Context, mediaID uuid.UUID) error
}
