package repository

import (
	"context"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and the caller's username
	GetByKey(ctx context.Context, key, username string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes keys that expired before now
	DeleteExpired(ctx context.Context, now time.Time) error
}
