package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	domainRepo "github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key, username string) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := conn(ctx, r.db).
		Where("key = ? AND username = ?", key, username).
		First(&ikey).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ikey, err
}

// Create stores the key, taking over a row for the same key and user once it
// has expired. A live row is left as it is.
func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}, {Name: "username"}},
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "idempotency_keys.expires_at < NOW()"},
		}},
		DoUpdates: clause.AssignmentColumns([]string{
			"endpoint", "request_hash", "response_code", "response_body", "created_at", "expires_at",
		}),
	}).Create(ikey).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	return conn(ctx, r.db).
		Where("expires_at < ?", now).
		Delete(&entity.IdempotencyKey{}).Error
}
