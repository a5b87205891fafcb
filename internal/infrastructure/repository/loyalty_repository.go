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

type loyaltyRepository struct {
	db *gorm.DB
}

// NewLoyaltyRepository creates a new loyalty repository
func NewLoyaltyRepository(db *gorm.DB) domainRepo.LoyaltyRepository {
	return &loyaltyRepository{db: db}
}

func (r *loyaltyRepository) GetAccount(ctx context.Context, customerCID string) (*entity.LoyaltyAccount, error) {
	var account entity.LoyaltyAccount
	err := conn(ctx, r.db).First(&account, "customer_cid = ?", customerCID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &account, err
}

func (r *loyaltyRepository) AddPoints(ctx context.Context, customerCID string, delta int64, at time.Time) (*entity.LoyaltyAccount, error) {
	account := entity.LoyaltyAccount{
		CustomerCID: customerCID,
		Points:      max(delta, 0),
		UpdatedAt:   at,
	}

	// single statement so concurrent adjustments cannot lose updates
	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "customer_cid"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"points":     gorm.Expr("GREATEST(loyalty_accounts.points + ?, 0)", delta),
			"updated_at": at,
		}),
	}).Create(&account).Error
	if err != nil {
		return nil, err
	}

	return r.GetAccount(ctx, customerCID)
}

func (r *loyaltyRepository) AppendHistory(ctx context.Context, history *entity.LoyaltyHistory) error {
	return conn(ctx, r.db).Create(history).Error
}

func (r *loyaltyRepository) History(ctx context.Context, customerCID string) ([]entity.LoyaltyHistory, error) {
	var history []entity.LoyaltyHistory
	err := conn(ctx, r.db).
		Where("customer_cid = ?", customerCID).
		Order("created_at DESC, id DESC").
		Find(&history).Error
	return history, err
}
