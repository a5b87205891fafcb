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

type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) domainRepo.MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Get(ctx context.Context, customerCID string) (*entity.Membership, error) {
	var m entity.Membership
	err := conn(ctx, r.db).First(&m, "customer_cid = ?", customerCID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &m, err
}

func (r *membershipRepository) Upsert(ctx context.Context, membership *entity.Membership) error {
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_cid"}},
		DoUpdates: clause.AssignmentColumns([]string{"tier", "activated_at"}),
	}).Create(membership).Error
}

func (r *membershipRepository) ListActivatedSince(ctx context.Context, since time.Time) ([]entity.Membership, error) {
	var memberships []entity.Membership
	err := conn(ctx, r.db).
		Where("activated_at >= ?", since).
		Order("activated_at DESC").
		Find(&memberships).Error
	return memberships, err
}

func (r *membershipRepository) CountActivatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Membership{}).
		Where("activated_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *membershipRepository) ListActivatedBefore(ctx context.Context, cutoff time.Time) ([]entity.Membership, error) {
	var memberships []entity.Membership
	err := conn(ctx, r.db).
		Where("activated_at < ?", cutoff).
		Order("activated_at ASC").
		Find(&memberships).Error
	return memberships, err
}

func (r *membershipRepository) DeleteIfUnchanged(ctx context.Context, customerCID string, activatedAt time.Time) (bool, error) {
	result := conn(ctx, r.db).
		Where("customer_cid = ? AND activated_at = ?", customerCID, activatedAt).
		Delete(&entity.Membership{})
	return result.RowsAffected > 0, result.Error
}

func (r *membershipRepository) AppendHistory(ctx context.Context, history *entity.MembershipHistory) error {
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_cid"}, {Name: "activated_at"}},
		DoNothing: true,
	}).Create(history).Error
}

func (r *membershipRepository) History(ctx context.Context, customerCID string) ([]entity.MembershipHistory, error) {
	var history []entity.MembershipHistory
	err := conn(ctx, r.db).
		Where("customer_cid = ?", customerCID).
		Order("activated_at DESC").
		Find(&history).Error
	return history, err
}
