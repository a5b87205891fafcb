package repository

import (
	"context"
	"errors"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	domainRepo "github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"github.com/Shrey0428/ExoticBill/pkg/pagination"
	"gorm.io/gorm"
)

type shiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *gorm.DB) domainRepo.ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) Create(ctx context.Context, shift *entity.Shift) error {
	return conn(ctx, r.db).Create(shift).Error
}

func (r *shiftRepository) Update(ctx context.Context, shift *entity.Shift) error {
	return conn(ctx, r.db).Save(shift).Error
}

func (r *shiftRepository) GetOpen(ctx context.Context, employeeCID string) (*entity.Shift, error) {
	var shift entity.Shift
	err := conn(ctx, r.db).
		Where("employee_cid = ? AND clock_out IS NULL", employeeCID).
		First(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shift, err
}

func (r *shiftRepository) ListOpen(ctx context.Context) ([]entity.Shift, error) {
	var shifts []entity.Shift
	err := conn(ctx, r.db).
		Where("clock_out IS NULL").
		Order("clock_in ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepository) List(ctx context.Context, employeeCID string, params *pagination.PaginationParams) ([]entity.Shift, int64, error) {
	var shifts []entity.Shift
	var total int64

	query := conn(ctx, r.db).Model(&entity.Shift{})
	if employeeCID != "" {
		query = query.Where("employee_cid = ?", employeeCID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("clock_in DESC").
		Find(&shifts).Error

	return shifts, total, err
}
