package repository

import (
	"context"
	"errors"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	domainRepo "github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"github.com/Shrey0428/ExoticBill/pkg/pagination"
	"gorm.io/gorm"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return conn(ctx, r.db).Create(bill).Error
}

func (r *billRepository) GetByID(ctx context.Context, id uint) (*entity.Bill, error) {
	var bill entity.Bill
	err := conn(ctx, r.db).First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) ListByEmployee(ctx context.Context, employeeCID string) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := conn(ctx, r.db).
		Where("employee_cid = ?", employeeCID).
		Order("billed_at DESC, id DESC").
		Find(&bills).Error
	return bills, err
}

func (r *billRepository) ListByCustomer(ctx context.Context, customerCID string) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := conn(ctx, r.db).
		Where("customer_cid = ?", customerCID).
		Order("billed_at DESC, id DESC").
		Find(&bills).Error
	return bills, err
}

func (r *billRepository) Query(ctx context.Context, filter domainRepo.BillFilter, params *pagination.PaginationParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := conn(ctx, r.db).Model(&entity.Bill{}).Scopes(BillFilterScope(filter))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("billed_at DESC, id DESC").
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepository) QueryAll(ctx context.Context, filter domainRepo.BillFilter) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := conn(ctx, r.db).
		Scopes(BillFilterScope(filter)).
		Order("billed_at ASC, id ASC").
		Find(&bills).Error
	return bills, err
}

func (r *billRepository) Delete(ctx context.Context, id uint) error {
	return conn(ctx, r.db).Delete(&entity.Bill{}, "id = ?", id).Error
}

func (r *billRepository) CreateDeleted(ctx context.Context, deleted *entity.DeletedBill) error {
	return conn(ctx, r.db).Create(deleted).Error
}

func (r *billRepository) ListDeleted(ctx context.Context, params *pagination.PaginationParams) ([]entity.DeletedBill, int64, error) {
	var deleted []entity.DeletedBill
	var total int64

	query := conn(ctx, r.db).Model(&entity.DeletedBill{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("deleted_at DESC").
		Find(&deleted).Error

	return deleted, total, err
}
