package repository

import (
	"context"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/Shrey0428/ExoticBill/pkg/pagination"
)

// BillFilter narrows a ledger query. Zero fields are ignored.
type BillFilter struct {
	From        *time.Time
	To          *time.Time
	BillingType enum.BillingType
	EmployeeCID string // substring match
	CustomerCID string // substring match
}

// BillRepository is the append-only sales ledger
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uint) (*entity.Bill, error)
	ListByEmployee(ctx context.Context, employeeCID string) ([]entity.Bill, error)
	ListByCustomer(ctx context.Context, customerCID string) ([]entity.Bill, error)
	// Query returns one page of bills matching filter, newest first, and the total match count
	Query(ctx context.Context, filter BillFilter, params *pagination.PaginationParams) ([]entity.Bill, int64, error)
	// QueryAll returns every bill matching filter, oldest first
	QueryAll(ctx context.Context, filter BillFilter) ([]entity.Bill, error)
	Delete(ctx context.Context, id uint) error

	CreateDeleted(ctx context.Context, deleted *entity.DeletedBill) error
	ListDeleted(ctx context.Context, params *pagination.PaginationParams) ([]entity.DeletedBill, int64, error)
}
