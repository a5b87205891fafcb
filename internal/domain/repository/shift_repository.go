package repository

import (
	"context"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"github.com/Shrey0428/ExoticBill/pkg/pagination"
)

// ShiftRepository defines the interface for shift data operations
type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.Shift) error
	Update(ctx context.Context, shift *entity.Shift) error
	// GetOpen returns the employee's shift without a clock-out, or nil
	GetOpen(ctx context.Context, employeeCID string) (*entity.Shift, error)
	ListOpen(ctx context.Context) ([]entity.Shift, error)
	// List returns shifts newest first; an empty employeeCID returns everyone's
	List(ctx context.Context, employeeCID string, params *pagination.PaginationParams) ([]entity.Shift, int64, error)
}
