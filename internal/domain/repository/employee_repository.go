package repository

import (
	"context"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
)

// EmployeeRepository defines the interface for employee data operations
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByCID(ctx context.Context, cid string) (*entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	Delete(ctx context.Context, cid string) error
	// List returns employees ordered by name; an empty hood returns everyone
	List(ctx context.Context, hood string) ([]entity.Employee, error)
	// ReassignHood moves every employee of one hood into another
	ReassignHood(ctx context.Context, from, to string) error
}

// HoodRepository defines the interface for hood data operations
type HoodRepository interface {
	Create(ctx context.Context, hood *entity.Hood) error
	GetByName(ctx context.Context, name string) (*entity.Hood, error)
	List(ctx context.Context) ([]entity.Hood, error)
	Delete(ctx context.Context, name string) error
}
