package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"github.com/Shrey0428/ExoticBill/pkg/apperror"
)

// HoodService manages the teams employees are grouped into
type HoodService struct {
	hoodRepo     repository.HoodRepository
	employeeRepo repository.EmployeeRepository
	tx           repository.Transactor
	cache        ReportCache
}

// NewHoodService creates a new hood service
func NewHoodService(
	hoodRepo repository.HoodRepository,
	employeeRepo repository.EmployeeRepository,
	tx repository.Transactor,
	cache ReportCache,
) *HoodService {
	return &HoodService{
		hoodRepo:     hoodRepo,
		employeeRepo: employeeRepo,
		tx:           tx,
		cache:        cache,
	}
}

// ListHoods returns every hood by name
func (s *HoodService) ListHoods(ctx context.Context) ([]entity.Hood, error) {
	return s.hoodRepo.List(ctx)
}

// CreateHood adds a hood
func (s *HoodService) CreateHood(ctx context.Context, name string) (*entity.Hood, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "Name is required")
	}

	hood := &entity.Hood{Name: name}
	if err := s.hoodRepo.Create(ctx, hood); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("Hood already exists")
		}
		return nil, err
	}

	invalidateReports(ctx, s.cache)
	return hood, nil
}

// DeleteHood removes a hood and moves its employees back to unassigned
func (s *HoodService) DeleteHood(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == entity.UnassignedHood {
		return apperror.NewBadRequestError("The unassigned hood cannot be deleted")
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		hood, err := s.hoodRepo.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if hood == nil {
			return apperror.NewNotFoundError("Hood")
		}
		if err := s.employeeRepo.ReassignHood(ctx, name, entity.UnassignedHood); err != nil {
			return err
		}
		return s.hoodRepo.Delete(ctx, name)
	})
	if err != nil {
		return err
	}

	invalidateReports(ctx, s.cache)
	return nil
}
