package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shrey0428/ExoticBill/internal/domain/billing"
	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"github.com/Shrey0428/ExoticBill/pkg/apperror"
)

// EmployeeService handles employee-related operations
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	hoodRepo     repository.HoodRepository
	cache        ReportCache
	card         *billing.RateCard
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(
	employeeRepo repository.EmployeeRepository,
	hoodRepo repository.HoodRepository,
	cache ReportCache,
	card *billing.RateCard,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		hoodRepo:     hoodRepo,
		cache:        cache,
		card:         card,
	}
}

// CreateEmployeeInput represents the create employee input
type CreateEmployeeInput struct {
	CID  string
	Name string
	Rank enum.Rank
	Hood string
}

// CreateEmployee adds an employee; an existing CID is rejected, never overwritten
func (s *EmployeeService) CreateEmployee(ctx context.Context, input *CreateEmployeeInput) (*entity.Employee, error) {
	employee := &entity.Employee{
		CID:  strings.TrimSpace(input.CID),
		Name: strings.TrimSpace(input.Name),
		Rank: input.Rank.Normalize(),
		Hood: strings.TrimSpace(input.Hood),
	}
	if employee.Rank == "" {
		employee.Rank = s.card.LowestRank()
	}
	if employee.Hood == "" {
		employee.Hood = entity.UnassignedHood
	}

	var fieldErrors []apperror.FieldError
	if employee.CID == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "cid", Message: "CID is required"})
	}
	if employee.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if !s.card.HasRank(employee.Rank) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "rank", Message: fmt.Sprintf("Unknown rank %q", employee.Rank)})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if err := s.requireHood(ctx, employee.Hood); err != nil {
		return nil, err
	}

	existing, err := s.employeeRepo.GetByCID(ctx, employee.CID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Employee with this CID already exists")
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("Employee with this CID already exists")
		}
		return nil, err
	}

	invalidateReports(ctx, s.cache)
	return employee, nil
}

// GetEmployee retrieves an employee by CID
func (s *EmployeeService) GetEmployee(ctx context.Context, cid string) (*entity.Employee, error) {
	employee, err := s.employeeRepo.GetByCID(ctx, strings.TrimSpace(cid))
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}
	return employee, nil
}

// ListEmployees lists employees, optionally only those of one hood
func (s *EmployeeService) ListEmployees(ctx context.Context, hood string) ([]entity.Employee, error) {
	return s.employeeRepo.List(ctx, strings.TrimSpace(hood))
}

// UpdateEmployeeInput represents the update employee input
type UpdateEmployeeInput struct {
	CID  string
	Name *string
	Rank *enum.Rank
}

// UpdateEmployee changes an employee's name or rank
func (s *EmployeeService) UpdateEmployee(ctx context.Context, input *UpdateEmployeeInput) (*entity.Employee, error) {
	employee, err := s.GetEmployee(ctx, input.CID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewFieldError("name", "Name cannot be empty")
		}
		employee.Name = name
	}
	if input.Rank != nil {
		rank := input.Rank.Normalize()
		if !s.card.HasRank(rank) {
			return nil, apperror.NewFieldError("rank", fmt.Sprintf("Unknown rank %q", rank))
		}
		employee.Rank = rank
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}

	invalidateReports(ctx, s.cache)
	return employee, nil
}

// AssignHood moves an employee into an existing hood
func (s *EmployeeService) AssignHood(ctx context.Context, cid, hood string) (*entity.Employee, error) {
	hood = strings.TrimSpace(hood)
	if hood == "" {
		hood = entity.UnassignedHood
	}

	employee, err := s.GetEmployee(ctx, cid)
	if err != nil {
		return nil, err
	}
	if err := s.requireHood(ctx, hood); err != nil {
		return nil, err
	}

	employee.Hood = hood
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}

	invalidateReports(ctx, s.cache)
	return employee, nil
}

// DeleteEmployee removes an employee; their bills keep the CID
func (s *EmployeeService) DeleteEmployee(ctx context.Context, cid string) error {
	employee, err := s.GetEmployee(ctx, cid)
	if err != nil {
		return err
	}
	if err := s.employeeRepo.Delete(ctx, employee.CID); err != nil {
		return err
	}

	invalidateReports(ctx, s.cache)
	return nil
}

func (s *EmployeeService) requireHood(ctx context.Context, name string) error {
	hood, err := s.hoodRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if hood == nil {
		return apperror.NewFieldError("hood", fmt.Sprintf("Unknown hood %q", name))
	}
	return nil
}
