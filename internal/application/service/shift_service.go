package service

import (
	"context"
	"strings"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"github.com/Shrey0428/ExoticBill/pkg/apperror"
	"github.com/Shrey0428/ExoticBill/pkg/pagination"
)

// ShiftService clocks employees in and out
type ShiftService struct {
	shiftRepo    repository.ShiftRepository
	employeeRepo repository.EmployeeRepository
	tx           repository.Transactor
	now          func() time.Time
}

// NewShiftService creates a new shift service
func NewShiftService(shiftRepo repository.ShiftRepository, employeeRepo repository.EmployeeRepository, tx repository.Transactor) *ShiftService {
	return &ShiftService{
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		tx:           tx,
		now:          time.Now,
	}
}

// ClockIn opens a shift; an employee can hold only one open shift
func (s *ShiftService) ClockIn(ctx context.Context, employeeCID string) (*entity.Shift, error) {
	employeeCID = strings.TrimSpace(employeeCID)
	if employeeCID == "" {
		return nil, apperror.NewFieldError("employee_cid", "Employee CID is required")
	}

	var shift *entity.Shift
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		employee, err := s.employeeRepo.GetByCID(ctx, employeeCID)
		if err != nil {
			return err
		}
		if employee == nil {
			return apperror.NewNotFoundError("Employee")
		}

		open, err := s.shiftRepo.GetOpen(ctx, employeeCID)
		if err != nil {
			return err
		}
		if open != nil {
			return apperror.NewConflictError("Employee is already clocked in")
		}

		shift = &entity.Shift{
			EmployeeCID: employeeCID,
			ClockIn:     s.now().UTC(),
		}
		return s.shiftRepo.Create(ctx, shift)
	})
	if err != nil {
		return nil, err
	}
	return shift, nil
}

// ClockOutOutput is a closed shift and its length
type ClockOutOutput struct {
	Shift    *entity.Shift `json:"shift"`
	Duration string        `json:"duration"`
	Minutes  int64         `json:"minutes"`
}

// ClockOut closes the employee's open shift
func (s *ShiftService) ClockOut(ctx context.Context, employeeCID string) (*ClockOutOutput, error) {
	employeeCID = strings.TrimSpace(employeeCID)
	if employeeCID == "" {
		return nil, apperror.NewFieldError("employee_cid", "Employee CID is required")
	}

	var out *ClockOutOutput
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		open, err := s.shiftRepo.GetOpen(ctx, employeeCID)
		if err != nil {
			return err
		}
		if open == nil {
			return apperror.NewConflictError("Employee is not clocked in")
		}

		clockOut := s.now().UTC()
		open.ClockOut = &clockOut
		if err := s.shiftRepo.Update(ctx, open); err != nil {
			return err
		}

		d := open.Duration(clockOut)
		out = &ClockOutOutput{
			Shift:    open,
			Duration: d.Truncate(time.Second).String(),
			Minutes:  int64(d / time.Minute),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListShifts returns shifts newest first, optionally for one employee
func (s *ShiftService) ListShifts(ctx context.Context, employeeCID string, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Shift], error) {
	params.Validate()
	shifts, total, err := s.shiftRepo.List(ctx, strings.TrimSpace(employeeCID), params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(shifts, pag), nil
}

// OpenShifts lists everyone currently clocked in
func (s *ShiftService) OpenShifts(ctx context.Context) ([]entity.Shift, error) {
	return s.shiftRepo.ListOpen(ctx)
}
