package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"github.com/Shrey0428/ExoticBill/pkg/apperror"
	"github.com/Shrey0428/ExoticBill/pkg/pagination"
)

// BillService reads the ledger and performs audited deletes
type BillService struct {
	billRepo repository.BillRepository
	tx       repository.Transactor
	cache    ReportCache
	now      func() time.Time
}

// NewBillService creates a new bill service
func NewBillService(billRepo repository.BillRepository, tx repository.Transactor, cache ReportCache) *BillService {
	return &BillService{
		billRepo: billRepo,
		tx:       tx,
		cache:    cache,
		now:      time.Now,
	}
}

// GetBill retrieves a bill by ID
func (s *BillService) GetBill(ctx context.Context, id uint) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListForEmployee returns an employee's bills, newest first
func (s *BillService) ListForEmployee(ctx context.Context, employeeCID string) ([]entity.Bill, error) {
	return s.billRepo.ListByEmployee(ctx, strings.TrimSpace(employeeCID))
}

// ListForCustomer returns a customer's bills, newest first
func (s *BillService) ListForCustomer(ctx context.Context, customerCID string) ([]entity.Bill, error) {
	return s.billRepo.ListByCustomer(ctx, strings.TrimSpace(customerCID))
}

// QueryBills returns one page of the filtered ledger
func (s *BillService) QueryBills(ctx context.Context, filter repository.BillFilter, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Bill], error) {
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, apperror.NewFieldError("to", "End of range must be after its start")
	}

	params.Validate()
	bills, total, err := s.billRepo.Query(ctx, filter, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}

// DeleteBillInput represents an audited delete
type DeleteBillInput struct {
	ID        uint
	DeletedBy string
	Reason    string
}

// DeleteBill moves a bill into the audit table, recording who removed it and why.
// The copy and the delete commit together.
func (s *BillService) DeleteBill(ctx context.Context, input *DeleteBillInput) (*entity.DeletedBill, error) {
	deletedBy := strings.TrimSpace(input.DeletedBy)
	if deletedBy == "" {
		return nil, apperror.ErrUnauthorized
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, apperror.NewFieldError("reason", "A reason is required to delete a bill")
	}

	var deleted *entity.DeletedBill
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		bill, err := s.billRepo.GetByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if bill == nil {
			return apperror.NewNotFoundError("Bill")
		}

		snapshot, err := json.Marshal(bill)
		if err != nil {
			return fmt.Errorf("snapshot bill %d: %w", bill.ID, err)
		}

		deleted = entity.NewDeletedBill(bill, deletedBy, reason, s.now().UTC(), snapshot)
		if err := s.billRepo.CreateDeleted(ctx, deleted); err != nil {
			return fmt.Errorf("audit bill %d: %w", bill.ID, err)
		}
		if err := s.billRepo.Delete(ctx, bill.ID); err != nil {
			return fmt.Errorf("delete bill %d: %w", bill.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateReports(ctx, s.cache)
	return deleted, nil
}

// ListDeleted returns one page of the delete audit trail, newest first
func (s *BillService) ListDeleted(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.DeletedBill], error) {
	params.Validate()
	deleted, total, err := s.billRepo.ListDeleted(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(deleted, pag), nil
}
