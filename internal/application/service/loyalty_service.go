package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/billing"
	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"github.com/Shrey0428/ExoticBill/pkg/apperror"
	"github.com/shopspring/decimal"
)

// LoyaltyService accrues and adjusts customer loyalty points
type LoyaltyService struct {
	loyaltyRepo repository.LoyaltyRepository
	tx          repository.Transactor
	card        *billing.RateCard
	now         func() time.Time
}

// NewLoyaltyService creates a new loyalty service
func NewLoyaltyService(loyaltyRepo repository.LoyaltyRepository, tx repository.Transactor, card *billing.RateCard) *LoyaltyService {
	return &LoyaltyService{
		loyaltyRepo: loyaltyRepo,
		tx:          tx,
		card:        card,
		now:         time.Now,
	}
}

// AdjustPointsInput represents a change to a customer's balance
type AdjustPointsInput struct {
	CustomerCID string
	Delta       int64
	Reason      string
	BillID      *uint
}

// AdjustPoints applies delta to the balance, clamping at zero, and logs the change.
// A zero delta writes nothing and returns the current account, which may be nil.
func (s *LoyaltyService) AdjustPoints(ctx context.Context, input *AdjustPointsInput) (*entity.LoyaltyAccount, error) {
	customerCID := strings.TrimSpace(input.CustomerCID)
	if customerCID == "" {
		return nil, apperror.NewFieldError("customer_cid", "Customer CID is required")
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, apperror.NewFieldError("reason", "Reason is required")
	}

	if input.Delta == 0 {
		return s.loyaltyRepo.GetAccount(ctx, customerCID)
	}

	var account *entity.LoyaltyAccount
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		at := s.now().UTC()

		var err error
		account, err = s.loyaltyRepo.AddPoints(ctx, customerCID, input.Delta, at)
		if err != nil {
			return fmt.Errorf("update loyalty balance: %w", err)
		}

		err = s.loyaltyRepo.AppendHistory(ctx, &entity.LoyaltyHistory{
			CustomerCID: customerCID,
			Delta:       input.Delta,
			Reason:      reason,
			BillID:      input.BillID,
			CreatedAt:   at,
		})
		if err != nil {
			return fmt.Errorf("append loyalty history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// AwardForBill credits the points a bill earns and returns how many were credited
func (s *LoyaltyService) AwardForBill(ctx context.Context, bill *entity.Bill) (int64, error) {
	points := s.card.Points(bill.TotalAmount)
	if points == 0 {
		return 0, nil
	}

	billID := bill.ID
	_, err := s.AdjustPoints(ctx, &AdjustPointsInput{
		CustomerCID: bill.CustomerCID,
		Delta:       points,
		Reason:      fmt.Sprintf("%s bill #%d", bill.BillingType, bill.ID),
		BillID:      &billID,
	})
	if err != nil {
		return 0, err
	}
	return points, nil
}

// PointsFor previews the points an amount would earn
func (s *LoyaltyService) PointsFor(amount decimal.Decimal) int64 {
	return s.card.Points(amount)
}

// GetAccount returns the customer's balance, or nil if they never earned points
func (s *LoyaltyService) GetAccount(ctx context.Context, customerCID string) (*entity.LoyaltyAccount, error) {
	return s.loyaltyRepo.GetAccount(ctx, strings.TrimSpace(customerCID))
}

// History lists every balance change of a customer, newest first
func (s *LoyaltyService) History(ctx context.Context, customerCID string) ([]entity.LoyaltyHistory, error) {
	return s.loyaltyRepo.History(ctx, strings.TrimSpace(customerCID))
}
