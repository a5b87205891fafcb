package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/billing"
	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"github.com/Shrey0428/ExoticBill/pkg/apperror"
	"github.com/shopspring/decimal"
)

// BillingService prices a sale and writes it to the ledger
type BillingService struct {
	billRepo       repository.BillRepository
	employeeRepo   repository.EmployeeRepository
	membershipRepo repository.MembershipRepository
	loyalty        *LoyaltyService
	tx             repository.Transactor
	cache          ReportCache
	card           *billing.RateCard
	now            func() time.Time
}

// NewBillingService creates a new billing service
func NewBillingService(
	billRepo repository.BillRepository,
	employeeRepo repository.EmployeeRepository,
	membershipRepo repository.MembershipRepository,
	loyalty *LoyaltyService,
	tx repository.Transactor,
	cache ReportCache,
	card *billing.RateCard,
) *BillingService {
	return &BillingService{
		billRepo:       billRepo,
		employeeRepo:   employeeRepo,
		membershipRepo: membershipRepo,
		loyalty:        loyalty,
		tx:             tx,
		cache:          cache,
		card:           card,
		now:            time.Now,
	}
}

// RecordBillInput carries the raw inputs of a sale; each billing type reads only its own fields
type RecordBillInput struct {
	EmployeeCID   string
	CustomerCID   string
	BillingType   enum.BillingType
	Items         []billing.LineItem
	BaseAmount    decimal.Decimal
	RepairVariant enum.RepairVariant
	PartsCount    int
	Tier          enum.MembershipTier
}

// RecordBillOutput describes the bill that was written
type RecordBillOutput struct {
	Bill             *entity.Bill        `json:"bill"`
	SavedAmount      decimal.Decimal     `json:"saved_amount"`
	Subtotal         decimal.Decimal     `json:"subtotal"`
	DiscountTier     enum.MembershipTier `json:"discount_tier,omitempty"`
	DiscountFraction decimal.Decimal     `json:"discount_fraction"`
	PointsAwarded    int64               `json:"points_awarded"`
}

// Quote prices a sale without writing anything
func (s *BillingService) Quote(ctx context.Context, input *RecordBillInput) (*billing.Priced, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	return s.price(ctx, input)
}

// RecordBill runs pricing, discount and commission, then appends the bill and
// credits loyalty points in one transaction. Nothing is written when the input
// is rejected or the computed amount is zero.
func (s *BillingService) RecordBill(ctx context.Context, input *RecordBillInput) (*RecordBillOutput, error) {
	out, err := s.record(ctx, input)
	if err != nil {
		return nil, err
	}
	invalidateReports(ctx, s.cache)
	return out, nil
}

// record prices and writes the bill without touching the report cache.
// Callers running it inside their own transaction invalidate after commit.
func (s *BillingService) record(ctx context.Context, input *RecordBillInput) (*RecordBillOutput, error) {
	input.EmployeeCID = strings.TrimSpace(input.EmployeeCID)
	input.CustomerCID = strings.TrimSpace(input.CustomerCID)

	if err := s.validate(input); err != nil {
		return nil, err
	}

	priced, err := s.price(ctx, input)
	if err != nil {
		return nil, err
	}
	if !priced.Final.IsPositive() {
		return nil, apperror.NewFieldError("amount", "Computed bill amount is zero")
	}

	rank, err := s.employeeRank(ctx, input.EmployeeCID)
	if err != nil {
		return nil, err
	}

	split := s.card.Commission(billing.CommissionInput{
		Amount:      priced.Final,
		BillingType: input.BillingType,
		Details:     priced.Details,
		Lines:       priced.Lines,
		Rank:        rank,
	})

	bill := &entity.Bill{
		EmployeeCID: input.EmployeeCID,
		CustomerCID: input.CustomerCID,
		BillingType: input.BillingType,
		Details:     priced.Details,
		TotalAmount: priced.Final,
		BilledAt:    s.now().UTC().Truncate(time.Microsecond),
		Commission:  split.Commission,
		Tax:         split.Tax,
	}

	out := &RecordBillOutput{
		Bill:             bill,
		SavedAmount:      priced.Final,
		Subtotal:         priced.Subtotal,
		DiscountTier:     priced.Tier,
		DiscountFraction: priced.Fraction,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.billRepo.Create(ctx, bill); err != nil {
			return fmt.Errorf("append bill: %w", err)
		}
		if bill.BillingType == enum.BillingTypeMembership {
			return nil
		}
		points, err := s.loyalty.AwardForBill(ctx, bill)
		if err != nil {
			return fmt.Errorf("award loyalty points: %w", err)
		}
		out.PointsAwarded = points
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BillingService) validate(input *RecordBillInput) error {
	var fieldErrors []apperror.FieldError
	add := func(field, message string) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: message})
	}

	if strings.TrimSpace(input.EmployeeCID) == "" {
		add("employee_cid", "Employee CID is required")
	}
	if strings.TrimSpace(input.CustomerCID) == "" {
		add("customer_cid", "Customer CID is required")
	}

	switch input.BillingType {
	case enum.BillingTypeItems:
		for _, line := range input.Items {
			if line.Qty < 0 {
				add("items", fmt.Sprintf("Quantity of %s cannot be negative", line.Name))
			}
			if _, ok := s.card.Item(line.Name); !ok {
				add("items", fmt.Sprintf("Unknown item %q", line.Name))
			}
		}
	case enum.BillingTypeUpgrades, enum.BillingTypeCustomization:
		if input.BaseAmount.IsNegative() {
			add("base_amount", "Base amount cannot be negative")
		}
	case enum.BillingTypeRepair:
		if input.RepairVariant == "" {
			input.RepairVariant = enum.RepairVariantNormal
		}
		if !input.RepairVariant.IsValid() {
			add("repair_variant", "Repair variant must be NORMAL or ADVANCED")
		}
		if input.BaseAmount.IsNegative() {
			add("base_amount", "Base amount cannot be negative")
		}
		if input.PartsCount < 0 {
			add("parts_count", "Parts count cannot be negative")
		}
	case enum.BillingTypeMembership:
		if !input.Tier.IsValid() {
			add("tier", "Unknown membership tier")
		}
	default:
		add("billing_type", "Unknown billing type")
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

func (s *BillingService) price(ctx context.Context, input *RecordBillInput) (*billing.Priced, error) {
	quote := s.card.Price(input.BillingType, billing.PriceInput{
		Items:         input.Items,
		BaseAmount:    input.BaseAmount,
		RepairVariant: input.RepairVariant,
		PartsCount:    input.PartsCount,
		Tier:          input.Tier,
	})

	var tier enum.MembershipTier
	if input.BillingType == enum.BillingTypeRepair || input.BillingType == enum.BillingTypeCustomization {
		var err error
		tier, err = activeTier(ctx, s.membershipRepo, strings.TrimSpace(input.CustomerCID), s.now())
		if err != nil {
			return nil, err
		}
	}

	priced := s.card.ApplyDiscount(quote, tier)
	return &priced, nil
}

func (s *BillingService) employeeRank(ctx context.Context, cid string) (enum.Rank, error) {
	employee, err := s.employeeRepo.GetByCID(ctx, cid)
	if err != nil {
		return "", fmt.Errorf("look up employee %s: %w", cid, err)
	}
	if employee == nil {
		log.Printf("Warning: billing unknown employee %s at the lowest commission rate", cid)
		return s.card.LowestRank(), nil
	}
	return employee.Rank, nil
}

// activeTier returns the customer's tier, or "" when they have no membership
// or its window has elapsed without being swept yet
func activeTier(ctx context.Context, repo repository.MembershipRepository, customerCID string, now time.Time) (enum.MembershipTier, error) {
	m, err := repo.Get(ctx, customerCID)
	if err != nil {
		return "", fmt.Errorf("look up membership of %s: %w", customerCID, err)
	}
	if m == nil || !m.IsActive(now) {
		return "", nil
	}
	return m.Tier, nil
}
