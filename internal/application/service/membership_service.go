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
)

// MembershipService sells memberships, answers lookups and archives lapsed ones
type MembershipService struct {
	membershipRepo repository.MembershipRepository
	billing        *BillingService
	tx             repository.Transactor
	cache          ReportCache
	card           *billing.RateCard
	now            func() time.Time
}

// NewMembershipService creates a new membership service
func NewMembershipService(
	membershipRepo repository.MembershipRepository,
	billingService *BillingService,
	tx repository.Transactor,
	cache ReportCache,
	card *billing.RateCard,
) *MembershipService {
	return &MembershipService{
		membershipRepo: membershipRepo,
		billing:        billingService,
		tx:             tx,
		cache:          cache,
		card:           card,
		now:            time.Now,
	}
}

// UpsertMembershipInput represents a membership sale
type UpsertMembershipInput struct {
	CustomerCID string
	Tier        enum.MembershipTier
	// SellerCID is the employee credited with the sale; required for billable tiers
	SellerCID string
}

// UpsertMembershipOutput is the stored membership and, for billable tiers, its bill
type UpsertMembershipOutput struct {
	Membership *entity.Membership `json:"membership"`
	Bill       *entity.Bill       `json:"bill,omitempty"`
}

// UpsertMembership replaces any membership the customer holds and stamps it now.
// Billable tiers also record a MEMBERSHIP bill at the tier price in the same transaction.
func (s *MembershipService) UpsertMembership(ctx context.Context, input *UpsertMembershipInput) (*UpsertMembershipOutput, error) {
	customerCID := strings.TrimSpace(input.CustomerCID)
	sellerCID := strings.TrimSpace(input.SellerCID)

	var fieldErrors []apperror.FieldError
	if customerCID == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_cid", Message: "Customer CID is required"})
	}
	if !input.Tier.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "tier", Message: "Unknown membership tier"})
	}
	_, billable := s.card.MembershipPrice(input.Tier)
	if billable && sellerCID == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "seller_cid", Message: "Seller CID is required for paid tiers"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	out := &UpsertMembershipOutput{}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		membership := &entity.Membership{
			CustomerCID: customerCID,
			Tier:        input.Tier,
			ActivatedAt: s.now().UTC().Truncate(time.Microsecond),
		}
		if err := s.membershipRepo.Upsert(ctx, membership); err != nil {
			return fmt.Errorf("upsert membership: %w", err)
		}
		out.Membership = membership

		if !billable {
			return nil
		}
		recorded, err := s.billing.record(ctx, &RecordBillInput{
			EmployeeCID: sellerCID,
			CustomerCID: customerCID,
			BillingType: enum.BillingTypeMembership,
			Tier:        input.Tier,
		})
		if err != nil {
			return err
		}
		out.Bill = recorded.Bill
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateReports(ctx, s.cache)
	return out, nil
}

// MembershipStatus is the answer to a membership check
type MembershipStatus struct {
	CustomerCID      string              `json:"customer_cid"`
	Tier             enum.MembershipTier `json:"tier"`
	ActivatedAt      time.Time           `json:"activated_at"`
	ExpiresAt        time.Time           `json:"expires_at"`
	RemainingSeconds int64               `json:"remaining_seconds"`
	Remaining        string              `json:"remaining"`
}

// CheckMembership returns the customer's active membership, or nil when there is none.
// A membership whose window has elapsed counts as absent even before it is swept.
func (s *MembershipService) CheckMembership(ctx context.Context, customerCID string) (*MembershipStatus, error) {
	m, err := s.membershipRepo.Get(ctx, strings.TrimSpace(customerCID))
	if err != nil {
		return nil, err
	}
	now := s.now()
	if m == nil || !m.IsActive(now) {
		return nil, nil
	}
	return newMembershipStatus(m, now), nil
}

// ListActive returns every membership still inside its window, newest first
func (s *MembershipService) ListActive(ctx context.Context) ([]MembershipStatus, error) {
	now := s.now()
	memberships, err := s.membershipRepo.ListActivatedSince(ctx, now.Add(-billing.MembershipWindow).UTC())
	if err != nil {
		return nil, err
	}

	statuses := make([]MembershipStatus, 0, len(memberships))
	for i := range memberships {
		statuses = append(statuses, *newMembershipStatus(&memberships[i], now))
	}
	return statuses, nil
}

// History returns the customer's archived memberships, newest first
func (s *MembershipService) History(ctx context.Context, customerCID string) ([]entity.MembershipHistory, error) {
	return s.membershipRepo.History(ctx, strings.TrimSpace(customerCID))
}

// SweepExpired archives every membership activated more than one window ago and
// returns how many active rows it removed. Each row is archived in its own
// transaction; re-running, or racing another sweep, archives nothing twice.
func (s *MembershipService) SweepExpired(ctx context.Context) (int, error) {
	now := s.now().UTC()
	expired, err := s.membershipRepo.ListActivatedBefore(ctx, now.Add(-billing.MembershipWindow))
	if err != nil {
		return 0, fmt.Errorf("list expired memberships: %w", err)
	}

	archived := 0
	for _, m := range expired {
		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			err := s.membershipRepo.AppendHistory(ctx, &entity.MembershipHistory{
				CustomerCID: m.CustomerCID,
				Tier:        m.Tier,
				ActivatedAt: m.ActivatedAt,
				ExpiredAt:   m.ExpiresAt(),
				ArchivedAt:  now,
			})
			if err != nil {
				return fmt.Errorf("archive membership of %s: %w", m.CustomerCID, err)
			}

			deleted, err := s.membershipRepo.DeleteIfUnchanged(ctx, m.CustomerCID, m.ActivatedAt)
			if err != nil {
				return fmt.Errorf("remove expired membership of %s: %w", m.CustomerCID, err)
			}
			if deleted {
				archived++
			}
			return nil
		})
		if err != nil {
			if archived > 0 {
				invalidateReports(ctx, s.cache)
			}
			return archived, err
		}
	}

	if archived > 0 {
		log.Printf("Archived %d expired memberships", archived)
		invalidateReports(ctx, s.cache)
	}
	return archived, nil
}

func newMembershipStatus(m *entity.Membership, now time.Time) *MembershipStatus {
	remaining := m.Remaining(now)
	return &MembershipStatus{
		CustomerCID:      m.CustomerCID,
		Tier:             m.Tier,
		ActivatedAt:      m.ActivatedAt,
		ExpiresAt:        m.ExpiresAt(),
		RemainingSeconds: int64(remaining / time.Second),
		Remaining:        formatRemaining(remaining),
	}
}

// formatRemaining renders a duration as "6d 23h 59m"
func formatRemaining(d time.Duration) string {
	d = d.Truncate(time.Minute)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	return fmt.Sprintf("%dd %dh %dm", days, hours, d/time.Minute)
}
