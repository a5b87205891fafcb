package repository

import (
	"context"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
)

// MembershipRepository stores active memberships and their archive
type MembershipRepository interface {
	Get(ctx context.Context, customerCID string) (*entity.Membership, error)
	// Upsert replaces any existing row for the customer
	Upsert(ctx context.Context, membership *entity.Membership) error
	// ListActivatedSince returns rows activated at or after since, newest first
	ListActivatedSince(ctx context.Context, since time.Time) ([]entity.Membership, error)
	CountActivatedSince(ctx context.Context, since time.Time) (int64, error)
	// ListActivatedBefore returns rows whose activation is strictly before cutoff
	ListActivatedBefore(ctx context.Context, cutoff time.Time) ([]entity.Membership, error)
	// DeleteIfUnchanged removes the row only if it still carries activatedAt
	DeleteIfUnchanged(ctx context.Context, customerCID string, activatedAt time.Time) (bool, error)

	// AppendHistory inserts an archive row; an existing (customer, activated_at) row is left as is
	AppendHistory(ctx context.Context, history *entity.MembershipHistory) error
	History(ctx context.Context, customerCID string) ([]entity.MembershipHistory, error)
}
