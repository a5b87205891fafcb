package repository

import (
	"context"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
)

// LoyaltyRepository stores point balances and their change log
type LoyaltyRepository interface {
	GetAccount(ctx context.Context, customerCID string) (*entity.LoyaltyAccount, error)
	// AddPoints applies delta to the balance, creating the account if needed and clamping at zero
	AddPoints(ctx context.Context, customerCID string, delta int64, at time.Time) (*entity.LoyaltyAccount, error)
	AppendHistory(ctx context.Context, history *entity.LoyaltyHistory) error
	History(ctx context.Context, customerCID string) ([]entity.LoyaltyHistory, error)
}
