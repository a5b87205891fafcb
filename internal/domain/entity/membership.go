package entity

import (
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/billing"
	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
)

// Membership is a customer's currently active membership; one row per customer
type Membership struct {
	CustomerCID string              `gorm:"column:customer_cid;primaryKey;size:64" json:"customer_cid"`
	Tier        enum.MembershipTier `gorm:"size:10;not null" json:"tier"`
	ActivatedAt time.Time           `gorm:"not null;index" json:"activated_at"`
}

// TableName returns the table name for the Membership model
func (Membership) TableName() string {
	return "memberships"
}

// ExpiresAt is the instant the membership window closes
func (m *Membership) ExpiresAt() time.Time {
	return m.ActivatedAt.Add(billing.MembershipWindow)
}

// IsActive reports whether the window is still open at now.
// A row that has lapsed but not yet been swept is not active.
func (m *Membership) IsActive(now time.Time) bool {
	return !now.After(m.ExpiresAt())
}

// Remaining is the time left in the window, zero once lapsed
func (m *Membership) Remaining(now time.Time) time.Duration {
	left := m.ExpiresAt().Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// MembershipHistory is the write-once archive of an expired membership
type MembershipHistory struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	CustomerCID string              `gorm:"column:customer_cid;size:64;not null;uniqueIndex:idx_membership_history_window" json:"customer_cid"`
	Tier        enum.MembershipTier `gorm:"size:10;not null" json:"tier"`
	ActivatedAt time.Time           `gorm:"not null;uniqueIndex:idx_membership_history_window" json:"activated_at"`
	ExpiredAt   time.Time           `gorm:"not null" json:"expired_at"`
	ArchivedAt  time.Time           `gorm:"not null" json:"archived_at"`
}

// TableName returns the table name for the MembershipHistory model
func (MembershipHistory) TableName() string {
	return "membership_history"
}
