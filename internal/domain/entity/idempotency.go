package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey stores processed requests to prevent duplicates
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key          string    `gorm:"size:255;not null;uniqueIndex:idx_idempotency_key_user"`
	Username     string    `gorm:"size:100;not null;uniqueIndex:idx_idempotency_key_user"`
	Endpoint     string    `gorm:"size:255;not null"` // e.g. "POST /api/v1/bills"
	RequestHash  string    `gorm:"size:64"`
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
