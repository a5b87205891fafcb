package entity

import "time"

// LoyaltyAccount is a customer's running points balance
type LoyaltyAccount struct {
	CustomerCID string    `gorm:"column:customer_cid;primaryKey;size:64" json:"customer_cid"`
	Points      int64     `gorm:"not null;default:0" json:"points"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the table name for the LoyaltyAccount model
func (LoyaltyAccount) TableName() string {
	return "loyalty_accounts"
}

// LoyaltyHistory records every change to a balance
type LoyaltyHistory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CustomerCID string    `gorm:"column:customer_cid;size:64;not null;index" json:"customer_cid"`
	Delta       int64     `gorm:"not null" json:"delta"`
	Reason      string    `gorm:"size:255;not null" json:"reason"`
	BillID      *uint     `gorm:"index" json:"bill_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the table name for the LoyaltyHistory model
func (LoyaltyHistory) TableName() string {
	return "loyalty_history"
}
