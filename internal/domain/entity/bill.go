package entity

import (
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Bill is one immutable row of the sales ledger
type Bill struct {
	ID          uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeCID string           `gorm:"column:employee_cid;size:64;not null;index" json:"employee_cid"`
	CustomerCID string           `gorm:"column:customer_cid;size:64;not null;index" json:"customer_cid"`
	BillingType enum.BillingType `gorm:"size:20;not null;index" json:"billing_type"`
	Details     string           `gorm:"type:text" json:"details"`
	TotalAmount decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	BilledAt    time.Time        `gorm:"not null;index" json:"timestamp"`
	Commission  decimal.Decimal  `gorm:"type:numeric(14,4);not null;default:0" json:"commission"`
	Tax         decimal.Decimal  `gorm:"type:numeric(14,4);not null;default:0" json:"tax"`
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// DeletedBill is the audit copy of a bill removed from the ledger
type DeletedBill struct {
	ID           uint             `gorm:"primaryKey;autoIncrement:false" json:"id"`
	EmployeeCID  string           `gorm:"column:employee_cid;size:64;not null;index" json:"employee_cid"`
	CustomerCID  string           `gorm:"column:customer_cid;size:64;not null" json:"customer_cid"`
	BillingType  enum.BillingType `gorm:"size:20;not null" json:"billing_type"`
	Details      string           `gorm:"type:text" json:"details"`
	TotalAmount  decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	BilledAt     time.Time        `gorm:"not null" json:"timestamp"`
	Commission   decimal.Decimal  `gorm:"type:numeric(14,4);not null;default:0" json:"commission"`
	Tax          decimal.Decimal  `gorm:"type:numeric(14,4);not null;default:0" json:"tax"`
	DeletedBy    string           `gorm:"size:100;not null" json:"deleted_by"`
	DeleteReason string           `gorm:"type:text;not null" json:"delete_reason"`
	DeletedAt    time.Time        `gorm:"not null;index" json:"deleted_at"`
	Snapshot     datatypes.JSON   `json:"snapshot,omitempty"` // original row as it stood in the ledger
}

// TableName returns the table name for the DeletedBill model
func (DeletedBill) TableName() string {
	return "deleted_bills"
}

// NewDeletedBill copies b into an audit record
func NewDeletedBill(b *Bill, deletedBy, reason string, at time.Time, snapshot []byte) *DeletedBill {
	return &DeletedBill{
		ID:           b.ID,
		EmployeeCID:  b.EmployeeCID,
		CustomerCID:  b.CustomerCID,
		BillingType:  b.BillingType,
		Details:      b.Details,
		TotalAmount:  b.TotalAmount,
		BilledAt:     b.BilledAt,
		Commission:   b.Commission,
		Tax:          b.Tax,
		DeletedBy:    deletedBy,
		DeleteReason: reason,
		DeletedAt:    at,
		Snapshot:     datatypes.JSON(snapshot),
	}
}
