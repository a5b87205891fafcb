package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemLineRequest is one basket entry of an ITEMS bill
type ItemLineRequest struct {
	Name string `json:"name" binding:"required"`
	Qty  int    `json:"qty" binding:"min=0"`
}

// RecordBillRequest represents a sale. Each billing type reads only its own fields.
type RecordBillRequest struct {
	EmployeeCID   string            `json:"employee_cid" binding:"required,max=64"`
	CustomerCID   string            `json:"customer_cid" binding:"required,max=64"`
	BillingType   string            `json:"billing_type" binding:"required"`
	Items         []ItemLineRequest `json:"items" binding:"omitempty,dive"`
	BaseAmount    decimal.Decimal   `json:"base_amount"`
	RepairVariant string            `json:"repair_variant"`
	PartsCount    int               `json:"parts_count" binding:"min=0"`
}

// DeleteBillRequest carries the audit reason of a delete
type DeleteBillRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// BillFilterRequest represents ledger query parameters
type BillFilterRequest struct {
	From        *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To          *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	BillingType string     `form:"billing_type"`
	EmployeeCID string     `form:"employee_cid"`
	CustomerCID string     `form:"customer_cid"`
	Page        int        `form:"page"`
	PerPage     int        `form:"per_page"`
}
