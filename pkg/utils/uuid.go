package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// NewRequestID returns an identifier for correlating log lines of one request
func NewRequestID() string {
	return uuid.NewString()
}

// BillNumber formats a ledger id the way it is printed on receipts
func BillNumber(id uint) string {
	return fmt.Sprintf("BILL-%06d", id)
}
