package repository

import (
	domainRepo "github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"gorm.io/gorm"
)

// BillFilterScope returns a GORM scope applying a ledger filter.
// Employee and customer CIDs match as case-insensitive substrings.
func BillFilterScope(f domainRepo.BillFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.From != nil {
			db = db.Where("billed_at >= ?", *f.From)
		}
		if f.To != nil {
			db = db.Where("billed_at < ?", *f.To)
		}
		if f.BillingType != "" {
			db = db.Where("billing_type = ?", f.BillingType)
		}
		if f.EmployeeCID != "" {
			db = db.Where("employee_cid ILIKE ?", "%"+f.EmployeeCID+"%")
		}
		if f.CustomerCID != "" {
			db = db.Where("customer_cid ILIKE ?", "%"+f.CustomerCID+"%")
		}
		return db
	}
}
