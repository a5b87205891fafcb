package repository

import (
	"context"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// TypeTotal is the revenue of one billing type
type TypeTotal struct {
	BillingType enum.BillingType
	Total       decimal.Decimal
	Commission  decimal.Decimal
	Tax         decimal.Decimal
	BillCount   int64
}

// EmployeeTotal is an employee's lifetime ledger figures
type EmployeeTotal struct {
	EmployeeCID string
	Name        string
	Rank        enum.Rank
	Hood        string
	Revenue     decimal.Decimal
	Commission  decimal.Decimal
	Tax         decimal.Decimal
	BillCount   int64
}

// HoodTotal aggregates the employees of one hood
type HoodTotal struct {
	Hood          string
	EmployeeCount int64
	Revenue       decimal.Decimal
	Commission    decimal.Decimal
}

// DailyRevenue is the revenue of one calendar day in the ledger timezone
type DailyRevenue struct {
	Date      string
	Revenue   decimal.Decimal
	BillCount int64
}

// CustomerTotal is a customer's spending
type CustomerTotal struct {
	CustomerCID string
	TotalSpent  decimal.Decimal
	BillCount   int64
}

// AnalyticsRepository defines aggregation queries over the ledger
type AnalyticsRepository interface {
	// TotalsByType groups bills by type; an empty employeeCID covers the whole ledger
	TotalsByType(ctx context.Context, employeeCID string) ([]TypeTotal, error)

	// RankEmployees orders employees by metric, highest first
	RankEmployees(ctx context.Context, metric enum.RankMetric, limit int) ([]EmployeeTotal, error)

	HoodTotals(ctx context.Context) ([]HoodTotal, error)

	// DailyRevenue buckets bills billed at or after since by calendar day in timezone
	DailyRevenue(ctx context.Context, since time.Time, timezone string) ([]DailyRevenue, error)

	// RevenueBetween sums bills billed in [from, to)
	RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, int64, error)

	TopCustomers(ctx context.Context, limit int) ([]CustomerTotal, error)
}
