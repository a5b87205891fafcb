package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	domainRepo "github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

var rankColumns = map[enum.RankMetric]string{
	enum.RankByRevenue:    "revenue",
	enum.RankByCommission: "commission",
	enum.RankByBills:      "bill_count",
}

func (r *analyticsRepository) TotalsByType(ctx context.Context, employeeCID string) ([]domainRepo.TypeTotal, error) {
	var results []domainRepo.TypeTotal

	query := conn(ctx, r.db).Table("bills").
		Select(`billing_type,
			COALESCE(SUM(total_amount), 0) AS total,
			COALESCE(SUM(commission), 0) AS commission,
			COALESCE(SUM(tax), 0) AS tax,
			COUNT(*) AS bill_count`)
	if employeeCID != "" {
		query = query.Where("employee_cid = ?", employeeCID)
	}

	err := query.Group("billing_type").Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *analyticsRepository) RankEmployees(ctx context.Context, metric enum.RankMetric, limit int) ([]domainRepo.EmployeeTotal, error) {
	column, ok := rankColumns[metric]
	if !ok {
		return nil, fmt.Errorf("unknown rank metric %q", metric)
	}

	var results []domainRepo.EmployeeTotal
	err := conn(ctx, r.db).Raw(`
		SELECT
			e.cid AS employee_cid,
			e.name AS name,
			e.rank AS rank,
			e.hood AS hood,
			COALESCE(SUM(b.total_amount), 0) AS revenue,
			COALESCE(SUM(b.commission), 0) AS commission,
			COALESCE(SUM(b.tax), 0) AS tax,
			COUNT(b.id) AS bill_count
		FROM employees e
		LEFT JOIN bills b ON b.employee_cid = e.cid
		GROUP BY e.cid, e.name, e.rank, e.hood
		ORDER BY `+column+` DESC, e.name ASC
		LIMIT ?
	`, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *analyticsRepository) HoodTotals(ctx context.Context) ([]domainRepo.HoodTotal, error) {
	var results []domainRepo.HoodTotal

	err := conn(ctx, r.db).Raw(`
		SELECT
			h.name AS hood,
			COUNT(DISTINCT e.cid) AS employee_count,
			COALESCE(SUM(b.total_amount), 0) AS revenue,
			COALESCE(SUM(b.commission), 0) AS commission
		FROM hoods h
		LEFT JOIN employees e ON e.hood = h.name
		LEFT JOIN bills b ON b.employee_cid = e.cid
		GROUP BY h.name
		ORDER BY revenue DESC, h.name ASC
	`).Scan(&results).Error

	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *analyticsRepository) DailyRevenue(ctx context.Context, since time.Time, timezone string) ([]domainRepo.DailyRevenue, error) {
	var results []domainRepo.DailyRevenue

	err := conn(ctx, r.db).Raw(`
		SELECT
			to_char(billed_at AT TIME ZONE ?, 'YYYY-MM-DD') AS date,
			COALESCE(SUM(total_amount), 0) AS revenue,
			COUNT(*) AS bill_count
		FROM bills
		WHERE billed_at >= ?
		GROUP BY 1
		ORDER BY 1 ASC
	`, timezone, since).Scan(&results).Error

	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *analyticsRepository) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, int64, error) {
	var row struct {
		Revenue   decimal.Decimal
		BillCount int64
	}

	err := conn(ctx, r.db).Raw(`
		SELECT COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS bill_count
		FROM bills
		WHERE billed_at >= ? AND billed_at < ?
	`, from, to).Scan(&row).Error

	if err != nil {
		return decimal.Zero, 0, err
	}
	return row.Revenue, row.BillCount, nil
}

func (r *analyticsRepository) TopCustomers(ctx context.Context, limit int) ([]domainRepo.CustomerTotal, error) {
	var results []domainRepo.CustomerTotal

	err := conn(ctx, r.db).Raw(`
		SELECT
			customer_cid,
			COALESCE(SUM(total_amount), 0) AS total_spent,
			COUNT(*) AS bill_count
		FROM bills
		GROUP BY customer_cid
		ORDER BY total_spent DESC, customer_cid ASC
		LIMIT ?
	`, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}
	return results, nil
}
