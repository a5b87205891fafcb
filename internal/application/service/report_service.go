package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/billing"
	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"github.com/Shrey0428/ExoticBill/pkg/apperror"
	"github.com/shopspring/decimal"
)

const (
	defaultDashboardDays = 30
	maxDashboardDays     = 365
	defaultRankingLimit  = 10
	topCustomerCount     = 5
)

// ReportService builds the aggregated back-office views
type ReportService struct {
	analyticsRepo  repository.AnalyticsRepository
	billRepo       repository.BillRepository
	employeeRepo   repository.EmployeeRepository
	membershipRepo repository.MembershipRepository
	memberships    *MembershipService
	loyalty        *LoyaltyService
	cache          ReportCache
	loc            *time.Location
	now            func() time.Time
}

// NewReportService creates a new report service; daily figures are bucketed in loc
func NewReportService(
	analyticsRepo repository.AnalyticsRepository,
	billRepo repository.BillRepository,
	employeeRepo repository.EmployeeRepository,
	membershipRepo repository.MembershipRepository,
	memberships *MembershipService,
	loyalty *LoyaltyService,
	cache ReportCache,
	loc *time.Location,
) *ReportService {
	return &ReportService{
		analyticsRepo:  analyticsRepo,
		billRepo:       billRepo,
		employeeRepo:   employeeRepo,
		membershipRepo: membershipRepo,
		memberships:    memberships,
		loyalty:        loyalty,
		cache:          cache,
		loc:            loc,
		now:            time.Now,
	}
}

// TypeAmount is the revenue of one billing type
type TypeAmount struct {
	BillingType enum.BillingType `json:"billing_type"`
	Total       decimal.Decimal  `json:"total"`
	BillCount   int64            `json:"bill_count"`
}

// EmployeeSummary is an employee's ledger broken down by billing type
type EmployeeSummary struct {
	EmployeeCID     string           `json:"employee_cid"`
	Employee        *entity.Employee `json:"employee,omitempty"`
	Totals          []TypeAmount     `json:"totals"`
	GrandTotal      decimal.Decimal  `json:"grand_total"`
	CommissionTotal decimal.Decimal  `json:"commission_total"`
	TaxTotal        decimal.Decimal  `json:"tax_total"`
	BillCount       int64            `json:"bill_count"`
}

// SummaryForEmployee totals an employee's bills per type. Every type appears, zero when unused.
func (s *ReportService) SummaryForEmployee(ctx context.Context, employeeCID string) (*EmployeeSummary, error) {
	employeeCID = strings.TrimSpace(employeeCID)
	if employeeCID == "" {
		return nil, apperror.NewFieldError("cid", "Employee CID is required")
	}

	return cached(ctx, s.cache, reportCachePrefix+"summary:"+employeeCID, func() (*EmployeeSummary, error) {
		employee, err := s.employeeRepo.GetByCID(ctx, employeeCID)
		if err != nil {
			return nil, err
		}
		totals, err := s.analyticsRepo.TotalsByType(ctx, employeeCID)
		if err != nil {
			return nil, fmt.Errorf("total bills of %s: %w", employeeCID, err)
		}
		if employee == nil && len(totals) == 0 {
			return nil, apperror.NewNotFoundError("Employee")
		}

		summary := &EmployeeSummary{
			EmployeeCID:     employeeCID,
			Employee:        employee,
			GrandTotal:      decimal.Zero,
			CommissionTotal: decimal.Zero,
			TaxTotal:        decimal.Zero,
		}
		summary.Totals = byType(totals)
		for _, t := range totals {
			summary.GrandTotal = summary.GrandTotal.Add(t.Total)
			summary.CommissionTotal = summary.CommissionTotal.Add(t.Commission)
			summary.TaxTotal = summary.TaxTotal.Add(t.Tax)
			summary.BillCount += t.BillCount
		}
		return summary, nil
	})
}

// RankedEmployee is one row of an employee ranking
type RankedEmployee struct {
	Position    int             `json:"position"`
	EmployeeCID string          `json:"employee_cid"`
	Name        string          `json:"name"`
	Rank        enum.Rank       `json:"rank"`
	Hood        string          `json:"hood"`
	Revenue     decimal.Decimal `json:"revenue"`
	Commission  decimal.Decimal `json:"commission"`
	Tax         decimal.Decimal `json:"tax"`
	BillCount   int64           `json:"bill_count"`
}

// RankEmployees orders employees by revenue, commission or bill count
func (s *ReportService) RankEmployees(ctx context.Context, metric enum.RankMetric, limit int) ([]RankedEmployee, error) {
	if limit < 1 || limit > 100 {
		limit = defaultRankingLimit
	}

	key := fmt.Sprintf("%srankings:%s:%d", reportCachePrefix, metric, limit)
	return cached(ctx, s.cache, key, func() ([]RankedEmployee, error) {
		rows, err := s.analyticsRepo.RankEmployees(ctx, metric, limit)
		if err != nil {
			return nil, err
		}

		ranked := make([]RankedEmployee, 0, len(rows))
		for i, r := range rows {
			ranked = append(ranked, RankedEmployee{
				Position:    i + 1,
				EmployeeCID: r.EmployeeCID,
				Name:        r.Name,
				Rank:        r.Rank,
				Hood:        r.Hood,
				Revenue:     r.Revenue,
				Commission:  r.Commission,
				Tax:         r.Tax,
				BillCount:   r.BillCount,
			})
		}
		return ranked, nil
	})
}

// HoodSummary is one hood's headcount and ledger figures
type HoodSummary struct {
	Hood          string          `json:"hood"`
	EmployeeCount int64           `json:"employee_count"`
	Revenue       decimal.Decimal `json:"revenue"`
	Commission    decimal.Decimal `json:"commission"`
}

// HoodSummaries groups the ledger by hood, highest revenue first
func (s *ReportService) HoodSummaries(ctx context.Context) ([]HoodSummary, error) {
	return cached(ctx, s.cache, reportCachePrefix+"hoods", func() ([]HoodSummary, error) {
		rows, err := s.analyticsRepo.HoodTotals(ctx)
		if err != nil {
			return nil, err
		}

		hoods := make([]HoodSummary, 0, len(rows))
		for _, r := range rows {
			hoods = append(hoods, HoodSummary{
				Hood:          r.Hood,
				EmployeeCount: r.EmployeeCount,
				Revenue:       r.Revenue,
				Commission:    r.Commission,
			})
		}
		return hoods, nil
	})
}

// DailyPoint is one day of the revenue series
type DailyPoint struct {
	Date      string          `json:"date"`
	Revenue   decimal.Decimal `json:"revenue"`
	BillCount int64           `json:"bill_count"`
}

// CustomerPoint is one of the top-spending customers
type CustomerPoint struct {
	CustomerCID string          `json:"customer_cid"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	BillCount   int64           `json:"bill_count"`
}

// Dashboard is the back-office overview
type Dashboard struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalCommission   decimal.Decimal `json:"total_commission"`
	TotalBills        int64           `json:"total_bills"`
	MonthlyRevenue    decimal.Decimal `json:"monthly_revenue"`
	MonthlyBills      int64           `json:"monthly_bills"`
	ActiveMemberships int64           `json:"active_memberships"`
	RevenueByType     []TypeAmount    `json:"revenue_by_type"`
	DailyRevenue      []DailyPoint    `json:"daily_revenue"`
	TopCustomers      []CustomerPoint `json:"top_customers"`
	GeneratedAt       time.Time       `json:"generated_at"`
}

// Dashboard builds the overview with a daily series covering the last days days
func (s *ReportService) Dashboard(ctx context.Context, days int) (*Dashboard, error) {
	if days < 1 || days > maxDashboardDays {
		days = defaultDashboardDays
	}

	return cached(ctx, s.cache, fmt.Sprintf("%sdashboard:%d", reportCachePrefix, days), func() (*Dashboard, error) {
		now := s.now().In(s.loc)
		d := &Dashboard{
			TotalRevenue:    decimal.Zero,
			TotalCommission: decimal.Zero,
			GeneratedAt:     now,
		}

		totals, err := s.analyticsRepo.TotalsByType(ctx, "")
		if err != nil {
			return nil, err
		}
		d.RevenueByType = byType(totals)
		for _, t := range totals {
			d.TotalRevenue = d.TotalRevenue.Add(t.Total)
			d.TotalCommission = d.TotalCommission.Add(t.Commission)
			d.TotalBills += t.BillCount
		}

		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
		d.MonthlyRevenue, d.MonthlyBills, err = s.analyticsRepo.RevenueBetween(ctx, monthStart.UTC(), now.UTC().Add(time.Second))
		if err != nil {
			return nil, err
		}

		d.ActiveMemberships, err = s.membershipRepo.CountActivatedSince(ctx, now.Add(-billing.MembershipWindow).UTC())
		if err != nil {
			return nil, err
		}

		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
		since := today.AddDate(0, 0, -(days - 1))
		daily, err := s.analyticsRepo.DailyRevenue(ctx, since.UTC(), s.loc.String())
		if err != nil {
			return nil, err
		}
		d.DailyRevenue = fillDays(daily, since, days)

		top, err := s.analyticsRepo.TopCustomers(ctx, topCustomerCount)
		if err != nil {
			return nil, err
		}
		d.TopCustomers = make([]CustomerPoint, 0, len(top))
		for _, c := range top {
			d.TopCustomers = append(d.TopCustomers, CustomerPoint{
				CustomerCID: c.CustomerCID,
				TotalSpent:  c.TotalSpent,
				BillCount:   c.BillCount,
			})
		}
		return d, nil
	})
}

// CustomerHistory is everything the shop knows about one customer
type CustomerHistory struct {
	CustomerCID       string                     `json:"customer_cid"`
	Bills             []entity.Bill              `json:"bills"`
	TotalSpent        decimal.Decimal            `json:"total_spent"`
	Membership        *MembershipStatus          `json:"membership"`
	MembershipHistory []entity.MembershipHistory `json:"membership_history"`
	Loyalty           *entity.LoyaltyAccount     `json:"loyalty"`
}

// CustomerHistory gathers a customer's bills, membership and loyalty balance
func (s *ReportService) CustomerHistory(ctx context.Context, customerCID string) (*CustomerHistory, error) {
	customerCID = strings.TrimSpace(customerCID)
	if customerCID == "" {
		return nil, apperror.NewFieldError("cid", "Customer CID is required")
	}

	bills, err := s.billRepo.ListByCustomer(ctx, customerCID)
	if err != nil {
		return nil, err
	}
	status, err := s.memberships.CheckMembership(ctx, customerCID)
	if err != nil {
		return nil, err
	}
	archived, err := s.memberships.History(ctx, customerCID)
	if err != nil {
		return nil, err
	}
	account, err := s.loyalty.GetAccount(ctx, customerCID)
	if err != nil {
		return nil, err
	}

	h := &CustomerHistory{
		CustomerCID:       customerCID,
		Bills:             bills,
		TotalSpent:        decimal.Zero,
		Membership:        status,
		MembershipHistory: archived,
		Loyalty:           account,
	}
	for _, b := range bills {
		h.TotalSpent = h.TotalSpent.Add(b.TotalAmount)
	}
	return h, nil
}

// Invalidate drops every cached view
func (s *ReportService) Invalidate(ctx context.Context) {
	invalidateReports(ctx, s.cache)
}

// byType lays totals out over every billing type in display order
func byType(totals []repository.TypeTotal) []TypeAmount {
	out := make([]TypeAmount, 0, len(enum.BillingTypes))
	for _, bt := range enum.BillingTypes {
		row := TypeAmount{BillingType: bt, Total: decimal.Zero}
		for _, t := range totals {
			if t.BillingType == bt {
				row.Total = t.Total
				row.BillCount = t.BillCount
			}
		}
		out = append(out, row)
	}
	return out
}

// fillDays expands a sparse daily series into one point per day starting at since
func fillDays(rows []repository.DailyRevenue, since time.Time, days int) []DailyPoint {
	byDate := make(map[string]repository.DailyRevenue, len(rows))
	for _, r := range rows {
		byDate[r.Date] = r
	}

	points := make([]DailyPoint, 0, days)
	for i := 0; i < days; i++ {
		date := since.AddDate(0, 0, i).Format("2006-01-02")
		p := DailyPoint{Date: date, Revenue: decimal.Zero}
		if r, ok := byDate[date]; ok {
			p.Revenue = r.Revenue
			p.BillCount = r.BillCount
		}
		points = append(points, p)
	}
	return points
}

// cached serves key from cache or computes it with load and stores the result.
// Cache failures degrade to a direct load.
func cached[T any](ctx context.Context, cache ReportCache, key string, load func() (T, error)) (T, error) {
	var v T
	if cache != nil {
		hit, err := cache.Get(ctx, key, &v)
		if err != nil {
			log.Printf("Warning: report cache read %s failed: %v", key, err)
		} else if hit {
			return v, nil
		}
	}

	v, err := load()
	if err != nil {
		return v, err
	}

	if cache != nil {
		if err := cache.Set(ctx, key, v); err != nil {
			log.Printf("Warning: report cache write %s failed: %v", key, err)
		}
	}
	return v, nil
}
